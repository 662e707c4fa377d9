package commands

import (
	"errors"

	"gatebite/internal/core/domain/model/kernel"
	"gatebite/internal/pkg/errs"
	"gatebite/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand represents a request to attach a specific delivery
// agent to an order, as opposed to the automatic assignment job which picks
// the agent itself.
type AssignAgentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agentID int64

	guard guard.ConstructorGuard
}

// NewAssignAgentCommand creates a command to assign the given agent to the
// given order.
func NewAssignAgentCommand(orderID kernel.UUID, agentID int64) (AssignAgentCommand, error) {
	assignCommand := AssignAgentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setOrderID(orderID),
		assignCommand.setAgentID(agentID),
	); err != nil {
		return AssignAgentCommand{}, err
	}

	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignAgentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the identifier of the agent taking the order.
func (c AssignAgentCommand) AgentID() int64 {
	return c.agentID
}

func (c *AssignAgentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignAgentCommand) setAgentID(agentID int64) error {
	if agentID <= 0 {
		return errs.NewValueIsInvalidError("agentID")
	}

	c.agentID = agentID
	return nil
}
