package commands

import (
	"errors"

	"gatebite/internal/core/domain/model/kernel"
	"gatebite/internal/pkg/errs"
	"gatebite/internal/pkg/guard"
)

var ErrMarkPickedUpCommandIsNotConstructed = errors.New(
	"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
)

// MarkPickedUpCommand represents an agent reporting that it collected the
// order from the restaurant counter.
type MarkPickedUpCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agentID int64

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates a command for the pickup report.
func NewMarkPickedUpCommand(orderID kernel.UUID, agentID int64) (MarkPickedUpCommand, error) {
	pickupCommand := MarkPickedUpCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pickupCommand.setOrderID(orderID),
		pickupCommand.setAgentID(agentID),
	); err != nil {
		return MarkPickedUpCommand{}, err
	}

	return pickupCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being picked up.
func (c MarkPickedUpCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the identifier of the reporting agent.
func (c MarkPickedUpCommand) AgentID() int64 {
	return c.agentID
}

func (c *MarkPickedUpCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkPickedUpCommand) setAgentID(agentID int64) error {
	if agentID <= 0 {
		return errs.NewValueIsInvalidError("agentID")
	}

	c.agentID = agentID
	return nil
}
