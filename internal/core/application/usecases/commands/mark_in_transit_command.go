package commands

import (
	"errors"

	"gatebite/internal/core/domain/model/kernel"
	"gatebite/internal/pkg/errs"
	"gatebite/internal/pkg/guard"
)

var ErrMarkInTransitCommandIsNotConstructed = errors.New(
	"MarkInTransitCommand must be created via NewMarkInTransitCommand constructor",
)

// MarkInTransitCommand represents an agent reporting that it is moving
// through the terminal toward the boarding gate.
type MarkInTransitCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agentID int64

	guard guard.ConstructorGuard
}

// NewMarkInTransitCommand creates a command for the transit report.
func NewMarkInTransitCommand(orderID kernel.UUID, agentID int64) (MarkInTransitCommand, error) {
	transitCommand := MarkInTransitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitCommand.setOrderID(orderID),
		transitCommand.setAgentID(agentID),
	); err != nil {
		return MarkInTransitCommand{}, err
	}

	return transitCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkInTransitCommand) Validate() error {
	return c.guard.Validate(ErrMarkInTransitCommandIsNotConstructed)
}

// OrderID returns the identifier of the order in transit.
func (c MarkInTransitCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the identifier of the reporting agent.
func (c MarkInTransitCommand) AgentID() int64 {
	return c.agentID
}

func (c *MarkInTransitCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkInTransitCommand) setAgentID(agentID int64) error {
	if agentID <= 0 {
		return errs.NewValueIsInvalidError("agentID")
	}

	c.agentID = agentID
	return nil
}
