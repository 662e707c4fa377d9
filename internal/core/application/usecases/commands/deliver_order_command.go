package commands

import (
	"errors"

	"gatebite/internal/core/domain/model/kernel"
	"gatebite/internal/pkg/errs"
	"gatebite/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand represents the final handoff at the gate: the agent
// submits the OTP the customer read back to them.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agentID int64
	otp     string

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand creates a command for the delivery handoff.
// The OTP must be non-empty; whether it matches is decided by the aggregate.
func NewDeliverOrderCommand(orderID kernel.UUID, agentID int64, otp string) (DeliverOrderCommand, error) {
	deliverCommand := DeliverOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deliverCommand.setOrderID(orderID),
		deliverCommand.setAgentID(agentID),
		deliverCommand.setOTP(otp),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	return deliverCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being delivered.
func (c DeliverOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the identifier of the delivering agent.
func (c DeliverOrderCommand) AgentID() int64 {
	return c.agentID
}

// OTP returns the code submitted by the agent.
func (c DeliverOrderCommand) OTP() string {
	return c.otp
}

func (c *DeliverOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DeliverOrderCommand) setAgentID(agentID int64) error {
	if agentID <= 0 {
		return errs.NewValueIsInvalidError("agentID")
	}

	c.agentID = agentID
	return nil
}

func (c *DeliverOrderCommand) setOTP(otp string) error {
	if otp == "" {
		return errs.NewValueIsRequiredError("otp")
	}

	c.otp = otp
	return nil
}
