package commands

import (
	"context"

	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/core/ports"
	"gatebite/internal/pkg/keylock"
)

// MarkPickedUpCommandHandler records the pickup of an order by its assigned
// agent. The delivery OTP is generated here, exactly once, and is included
// in the returned snapshot so the inbound adapter can hand it to the agent.
// The customer sees the same code on the tracking page and reads it back to
// the agent at the gate.
type MarkPickedUpCommandHandler struct {
	uowFactory UoWFactory
	locks      *keylock.KeyedMutex
	publisher  ports.StatusPublisher
}

// NewMarkPickedUpCommandHandler creates a handler for pickup reports.
func NewMarkPickedUpCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.KeyedMutex,
	publisher ports.StatusPublisher,
) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
	}
}

// Handle resolves the agent, verifies it owns the order, and moves the order
// to picked_up. Fails with errs.ErrObjectNotFound for an unknown agent or
// order, order.ErrNotAssignedAgent when another agent owns the order, and
// order.ErrInvalidTransition when the order is not in agent_assigned.
func (h *MarkPickedUpCommandHandler) Handle(ctx context.Context, cmd MarkPickedUpCommand) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	unlock := h.locks.Lock(cmd.OrderID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	agentRepo := uow.AgentRepository()

	reportingAgent, err := agentRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return order.Snapshot{}, err
	}

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}

	if err = aggregate.MarkPickedUp(reportingAgent.ID()); err != nil {
		return order.Snapshot{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}

	snap := aggregate.Snapshot()
	name := reportingAgent.Name()
	snap.AgentName = &name

	unlock()
	h.publisher.Publish(snap)

	return snap, nil
}
