package commands

import (
	"context"

	"gatebite/internal/core/domain/model/agent"
	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/core/ports"
	"gatebite/internal/pkg/keylock"
)

// UpdateOrderStatusCommandHandler processes manual status changes from the
// restaurant dashboard. The whole read-modify-write runs under the order's
// key lock, so two concurrent updates on one order cannot both succeed; the
// loser re-reads committed state and fails the adjacency check.
//
// If the change ends the order (delivered or cancelled) and an agent was
// attached, the agent is returned to the available pool in the same
// transaction.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	locks      *keylock.KeyedMutex
	publisher  ports.StatusPublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler for manual status
// change operations.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.KeyedMutex,
	publisher ports.StatusPublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
	}
}

// Handle moves the order to the requested status. Cancellation goes through
// the aggregate's Cancel, any other target through Advance, so adjacency and
// the agent/OTP invariants are enforced in one place. Publishes the
// committed snapshot after releasing the order lock.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (order.Snapshot, error) {
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

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}

	var assignedAgent *agent.DeliveryAgent
	if agentID := aggregate.Agent(); agentID != nil {
		assignedAgent, err = agentRepo.Get(ctx, *agentID)
		if err != nil {
			return order.Snapshot{}, err
		}
	}

	if cmd.Target() == order.Cancelled {
		err = aggregate.Cancel()
	} else {
		err = aggregate.Advance(cmd.Target())
	}
	if err != nil {
		return order.Snapshot{}, err
	}

	if aggregate.Status().IsTerminal() && assignedAgent != nil && !assignedAgent.IsAvailable() {
		if err = assignedAgent.Release(); err != nil {
			return order.Snapshot{}, err
		}
		if err = agentRepo.Update(ctx, assignedAgent); err != nil {
			return order.Snapshot{}, err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}

	snap := aggregate.Snapshot()
	if snap.AgentID != nil && assignedAgent != nil {
		name := assignedAgent.Name()
		snap.AgentName = &name
	}

	unlock()
	h.publisher.Publish(snap)

	return snap, nil
}
