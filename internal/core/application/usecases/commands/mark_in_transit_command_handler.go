package commands

import (
	"context"

	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/core/ports"
	"gatebite/internal/pkg/keylock"
)

// MarkInTransitCommandHandler records that the assigned agent left the
// restaurant and is heading to the gate.
type MarkInTransitCommandHandler struct {
	uowFactory UoWFactory
	locks      *keylock.KeyedMutex
	publisher  ports.StatusPublisher
}

// NewMarkInTransitCommandHandler creates a handler for transit reports.
func NewMarkInTransitCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.KeyedMutex,
	publisher ports.StatusPublisher,
) MarkInTransitCommandHandler {
	return MarkInTransitCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
	}
}

// Handle resolves the agent, verifies ownership, and moves the order to
// in_transit. Error taxonomy matches MarkPickedUpCommandHandler.Handle.
func (h *MarkInTransitCommandHandler) Handle(ctx context.Context, cmd MarkInTransitCommand) (order.Snapshot, error) {
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

	if err = aggregate.MarkInTransit(reportingAgent.ID()); err != nil {
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
