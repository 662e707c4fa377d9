package commands

import (
	"context"
	"errors"

	"gatebite/internal/core/domain/model/agent"
	"gatebite/internal/core/domain/model/kernel"
	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/core/domain/services"
	"gatebite/internal/core/ports"
	"gatebite/internal/pkg/errs"
	"gatebite/internal/pkg/keylock"
)

var (
	// ErrNoPendingOrder means no preparing order is waiting for an agent.
	ErrNoPendingOrder = errors.New("no pending order found")
	// ErrNoAvailableAgent means every agent is busy.
	ErrNoAvailableAgent = errors.New("no available agent found")
)

// AutoAssignAgentCommandHandler performs one round of automatic agent
// assignment. Orders are matched oldest first; both outcomes of an empty
// round (ErrNoPendingOrder, ErrNoAvailableAgent) are expected conditions
// for the scheduler, not failures.
//
// Example:
//
//	handler := NewAutoAssignAgentCommandHandler(uowFactory, locks, publisher)
//	_, err := handler.Handle(ctx, NewAutoAssignAgentCommand())
//	switch {
//	case errors.Is(err, ErrNoPendingOrder):
//	    log.Println("nothing to assign")
//	case errors.Is(err, ErrNoAvailableAgent):
//	    log.Println("all agents are busy")
//	case err != nil:
//	    log.Printf("assignment failed: %v", err)
//	}
type AutoAssignAgentCommandHandler struct {
	uowFactory UoWFactory
	locks      *keylock.KeyedMutex
	dispatcher services.AgentDispatcher
	publisher  ports.StatusPublisher
}

// NewAutoAssignAgentCommandHandler creates a handler for automatic agent
// assignment.
func NewAutoAssignAgentCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.KeyedMutex,
	publisher ports.StatusPublisher,
) AutoAssignAgentCommandHandler {
	return AutoAssignAgentCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		dispatcher: services.NewAgentDispatcher(),
		publisher:  publisher,
	}
}

// Handle picks the oldest preparing unassigned order and an available agent,
// then assigns them to each other in one transaction. The candidate is found
// without the lock, then re-read under the order's keyed lock, so a manual
// assignment racing this round can win at most once; the loser backs off
// until the next round.
func (h *AutoAssignAgentCommandHandler) Handle(ctx context.Context, cmd AutoAssignAgentCommand) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	orderID, err := h.nextPendingOrderID(ctx)
	if err != nil {
		return order.Snapshot{}, err
	}

	unlock := h.locks.Lock(orderID.String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return order.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	agentRepo := uow.AgentRepository()

	// The candidate read happened before the lock was held; only the
	// re-read under the lock is authoritative.
	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return order.Snapshot{}, err
	}

	freeAgent, err := agentRepo.GetFirstAvailable(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return order.Snapshot{}, ErrNoAvailableAgent
	}
	if err != nil {
		return order.Snapshot{}, err
	}

	chosen, err := h.dispatcher.Dispatch(aggregate, []*agent.DeliveryAgent{freeAgent})
	switch {
	case errors.Is(err, services.ErrAgentNotFound):
		return order.Snapshot{}, ErrNoAvailableAgent
	case errors.Is(err, order.ErrAlreadyAssigned), errors.Is(err, order.ErrInvalidTransition):
		// A concurrent assignment took the candidate between the two
		// reads. Nothing left to do this round.
		return order.Snapshot{}, ErrNoPendingOrder
	case err != nil:
		return order.Snapshot{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	if err = agentRepo.Update(ctx, chosen); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}

	snap := aggregate.Snapshot()
	name := chosen.Name()
	snap.AgentName = &name

	unlock()
	h.publisher.Publish(snap)

	return snap, nil
}

// nextPendingOrderID finds the oldest preparing unassigned order in its own
// read-only transaction. The lock key has to be known before locking, so
// this peek cannot run under the lock.
func (h *AutoAssignAgentCommandHandler) nextPendingOrderID(ctx context.Context) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetFirstPreparingUnassigned(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, ErrNoPendingOrder
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	return aggregate.ID(), nil
}
