package commands

import (
	"context"

	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/core/ports"
	"gatebite/internal/pkg/keylock"
)

// AssignAgentCommandHandler attaches a delivery agent to an order that the
// restaurant is preparing. Both the order and the agent change state, so the
// handler updates them in one transaction.
//
// Example:
//
//	handler := NewAssignAgentCommandHandler(uowFactory, locks, publisher)
//	snap, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order or unknown agent
//	case errors.Is(err, order.ErrAlreadyAssigned):
//	    // someone beat us to it
//	case errors.Is(err, agent.ErrAgentUnavailable):
//	    // the agent is busy with another order
//	}
type AssignAgentCommandHandler struct {
	uowFactory UoWFactory
	locks      *keylock.KeyedMutex
	publisher  ports.StatusPublisher
}

// NewAssignAgentCommandHandler creates a handler for manual agent assignment.
func NewAssignAgentCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.KeyedMutex,
	publisher ports.StatusPublisher,
) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
	}
}

// Handle resolves the agent, assigns it to the order, and moves the order to
// agent_assigned. The agent becomes busy and its location tracks the
// delivery gate.
func (h *AssignAgentCommandHandler) Handle(ctx context.Context, cmd AssignAgentCommand) (order.Snapshot, error) {
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

	assignedAgent, err := agentRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return order.Snapshot{}, err
	}

	if err = aggregate.AssignAgent(assignedAgent.ID()); err != nil {
		return order.Snapshot{}, err
	}

	if err = assignedAgent.Assign(aggregate.BoardingGate()); err != nil {
		return order.Snapshot{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	if err = agentRepo.Update(ctx, assignedAgent); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}

	snap := aggregate.Snapshot()
	name := assignedAgent.Name()
	snap.AgentName = &name

	unlock()
	h.publisher.Publish(snap)

	return snap, nil
}
