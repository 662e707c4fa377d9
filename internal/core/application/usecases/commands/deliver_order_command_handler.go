package commands

import (
	"context"

	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/core/ports"
	"gatebite/internal/pkg/keylock"
)

// DeliverOrderCommandHandler completes an order. The aggregate gates the
// transition on OTP verification; on success the order reaches the terminal
// delivered state and the agent returns to the available pool in the same
// transaction.
//
// An OTP mismatch leaves the order untouched and is retryable; the error
// carries no hint of the stored code.
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
	locks      *keylock.KeyedMutex
	publisher  ports.StatusPublisher
}

// NewDeliverOrderCommandHandler creates a handler for the delivery handoff.
func NewDeliverOrderCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.KeyedMutex,
	publisher ports.StatusPublisher,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
	}
}

// Handle resolves the agent, verifies ownership and OTP through the
// aggregate, and completes the order. Fails with order.ErrOtpMismatch on a
// wrong code and order.ErrInvalidTransition when the order is not in
// in_transit; the status check wins when both would apply.
func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (order.Snapshot, error) {
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

	if err = aggregate.Deliver(reportingAgent.ID(), cmd.OTP()); err != nil {
		return order.Snapshot{}, err
	}

	if !reportingAgent.IsAvailable() {
		if err = reportingAgent.Release(); err != nil {
			return order.Snapshot{}, err
		}
		if err = agentRepo.Update(ctx, reportingAgent); err != nil {
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
	name := reportingAgent.Name()
	snap.AgentName = &name

	unlock()
	h.publisher.Publish(snap)

	return snap, nil
}
