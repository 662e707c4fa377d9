package commands

import (
	"context"
	"errors"

	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/core/ports"
	"gatebite/internal/pkg/errs"
)

// ErrDuplicateConfirmation is returned when an order with the same
// confirmation code already exists.
var ErrDuplicateConfirmation = errors.New("order confirmation code already exists")

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders start in order_placed status with no agent and no OTP. The
// committed state is published to the tracking stream so a customer who
// opens the tracking page immediately sees the order.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	snap, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrDuplicateConfirmation) {
//	    // the customer already registered this restaurant order
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.StatusPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and a
// StatusPublisher for post-commit notification.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.StatusPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// Rejects duplicate confirmation codes, persists the order inside a
// transaction, and returns the committed snapshot.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	_, err := orderRepo.GetByConfirmationCode(ctx, cmd.ConfirmationCode())
	if err == nil {
		return order.Snapshot{}, ErrDuplicateConfirmation
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return order.Snapshot{}, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.ConfirmationCode(),
		cmd.RestaurantID(),
		cmd.RestaurantName(),
		cmd.UserName(),
		cmd.UserContact(),
		cmd.BoardingGate(),
		cmd.FlightNumber(),
		cmd.EstimatedPickupTime(),
	)
	if err != nil {
		return order.Snapshot{}, err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}

	snap := aggregate.Snapshot()
	h.publisher.Publish(snap)

	return snap, nil
}
