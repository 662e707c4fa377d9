package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gatebite/internal/core/application/usecases/commands"
	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/pkg/errs"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByConfirmationCode", mock.Anything, "ORD-100001").
			Return(nil, errs.NewObjectNotFoundError("confirmationCode", "ORD-100001")).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockStatusPublisher)
	publisher.On("Publish", mock.AnythingOfType("order.Snapshot")).Once()

	h := commands.NewCreateOrderCommandHandler(factory, publisher)
	snap, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, cmd.OrderID().String(), snap.ID)
	assert.Equal(t, order.OrderPlaced.String(), snap.Status)
	assert.Nil(t, snap.AgentID)
	assert.Nil(t, snap.DeliveryOTP)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_DuplicateConfirmation(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t)

	existing := placedOrder(t)
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByConfirmationCode", mock.Anything, "ORD-100001").Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockStatusPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, publisher)
	_, err := h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, commands.ErrDuplicateConfirmation)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	publisher := new(MockStatusPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, publisher)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByConfirmationCode", mock.Anything, "ORD-100001").
			Return(nil, errs.NewObjectNotFoundError("confirmationCode", "ORD-100001")).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockStatusPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, publisher)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}
