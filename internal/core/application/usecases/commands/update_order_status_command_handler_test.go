package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gatebite/internal/core/application/usecases/commands"
	"gatebite/internal/core/domain/model/agent"
	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/pkg/keylock"
)

func TestUpdateOrderStatusCommandHandler_Handle_Advance(t *testing.T) {
	ctx := t.Context()
	aggregate := placedOrder(t)
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.RestaurantPreparing)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockStatusPublisher)
	publisher.On("Publish", mock.AnythingOfType("order.Snapshot")).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, keylock.NewKeyedMutex(), publisher)
	snap, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.RestaurantPreparing.String(), snap.Status)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_CancelReleasesAgent(t *testing.T) {
	ctx := t.Context()
	assigned := busyAgent(t, 7)
	aggregate := assignedOrder(t, assigned.ID())
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Cancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		agentRepo.On("Get", mock.Anything, assigned.ID()).Return(assigned, nil).Once(),
		agentRepo.On("Update", mock.Anything, assigned).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockStatusPublisher)
	publisher.On("Publish", mock.AnythingOfType("order.Snapshot")).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, keylock.NewKeyedMutex(), publisher)
	snap, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled.String(), snap.Status)
	assert.Nil(t, snap.AgentID)
	assert.Equal(t, agent.StatusAvailable, assigned.Status())
	agentRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := placedOrder(t)
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.PickedUp)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockStatusPublisher)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, keylock.NewKeyedMutex(), publisher)
	_, err = h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
	assert.Equal(t, order.OrderPlaced, aggregate.Status())
}
