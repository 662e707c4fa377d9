package services_test

import (
	"testing"
	"time"

	"gatebite/internal/core/domain/model/agent"
	"gatebite/internal/core/domain/model/kernel"
	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preparingOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-100001",
		3,
		"Skyline Tacos",
		"Alex Rivera",
		"alex@example.com",
		"B22",
		"UA1847",
		time.Now().UTC().Add(20*time.Minute),
	)
	require.NoError(t, err)
	require.NoError(t, o.Advance(order.RestaurantPreparing))
	return o
}

func availableAgent(t *testing.T, id int64) *agent.DeliveryAgent {
	t.Helper()

	a, err := agent.NewDeliveryAgent(id, "Maya Chen", "AGENT742")
	require.NoError(t, err)
	return a
}

func busyAgent(t *testing.T, id int64) *agent.DeliveryAgent {
	t.Helper()

	a, err := agent.NewDeliveryAgent(id, "Jordan Lee", "AGENT658")
	require.NoError(t, err)
	require.NoError(t, a.Assign("A03"))
	return a
}

func TestAgentDispatcher_Dispatch_PicksFirstAvailableAgent(t *testing.T) {
	dispatcher := services.NewAgentDispatcher()
	o := preparingOrder(t)
	busy := busyAgent(t, 2)
	first := availableAgent(t, 5)
	second := availableAgent(t, 9)

	chosen, err := dispatcher.Dispatch(o, []*agent.DeliveryAgent{busy, first, second})

	require.NoError(t, err)
	require.Equal(t, first.ID(), chosen.ID())

	assert.Equal(t, order.AgentAssigned, o.Status())
	require.NotNil(t, o.Agent())
	assert.Equal(t, first.ID(), *o.Agent())

	assert.Equal(t, agent.StatusBusy, chosen.Status())
	assert.Equal(t, o.BoardingGate(), chosen.CurrentLocation())
	assert.True(t, second.IsAvailable(), "later candidates stay untouched")
}

func TestAgentDispatcher_Dispatch_AllAgentsBusy(t *testing.T) {
	dispatcher := services.NewAgentDispatcher()
	o := preparingOrder(t)

	_, err := dispatcher.Dispatch(o, []*agent.DeliveryAgent{busyAgent(t, 2), busyAgent(t, 3)})

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrAgentNotFound)
	assert.Equal(t, order.RestaurantPreparing, o.Status())
	assert.Nil(t, o.Agent())
}

func TestAgentDispatcher_Dispatch_NoCandidates(t *testing.T) {
	dispatcher := services.NewAgentDispatcher()

	_, err := dispatcher.Dispatch(preparingOrder(t), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrAgentNotFound)
}

func TestAgentDispatcher_Dispatch_OrderAlreadyAssigned(t *testing.T) {
	dispatcher := services.NewAgentDispatcher()
	o := preparingOrder(t)
	require.NoError(t, o.AssignAgent(2))
	candidate := availableAgent(t, 5)

	_, err := dispatcher.Dispatch(o, []*agent.DeliveryAgent{candidate})

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrAlreadyAssigned)
	assert.True(t, candidate.IsAvailable(), "failed dispatch must not busy the candidate")
}

func TestAgentDispatcher_Dispatch_InvalidOrder(t *testing.T) {
	dispatcher := services.NewAgentDispatcher()

	_, err := dispatcher.Dispatch(&order.Order{}, []*agent.DeliveryAgent{availableAgent(t, 5)})

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
}

func TestAgentDispatcher_Dispatch_InvalidCandidate(t *testing.T) {
	dispatcher := services.NewAgentDispatcher()

	_, err := dispatcher.Dispatch(preparingOrder(t), []*agent.DeliveryAgent{{}})

	require.Error(t, err)
	assert.ErrorIs(t, err, agent.ErrAgentIsNotConstructed)
}
