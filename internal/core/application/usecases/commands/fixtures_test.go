package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gatebite/internal/core/domain/model/agent"
	"gatebite/internal/core/domain/model/kernel"
	"gatebite/internal/core/domain/model/order"
)

func placedOrder(t *testing.T) *order.Order {
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
	return o
}

func preparingOrder(t *testing.T) *order.Order {
	t.Helper()

	o := placedOrder(t)
	require.NoError(t, o.Advance(order.RestaurantPreparing))
	return o
}

func assignedOrder(t *testing.T, agentID int64) *order.Order {
	t.Helper()

	o := preparingOrder(t)
	require.NoError(t, o.AssignAgent(agentID))
	return o
}

func inTransitOrder(t *testing.T, agentID int64) (*order.Order, string) {
	t.Helper()

	o := assignedOrder(t, agentID)
	require.NoError(t, o.MarkPickedUp(agentID))
	require.NoError(t, o.MarkInTransit(agentID))
	require.NotNil(t, o.DeliveryOTP())
	return o, *o.DeliveryOTP()
}

func availableAgent(t *testing.T, id int64) *agent.DeliveryAgent {
	t.Helper()

	a, err := agent.NewDeliveryAgent(id, "Maya Chen", "AGENT742")
	require.NoError(t, err)
	return a
}

func busyAgent(t *testing.T, id int64) *agent.DeliveryAgent {
	t.Helper()

	a := availableAgent(t, id)
	require.NoError(t, a.Assign("B22"))
	return a
}
