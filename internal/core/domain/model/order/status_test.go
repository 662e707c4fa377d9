package order_test

import (
	"testing"

	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	cases := map[order.Status]string{
		order.Unknown:             "unknown",
		order.OrderPlaced:         "order_placed",
		order.RestaurantPreparing: "restaurant_preparing",
		order.AgentAssigned:       "agent_assigned",
		order.PickedUp:            "picked_up",
		order.InTransit:           "in_transit",
		order.Delivered:           "delivered",
		order.Cancelled:           "cancelled",
	}

	for status, expected := range cases {
		assert.Equal(t, expected, status.String())
	}

	t.Run("out of range value renders as unknown", func(t *testing.T) {
		assert.Equal(t, "unknown", order.Status(42).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round-trip every valid status", func(t *testing.T) {
		for _, s := range []order.Status{
			order.OrderPlaced,
			order.RestaurantPreparing,
			order.AgentAssigned,
			order.PickedUp,
			order.InTransit,
			order.Delivered,
			order.Cancelled,
		} {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown strings", func(t *testing.T) {
		for _, s := range []string{"", "unknown", "ORDER_PLACED", "preparing", "delivered "} {
			_, err := order.StatusFromString(s)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept all lifecycle statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.OrderPlaced,
			order.RestaurantPreparing,
			order.AgentAssigned,
			order.PickedUp,
			order.InTransit,
			order.Delivered,
			order.Cancelled,
		} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("should reject unknown and out-of-range values", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(42).Validate())
		require.Error(t, order.Status(-1).Validate())
	})
}

func TestStatus_Next(t *testing.T) {
	expected := map[order.Status]order.Status{
		order.OrderPlaced:         order.RestaurantPreparing,
		order.RestaurantPreparing: order.AgentAssigned,
		order.AgentAssigned:       order.PickedUp,
		order.PickedUp:            order.InTransit,
		order.InTransit:           order.Delivered,
	}

	for current, next := range expected {
		got, ok := current.Next()
		require.True(t, ok, "expected %s to have a successor", current)
		assert.Equal(t, next, got)
	}

	t.Run("terminal states have no successor", func(t *testing.T) {
		for _, s := range []order.Status{order.Delivered, order.Cancelled, order.Unknown} {
			_, ok := s.Next()
			assert.False(t, ok, "%s must not have a successor", s)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())

	for _, s := range []order.Status{
		order.OrderPlaced,
		order.RestaurantPreparing,
		order.AgentAssigned,
		order.PickedUp,
		order.InTransit,
	} {
		assert.False(t, s.IsTerminal(), "%s must not be terminal", s)
	}
}

func TestStatus_ValidateAdvance(t *testing.T) {
	ordered := []order.Status{
		order.OrderPlaced,
		order.RestaurantPreparing,
		order.AgentAssigned,
		order.PickedUp,
		order.InTransit,
		order.Delivered,
	}

	t.Run("should allow every immediate successor", func(t *testing.T) {
		for i := 0; i < len(ordered)-1; i++ {
			require.NoError(t, ordered[i].ValidateAdvance(ordered[i+1]))
		}
	})

	t.Run("should allow cancellation from every non-terminal state", func(t *testing.T) {
		for _, s := range ordered[:len(ordered)-1] {
			require.NoError(t, s.ValidateAdvance(order.Cancelled))
		}
	})

	t.Run("should reject cancellation of terminal states", func(t *testing.T) {
		require.ErrorIs(t, order.Delivered.ValidateAdvance(order.Cancelled), order.ErrInvalidTransition)
		require.ErrorIs(t, order.Cancelled.ValidateAdvance(order.Cancelled), order.ErrInvalidTransition)
	})

	t.Run("should reject skips", func(t *testing.T) {
		for i := 0; i < len(ordered); i++ {
			for j := i + 2; j < len(ordered); j++ {
				require.ErrorIs(t, ordered[i].ValidateAdvance(ordered[j]), order.ErrInvalidTransition,
					"%s -> %s must be rejected", ordered[i], ordered[j])
			}
		}
	})

	t.Run("should reject regressions", func(t *testing.T) {
		for i := 1; i < len(ordered); i++ {
			for j := 0; j < i; j++ {
				require.ErrorIs(t, ordered[i].ValidateAdvance(ordered[j]), order.ErrInvalidTransition,
					"%s -> %s must be rejected", ordered[i], ordered[j])
			}
		}
	})

	t.Run("should reject self transitions", func(t *testing.T) {
		for _, s := range ordered {
			require.Error(t, s.ValidateAdvance(s))
		}
	})

	t.Run("should reject invalid targets", func(t *testing.T) {
		require.Error(t, order.OrderPlaced.ValidateAdvance(order.Unknown))
		require.Error(t, order.OrderPlaced.ValidateAdvance(order.Status(42)))
	})
}

func TestStatus_ValidateCanHaveAgent(t *testing.T) {
	withAgent := []order.Status{order.AgentAssigned, order.PickedUp, order.InTransit, order.Delivered}
	withoutAgent := []order.Status{order.OrderPlaced, order.RestaurantPreparing, order.Cancelled}

	for _, s := range withAgent {
		require.NoError(t, s.ValidateCanHaveAgent(true), "%s must require an agent", s)
		require.Error(t, s.ValidateCanHaveAgent(false), "%s without an agent must fail", s)
	}

	for _, s := range withoutAgent {
		require.NoError(t, s.ValidateCanHaveAgent(false), "%s must allow no agent", s)
		require.Error(t, s.ValidateCanHaveAgent(true), "%s with an agent must fail", s)
	}
}

func TestStatus_ValidateCanHaveOTP(t *testing.T) {
	withOTP := []order.Status{order.PickedUp, order.InTransit}
	withoutOTP := []order.Status{
		order.OrderPlaced,
		order.RestaurantPreparing,
		order.AgentAssigned,
		order.Delivered,
		order.Cancelled,
	}

	for _, s := range withOTP {
		require.NoError(t, s.ValidateCanHaveOTP(true), "%s must carry an otp", s)
		require.Error(t, s.ValidateCanHaveOTP(false), "%s without an otp must fail", s)
	}

	for _, s := range withoutOTP {
		require.NoError(t, s.ValidateCanHaveOTP(false), "%s must allow no otp", s)
		require.Error(t, s.ValidateCanHaveOTP(true), "%s with an otp must fail", s)
	}
}
