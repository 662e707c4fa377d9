package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatebite/internal/core/application/usecases/commands"
	"gatebite/internal/core/domain/model/kernel"
)

func validCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()

	cmd, err := commands.NewCreateOrderCommand(
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
	return cmd
}

func TestNewCreateOrderCommand(t *testing.T) {
	cmd := validCreateOrderCommand(t)

	assert.NoError(t, cmd.Validate())
	assert.Equal(t, "ORD-100001", cmd.ConfirmationCode())
	assert.Equal(t, int64(3), cmd.RestaurantID())
	assert.Equal(t, "Skyline Tacos", cmd.RestaurantName())
	assert.Equal(t, "Alex Rivera", cmd.UserName())
	assert.Equal(t, "alex@example.com", cmd.UserContact())
	assert.Equal(t, "B22", cmd.BoardingGate())
	assert.Equal(t, "UA1847", cmd.FlightNumber())
}

func TestNewCreateOrderCommandOptionalFields(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "ORD-100002", 3, "", "Alex Rivera",
		"alex@example.com", "B22", "", time.Time{},
	)

	require.NoError(t, err)
	assert.Empty(t, cmd.FlightNumber())
	assert.True(t, cmd.EstimatedPickupTime().IsZero())
}

func TestNewCreateOrderCommandValidation(t *testing.T) {
	tests := []struct {
		name         string
		orderID      kernel.UUID
		confirmation string
		restaurantID int64
		userName     string
		userContact  string
		boardingGate string
	}{
		{"empty order id", kernel.UUID{}, "ORD-100001", 3, "Alex", "alex@example.com", "B22"},
		{"empty confirmation", kernel.NewUUID(), "", 3, "Alex", "alex@example.com", "B22"},
		{"zero restaurant", kernel.NewUUID(), "ORD-100001", 0, "Alex", "alex@example.com", "B22"},
		{"empty user name", kernel.NewUUID(), "ORD-100001", 3, "", "alex@example.com", "B22"},
		{"empty contact", kernel.NewUUID(), "ORD-100001", 3, "Alex", "", "B22"},
		{"empty gate", kernel.NewUUID(), "ORD-100001", 3, "Alex", "alex@example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewCreateOrderCommand(
				tt.orderID, tt.confirmation, tt.restaurantID, "Skyline Tacos",
				tt.userName, tt.userContact, tt.boardingGate, "", time.Time{},
			)

			assert.Error(t, err)
		})
	}
}

func TestCreateOrderCommandZeroValueFailsValidation(t *testing.T) {
	var cmd commands.CreateOrderCommand

	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
