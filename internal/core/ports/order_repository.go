package ports

import (
	"context"

	"gatebite/internal/core/domain/model/kernel"
	"gatebite/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its current status and assignment.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByConfirmationCode retrieves an order by its customer-facing
	// confirmation code, e.g. "ORD-100001".
	GetByConfirmationCode(ctx context.Context, code string) (*order.Order, error)

	// GetFirstPreparingUnassigned retrieves the oldest order that the
	// restaurant is preparing and that has no agent yet. Used by the
	// automatic assignment workflow to find pending orders.
	GetFirstPreparingUnassigned(ctx context.Context) (*order.Order, error)

	// GetAllActiveByAgent retrieves all non-terminal orders assigned
	// to the given agent, oldest first.
	GetAllActiveByAgent(ctx context.Context, agentID int64) ([]*order.Order, error)
}
