// Package ports defines repository and notification interfaces for the
// delivery domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"gatebite/internal/core/domain/model/agent"
)

// AgentRepository defines the persistence contract for delivery agent
// aggregates.
type AgentRepository interface {
	// Add persists a new agent aggregate to storage.
	Add(ctx context.Context, aggregate *agent.DeliveryAgent) error

	// Update persists changes to an existing agent aggregate.
	Update(ctx context.Context, aggregate *agent.DeliveryAgent) error

	// Get retrieves an agent aggregate by its unique identifier.
	Get(ctx context.Context, id int64) (*agent.DeliveryAgent, error)

	// GetFirstAvailable retrieves an agent that is free to take an order.
	// Used by the automatic assignment workflow. The choice among available
	// agents is implementation defined.
	GetFirstAvailable(ctx context.Context) (*agent.DeliveryAgent, error)
}
