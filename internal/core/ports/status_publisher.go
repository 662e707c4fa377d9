package ports

import (
	"gatebite/internal/core/domain/model/order"
)

// StatusPublisher pushes order state changes to interested observers,
// typically connected tracking clients. Publish is called after the change
// has been committed, so observers never see state that later rolls back.
//
// Implementations must not block: a slow observer is the implementation's
// problem, not the caller's.
type StatusPublisher interface {
	// Publish announces the latest committed state of an order.
	Publish(snapshot order.Snapshot)
}
