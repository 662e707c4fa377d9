// Package services provides domain services that orchestrate business
// operations across multiple domain entities. It implements workflows
// that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - AgentDispatcher: a domain service for pairing preparing orders with
//     available delivery agents
//
// Domain services coordinate between aggregates, keeping cross-aggregate
// business rules out of the application layer.
package services
