// Package order provides domain entities and business logic for order
// lifecycle management in the airport delivery coordination system. It
// implements the Order aggregate root with state transitions, agent
// ownership checks, and the delivery OTP gate.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Snapshot: The immutable view of an order pushed to tracking subscribers
//
// Key business rules:
//   - Status follows a defined workflow: order_placed -> restaurant_preparing ->
//     agent_assigned -> picked_up -> in_transit -> delivered, with cancellation
//     as the only exit from non-terminal states
//   - An agent is assigned exactly once, from restaurant_preparing
//   - The delivery OTP is generated exactly once at pickup, verified
//     case-insensitively at handoff, and cleared at delivery
//   - Agent-issued operations are rejected unless the actor is the assigned agent
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
