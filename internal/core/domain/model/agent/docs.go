// Package agent contains the DeliveryAgent aggregate.
//
// A delivery agent is a courier working the airport terminal. Agents cycle
// between available and busy as orders are assigned to them and completed.
// The aggregate enforces that only available agents can take work and that
// an agent's location follows its active assignment.
package agent
