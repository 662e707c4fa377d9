package services

import (
	"errors"

	"gatebite/internal/core/domain/model/agent"
	"gatebite/internal/core/domain/model/order"
)

// ErrAgentNotFound is returned when no suitable agent is available for
// dispatch. This occurs when either no agents are provided or none of the
// provided agents is currently available.
var ErrAgentNotFound = errors.New("agent not found")

// AgentDispatcher is a domain service responsible for pairing a preparing
// order with a delivery agent.
//
// Business rules:
//   - Orders must be valid and accepting an agent before dispatch
//   - Only available agents are considered; busy ones are skipped
//   - Candidates are evaluated in the order given, so the caller controls
//     priority (the scheduler passes them lowest id first)
//   - The pairing mutates both sides: the order takes the agent id, the
//     agent becomes busy at the order's boarding gate
//
// Example usage:
//
//	dispatcher := services.NewAgentDispatcher()
//	chosen, err := dispatcher.Dispatch(preparing, candidates)
//	if errors.Is(err, services.ErrAgentNotFound) {
//	    // everyone is busy, try again next round
//	    return
//	}
type AgentDispatcher struct{}

// NewAgentDispatcher creates a new AgentDispatcher instance.
func NewAgentDispatcher() AgentDispatcher {
	return AgentDispatcher{}
}

// Dispatch selects the first available agent among the candidates and
// assigns it to the order. Returns the chosen agent so the caller can
// persist both aggregates in one transaction.
func (d AgentDispatcher) Dispatch(o *order.Order, candidates []*agent.DeliveryAgent) (*agent.DeliveryAgent, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	chosen, err := d.findAvailableAgent(candidates)
	if err != nil {
		return nil, err
	}

	// Order side first: it enforces the status and already-assigned
	// rules. The agent side cannot fail after the availability check.
	if err = o.AssignAgent(chosen.ID()); err != nil {
		return nil, err
	}

	if err = chosen.Assign(o.BoardingGate()); err != nil {
		return nil, err
	}

	return chosen, nil
}

func (d AgentDispatcher) findAvailableAgent(candidates []*agent.DeliveryAgent) (*agent.DeliveryAgent, error) {
	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}

		if candidate.IsAvailable() {
			return candidate, nil
		}
	}

	return nil, ErrAgentNotFound
}
