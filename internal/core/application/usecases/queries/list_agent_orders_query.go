package queries

import (
	"errors"

	"gatebite/internal/pkg/errs"
	"gatebite/internal/pkg/guard"
)

var ErrListAgentOrdersQueryIsNotConstructed = errors.New(
	"ListAgentOrdersQuery must be created via NewListAgentOrdersQuery constructor",
)

// ListAgentOrdersQuery retrieves the active workload of one delivery agent:
// every order assigned to them that has not yet reached a terminal state.
type ListAgentOrdersQuery struct { //nolint:recvcheck //using for validation
	agentID int64

	guard guard.ConstructorGuard
}

// NewListAgentOrdersQuery creates a query for an agent's active orders.
func NewListAgentOrdersQuery(agentID int64) (ListAgentOrdersQuery, error) {
	if agentID <= 0 {
		return ListAgentOrdersQuery{}, errs.NewValueIsInvalidError("agentID")
	}

	return ListAgentOrdersQuery{
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListAgentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAgentOrdersQueryIsNotConstructed)
}

// AgentID returns the identifier of the agent whose orders are requested.
func (q ListAgentOrdersQuery) AgentID() int64 {
	return q.agentID
}
