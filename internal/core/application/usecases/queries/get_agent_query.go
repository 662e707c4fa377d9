package queries

import (
	"errors"

	"gatebite/internal/pkg/errs"
	"gatebite/internal/pkg/guard"
)

var ErrGetAgentQueryIsNotConstructed = errors.New(
	"GetAgentQuery must be created via NewGetAgentQuery constructor",
)

// GetAgentQuery retrieves one delivery agent's record.
type GetAgentQuery struct { //nolint:recvcheck //using for validation
	agentID int64

	guard guard.ConstructorGuard
}

// NewGetAgentQuery creates a query for one agent.
func NewGetAgentQuery(agentID int64) (GetAgentQuery, error) {
	if agentID <= 0 {
		return GetAgentQuery{}, errs.NewValueIsInvalidError("agentID")
	}

	return GetAgentQuery{
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAgentQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentQueryIsNotConstructed)
}

// AgentID returns the identifier of the requested agent.
func (q GetAgentQuery) AgentID() int64 {
	return q.agentID
}

// GetAgentQueryResponse is the read model of one delivery agent.
type GetAgentQueryResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Code            string `json:"agent_code"`
	Status          string `json:"status"`
	CurrentLocation string `json:"current_location,omitempty"`
}
