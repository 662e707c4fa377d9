package queries

import (
	"context"

	"gorm.io/gorm"

	"gatebite/internal/pkg/errs"
)

// GetAgentQueryHandler reads one agent record.
type GetAgentQueryHandler struct {
	db *gorm.DB
}

// NewGetAgentQueryHandler creates a handler for agent lookups.
// Requires a GORM database connection for query execution.
func NewGetAgentQueryHandler(db *gorm.DB) GetAgentQueryHandler {
	return GetAgentQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ErrObjectNotFound when no agent
// matches.
func (h GetAgentQueryHandler) Handle(ctx context.Context, query GetAgentQuery) (GetAgentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAgentQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			code,
			status,
			current_location
		FROM agents
		WHERE id = ?
	`, query.AgentID()).Rows()
	if err != nil {
		return GetAgentQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetAgentQueryResponse{}, err
		}
		return GetAgentQueryResponse{}, errs.NewObjectNotFoundError("agentID", query.AgentID())
	}

	var resp GetAgentQueryResponse
	err = rows.Scan(
		&resp.ID,
		&resp.Name,
		&resp.Code,
		&resp.Status,
		&resp.CurrentLocation,
	)
	if err != nil {
		return GetAgentQueryResponse{}, err
	}

	return resp, rows.Err()
}
