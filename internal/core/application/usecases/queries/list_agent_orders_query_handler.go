package queries

import (
	"context"

	"gorm.io/gorm"

	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/pkg/errs"
)

// ListAgentOrdersQueryHandler reads the active orders of one agent for the
// agent app's task list.
type ListAgentOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListAgentOrdersQueryHandler creates a handler for agent workload
// queries. Requires a GORM database connection for query execution.
func NewListAgentOrdersQueryHandler(db *gorm.DB) ListAgentOrdersQueryHandler {
	return ListAgentOrdersQueryHandler{db: db}
}

// Handle executes the query. Fails with errs.ErrObjectNotFound when the
// agent does not exist; an agent with no active orders gets an empty slice.
// Orders come back newest first, the way the agent app lists them.
func (h ListAgentOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListAgentOrdersQuery,
) ([]order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var agentExists bool
	err := h.db.WithContext(ctx).Raw(
		`SELECT EXISTS (SELECT 1 FROM agents WHERE id = ?)`, query.AgentID(),
	).Scan(&agentExists).Error
	if err != nil {
		return nil, err
	}
	if !agentExists {
		return nil, errs.NewObjectNotFoundError("agentID", query.AgentID())
	}

	rows, err := h.db.WithContext(ctx).Raw(selectOrderSnapshot+`
		WHERE o.agent_id = ?
		  AND o.status NOT IN (?, ?)
		ORDER BY o.created_at DESC
	`, query.AgentID(), order.Delivered.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]order.Snapshot, 0)
	for rows.Next() {
		snap, scanErr := scanOrderSnapshot(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		snapshots = append(snapshots, snap)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return snapshots, nil
}
