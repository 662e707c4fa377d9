package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/pkg/errs"
)

// selectOrderSnapshot is the shared projection for all order read paths.
// The agent name rides along via the join so the tracking page can show who
// is carrying the order without a second round trip.
const selectOrderSnapshot = `
	SELECT
		o.id,
		o.confirmation_code,
		o.restaurant_id,
		o.restaurant_name,
		o.user_name,
		o.user_contact,
		o.boarding_gate,
		o.flight_number,
		o.status,
		o.agent_id,
		a.name,
		o.delivery_otp,
		o.estimated_pickup_time,
		o.created_at,
		o.updated_at
	FROM orders o
	LEFT JOIN agents a ON a.id = o.agent_id
`

// scanOrderSnapshot reads one projected row into a Snapshot.
func scanOrderSnapshot(rows *sql.Rows) (order.Snapshot, error) {
	var (
		id                  uuid.UUID
		snap                order.Snapshot
		flightNumber        sql.NullString
		agentID             sql.NullInt64
		agentName           sql.NullString
		deliveryOTP         sql.NullString
		estimatedPickupTime sql.NullTime
	)

	err := rows.Scan(
		&id,
		&snap.ConfirmationCode,
		&snap.RestaurantID,
		&snap.RestaurantName,
		&snap.UserName,
		&snap.UserContact,
		&snap.BoardingGate,
		&flightNumber,
		&snap.Status,
		&agentID,
		&agentName,
		&deliveryOTP,
		&estimatedPickupTime,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	)
	if err != nil {
		return order.Snapshot{}, err
	}

	snap.ID = id.String()
	if flightNumber.Valid {
		snap.FlightNumber = &flightNumber.String
	}
	if agentID.Valid {
		snap.AgentID = &agentID.Int64
	}
	if agentName.Valid {
		snap.AgentName = &agentName.String
	}
	if deliveryOTP.Valid {
		snap.DeliveryOTP = &deliveryOTP.String
	}
	if estimatedPickupTime.Valid {
		t := estimatedPickupTime.Time.UTC()
		snap.EstimatedPickupTime = &t
	}
	snap.CreatedAt = snap.CreatedAt.UTC()
	snap.UpdatedAt = snap.UpdatedAt.UTC()

	return snap, nil
}

// queryOneOrder runs the snapshot projection with a WHERE clause expected to
// match at most one row.
func queryOneOrder(ctx context.Context, db *gorm.DB, where string, arg any) (order.Snapshot, error) {
	rows, err := db.WithContext(ctx).Raw(selectOrderSnapshot+where, arg).Rows()
	if err != nil {
		return order.Snapshot{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return order.Snapshot{}, err
		}
		return order.Snapshot{}, errs.NewObjectNotFoundError("order", arg)
	}

	snap, err := scanOrderSnapshot(rows)
	if err != nil {
		return order.Snapshot{}, err
	}

	return snap, rows.Err()
}

// GetOrderQueryHandler reads one order snapshot by id.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order lookups by id.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ErrObjectNotFound when no order
// matches.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	return queryOneOrder(ctx, h.db, `WHERE o.id = ?`, query.OrderID().Value())
}

// GetOrderByConfirmationQueryHandler reads one order snapshot by its
// confirmation code.
type GetOrderByConfirmationQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByConfirmationQueryHandler creates a handler for order lookups
// by confirmation code.
func NewGetOrderByConfirmationQueryHandler(db *gorm.DB) GetOrderByConfirmationQueryHandler {
	return GetOrderByConfirmationQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ErrObjectNotFound when no order
// matches.
func (h GetOrderByConfirmationQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByConfirmationQuery,
) (order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	return queryOneOrder(ctx, h.db, `WHERE o.confirmation_code = ?`, query.ConfirmationCode())
}
