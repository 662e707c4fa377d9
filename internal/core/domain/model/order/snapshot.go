package order

import "time"

// Snapshot is the full current state of an Order at a point in time, as
// handed to subscribers of the tracking stream and returned by read paths.
// It is an immutable value: once built it never observes later mutations of
// the aggregate it was taken from.
//
// JSON field names match the wire format pushed over the tracking channel.
type Snapshot struct {
	ID                  string     `json:"id"`
	ConfirmationCode    string     `json:"confirmation_code"`
	RestaurantID        int64      `json:"restaurant_id"`
	RestaurantName      string     `json:"restaurant_name,omitempty"`
	UserName            string     `json:"user_name"`
	UserContact         string     `json:"user_contact"`
	BoardingGate        string     `json:"boarding_gate"`
	FlightNumber        *string    `json:"flight_number,omitempty"`
	Status              string     `json:"status"`
	AgentID             *int64     `json:"agent_id,omitempty"`
	AgentName           *string    `json:"agent_name,omitempty"`
	DeliveryOTP         *string    `json:"delivery_otp,omitempty"`
	EstimatedPickupTime *time.Time `json:"estimated_pickup_time,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Snapshot captures the order's current state. Pointer fields are copied so
// the snapshot stays stable if the aggregate is mutated afterwards.
//
// AgentName is not known to the aggregate; callers that have resolved the
// agent attach it before publishing.
func (o *Order) Snapshot() Snapshot {
	snap := Snapshot{
		ID:               o.id.String(),
		ConfirmationCode: o.confirmationCode,
		RestaurantID:     o.restaurantID,
		RestaurantName:   o.restaurantName,
		UserName:         o.userName,
		UserContact:      o.userContact,
		BoardingGate:     o.boardingGate,
		Status:           o.status.String(),
		CreatedAt:        o.createdAt,
		UpdatedAt:        o.updatedAt,
	}

	if o.flightNumber != nil {
		fn := *o.flightNumber
		snap.FlightNumber = &fn
	}
	if o.agentID != nil {
		id := *o.agentID
		snap.AgentID = &id
	}
	if o.deliveryOTP != nil {
		otp := *o.deliveryOTP
		snap.DeliveryOTP = &otp
	}
	if !o.estimatedPickupTime.IsZero() {
		t := o.estimatedPickupTime
		snap.EstimatedPickupTime = &t
	}

	return snap
}

// NewerThan reports whether this snapshot supersedes other. UpdatedAt is the
// primary ordering; equal timestamps fall back to status progression so a
// replayed frame never regresses the observed state.
func (s Snapshot) NewerThan(other Snapshot) bool {
	if s.UpdatedAt.After(other.UpdatedAt) {
		return true
	}
	if s.UpdatedAt.Before(other.UpdatedAt) {
		return false
	}

	mine, err := StatusFromString(s.Status)
	if err != nil {
		return false
	}
	theirs, err := StatusFromString(other.Status)
	if err != nil {
		return true
	}
	return mine > theirs
}
