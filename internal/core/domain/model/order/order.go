package order

import (
	"errors"
	"fmt"
	"time"

	"gatebite/internal/core/domain/model/kernel"
	"gatebite/internal/pkg/errs"
	"gatebite/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrInvalidTransition is returned when an attempted status change is not
	// permitted from the current state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotAssignedAgent is returned when an agent acts on an order that is
	// not assigned to them.
	ErrNotAssignedAgent = errors.New("order is not assigned to this agent")

	// ErrAlreadyAssigned is returned when assigning an agent to an order that
	// already has one. Agent assignment happens exactly once.
	ErrAlreadyAssigned = errors.New("order already has an assigned agent")

	// ErrOtpMismatch is returned when the submitted delivery OTP does not match
	// the stored one. The order state is unchanged and the attempt is retryable.
	ErrOtpMismatch = errors.New("delivery otp does not match")
)

// Order represents a food-delivery request tracked from placement at an
// airport restaurant through handoff at the boarding gate. It is the
// aggregate root that owns the status state machine, the agent assignment,
// and the delivery OTP.
//
// Order maintains these invariants:
//   - status only moves forward along the delivery path; the only exit is
//     the explicit cancellation from a non-terminal state
//   - the delivery OTP exists exactly while status is picked_up or in_transit
//   - an agent is attached exactly while status is agent_assigned, picked_up,
//     in_transit or delivered
//   - id and confirmation code never change after creation
//   - updatedAt strictly increases on every accepted transition
//
// All fields are private; mutation goes through validated methods so the
// invariants cannot be bypassed.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// confirmationCode is the human-facing order number from the restaurant
	confirmationCode string

	// restaurantID references restaurant the order was placed at
	restaurantID int64

	// restaurantName is a denormalized display field
	restaurantName string

	// userName, userContact and boardingGate are customer-supplied and
	// immutable after creation
	userName     string
	userContact  string
	boardingGate string

	// flightNumber is optional customer-supplied context
	flightNumber *string

	// agentID is the assigned delivery agent (nil until assignment)
	agentID *int64

	// deliveryOTP is the handoff code (nil outside picked_up/in_transit)
	deliveryOTP *string

	// estimatedPickupTime is when the food is expected to be ready
	estimatedPickupTime time.Time

	// status is the current state in the order lifecycle
	status Status

	createdAt time.Time
	updatedAt time.Time

	// guard ensures the order was created via a factory method
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in the order_placed status. This is the only
// way to create a fresh order, ensuring all invariants hold from the start.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - confirmationCode: the restaurant's order number (required)
//   - restaurantID: the restaurant the order was placed at (must be positive)
//   - restaurantName: denormalized display name (may be empty)
//   - userName, userContact, boardingGate: customer details (required)
//   - flightNumber: optional flight context, empty string means absent
//   - estimatedPickupTime: expected food-ready time (zero value means unset)
//
// Returns the created order, or a joined validation error naming every
// invalid parameter.
func NewOrder(
	id kernel.UUID,
	confirmationCode string,
	restaurantID int64,
	restaurantName string,
	userName string,
	userContact string,
	boardingGate string,
	flightNumber string,
	estimatedPickupTime time.Time,
) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		restaurantName:      restaurantName,
		estimatedPickupTime: estimatedPickupTime,
		status:              OrderPlaced,
		createdAt:           now,
		updatedAt:           now,
		guard:               guard.NewConstructorGuard(),
	}

	if flightNumber != "" {
		order.flightNumber = &flightNumber
	}

	if err := errors.Join(
		order.setID(id),
		order.setConfirmationCode(confirmationCode),
		order.setRestaurantID(restaurantID),
		order.setUserName(userName),
		order.setUserContact(userContact),
		order.setBoardingGate(boardingGate),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persisted state.
//
// Beyond field validation it re-checks the cross-field invariants (agent
// presence and OTP presence against the status), so corrupted rows are
// rejected instead of resurfacing as impossible aggregates.
func RestoreOrder(
	id kernel.UUID,
	confirmationCode string,
	restaurantID int64,
	restaurantName string,
	userName string,
	userContact string,
	boardingGate string,
	flightNumber *string,
	status Status,
	agentID *int64,
	deliveryOTP *string,
	estimatedPickupTime time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		restaurantName:      restaurantName,
		flightNumber:        flightNumber,
		agentID:             agentID,
		deliveryOTP:         deliveryOTP,
		estimatedPickupTime: estimatedPickupTime,
		status:              status,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setConfirmationCode(confirmationCode),
		order.setRestaurantID(restaurantID),
		order.setUserName(userName),
		order.setUserContact(userContact),
		order.setBoardingGate(boardingGate),
		status.Validate(),
		status.ValidateCanHaveAgent(agentID != nil),
		status.ValidateCanHaveOTP(deliveryOTP != nil),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ConfirmationCode returns the human-facing order number.
func (o *Order) ConfirmationCode() string {
	return o.confirmationCode
}

// RestaurantID returns the restaurant the order was placed at.
func (o *Order) RestaurantID() int64 {
	return o.restaurantID
}

// RestaurantName returns the denormalized restaurant display name.
func (o *Order) RestaurantName() string {
	return o.restaurantName
}

// UserName returns the customer's name.
func (o *Order) UserName() string {
	return o.userName
}

// UserContact returns the customer's email or phone.
func (o *Order) UserContact() string {
	return o.userContact
}

// BoardingGate returns the delivery destination gate.
func (o *Order) BoardingGate() string {
	return o.boardingGate
}

// FlightNumber returns the optional flight number, nil if absent.
func (o *Order) FlightNumber() *string {
	return o.flightNumber
}

// Agent returns the assigned delivery agent's ID, nil if unassigned.
func (o *Order) Agent() *int64 {
	return o.agentID
}

// DeliveryOTP returns the current handoff code, nil outside the
// picked_up/in_transit window.
func (o *Order) DeliveryOTP() *string {
	return o.deliveryOTP
}

// EstimatedPickupTime returns when the food is expected to be ready.
func (o *Order) EstimatedPickupTime() time.Time {
	return o.estimatedPickupTime
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last accepted transition.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Advance moves the order to target, which must be the immediate successor
// of the current status or Cancelled. This is the generic manual/automatic
// advancement path; the agent operations below wrap it with their own
// checks and side effects.
//
// Side effects keep the cross-field invariants intact:
//   - advancing into picked_up generates the delivery OTP if absent
//   - advancing into delivered or cancelled clears the OTP
//   - cancelling detaches the agent
//
// Advancing into agent_assigned without an agent is rejected: assignment
// must go through AssignAgent so the agent invariant holds.
func (o *Order) Advance(target Status) error {
	if err := o.status.ValidateAdvance(target); err != nil {
		return err
	}

	switch target {
	case AgentAssigned:
		if o.agentID == nil {
			return fmt.Errorf("%w: %s -> %s requires an assigned agent", ErrInvalidTransition, o.status, target)
		}
	case PickedUp:
		if o.deliveryOTP == nil {
			otp, err := GenerateOTP()
			if err != nil {
				return err
			}
			o.deliveryOTP = &otp
		}
	case Delivered:
		o.deliveryOTP = nil
	case Cancelled:
		o.deliveryOTP = nil
		o.agentID = nil
	}

	o.status = target
	o.touch()
	return nil
}

// AssignAgent attaches a delivery agent and moves the order to agent_assigned.
//
// This method enforces the following rules:
//   - assignment happens exactly once (ErrAlreadyAssigned otherwise)
//   - the order must be in restaurant_preparing (ErrInvalidTransition otherwise)
func (o *Order) AssignAgent(agentID int64) error {
	if o.agentID != nil {
		return ErrAlreadyAssigned
	}
	if o.status != RestaurantPreparing {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, AgentAssigned)
	}

	o.agentID = &agentID
	o.status = AgentAssigned
	o.touch()
	return nil
}

// MarkPickedUp records that the assigned agent collected the order from the
// restaurant. A fresh delivery OTP is generated exactly once here; the agent
// shares it with the customer out of band.
//
// Fails with ErrInvalidTransition unless the order is in agent_assigned, and
// with ErrNotAssignedAgent unless agentID matches the assignment.
func (o *Order) MarkPickedUp(agentID int64) error {
	if o.status != AgentAssigned {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, PickedUp)
	}
	if err := o.validateActor(agentID); err != nil {
		return err
	}

	return o.Advance(PickedUp)
}

// MarkInTransit records that the assigned agent is on the way to the gate.
//
// Fails with ErrInvalidTransition unless the order is in picked_up, and with
// ErrNotAssignedAgent unless agentID matches the assignment.
func (o *Order) MarkInTransit(agentID int64) error {
	if o.status != PickedUp {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, InTransit)
	}
	if err := o.validateActor(agentID); err != nil {
		return err
	}

	return o.Advance(InTransit)
}

// Deliver completes the handoff. It succeeds only from in_transit, only for
// the assigned agent, and only when submittedOTP matches the stored code
// (case-insensitively). On success the OTP is cleared and the order reaches
// the terminal delivered state.
//
// On an OTP mismatch the order is unchanged and ErrOtpMismatch is returned;
// the attempt is retryable and the error carries no hint of the stored code.
// The status check runs first, so delivering before pickup reports
// ErrInvalidTransition, never ErrOtpMismatch.
func (o *Order) Deliver(agentID int64, submittedOTP string) error {
	if o.status != InTransit {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, Delivered)
	}
	if err := o.validateActor(agentID); err != nil {
		return err
	}
	if o.deliveryOTP == nil || !VerifyOTP(submittedOTP, *o.deliveryOTP) {
		return ErrOtpMismatch
	}

	return o.Advance(Delivered)
}

// Cancel moves the order to the terminal cancelled state. Legal from any
// non-terminal state; clears the OTP and detaches the agent so the
// cross-field invariants keep holding.
func (o *Order) Cancel() error {
	return o.Advance(Cancelled)
}

// validateActor checks that agentID is the order's assigned agent.
func (o *Order) validateActor(agentID int64) error {
	if o.agentID == nil || *o.agentID != agentID {
		return ErrNotAssignedAgent
	}
	return nil
}

// touch advances updatedAt, keeping it strictly increasing even when the
// wall clock has not moved between two accepted transitions.
func (o *Order) touch() {
	now := time.Now().UTC()
	if !now.After(o.updatedAt) {
		now = o.updatedAt.Add(time.Nanosecond)
	}
	o.updatedAt = now
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setConfirmationCode validates and sets the human-facing order number.
func (o *Order) setConfirmationCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("confirmationCode")
	}
	o.confirmationCode = code
	return nil
}

// setRestaurantID validates and sets the restaurant reference.
func (o *Order) setRestaurantID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("restaurantID", fmt.Errorf("%d is not greater than 0", id))
	}
	o.restaurantID = id
	return nil
}

// setUserName validates and sets the customer's name.
func (o *Order) setUserName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("userName")
	}
	o.userName = name
	return nil
}

// setUserContact validates and sets the customer's email or phone.
func (o *Order) setUserContact(contact string) error {
	if contact == "" {
		return errs.NewValueIsRequiredError("userContact")
	}
	o.userContact = contact
	return nil
}

// setBoardingGate validates and sets the destination gate.
func (o *Order) setBoardingGate(gate string) error {
	if gate == "" {
		return errs.NewValueIsRequiredError("boardingGate")
	}
	o.boardingGate = gate
	return nil
}
