package order

import (
	"fmt"

	"gatebite/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	OrderPlaced -> RestaurantPreparing -> AgentAssigned -> PickedUp -> InTransit -> Delivered
//
// Cancelled is reachable from any non-terminal state. Delivered and
// Cancelled are terminal: no further transitions are allowed.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and the wire format.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// OrderPlaced is the initial status when an order is first created.
	OrderPlaced

	// RestaurantPreparing indicates the restaurant has accepted the order
	// and is preparing the food.
	RestaurantPreparing

	// AgentAssigned indicates a delivery agent has been assigned to carry
	// the order to the boarding gate.
	AgentAssigned

	// PickedUp indicates the assigned agent has collected the order from
	// the restaurant. The delivery OTP exists from this point on.
	PickedUp

	// InTransit indicates the agent is on the way to the boarding gate.
	InTransit

	// Delivered indicates the order was handed over to the customer after
	// OTP verification. This is a terminal state.
	Delivered

	// Cancelled indicates the order was cancelled before delivery.
	// This is a terminal state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "unknown",
		OrderPlaced:         "order_placed",
		RestaurantPreparing: "restaurant_preparing",
		AgentAssigned:       "agent_assigned",
		PickedUp:            "picked_up",
		InTransit:           "in_transit",
		Delivered:           "delivered",
		Cancelled:           "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		OrderPlaced:         "order_placed",
		RestaurantPreparing: "restaurant_preparing",
		AgentAssigned:       "agent_assigned",
		PickedUp:            "picked_up",
		InTransit:           "in_transit",
		Delivered:           "delivered",
		Cancelled:           "cancelled",
	}
}

// StatusFromString parses the wire/persistence representation of a status.
//
// Returns an error for unrecognized strings, including "unknown".
// This function is used when reconstructing orders from the database and
// when parsing status values from API requests.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are the seven lifecycle states. Unknown (0) and any
// other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the snake_case name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
// Delivered and Cancelled are terminal.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Next returns the immediate successor of the status on the delivery path.
//
// Returns (Unknown, false) for terminal states and for Unknown itself:
// Cancelled is not anyone's successor, it is reached through the explicit
// cancellation exit.
func (s Status) Next() (Status, bool) {
	switch s {
	case OrderPlaced:
		return RestaurantPreparing, true
	case RestaurantPreparing:
		return AgentAssigned, true
	case AgentAssigned:
		return PickedUp, true
	case PickedUp:
		return InTransit, true
	case InTransit:
		return Delivered, true
	default:
		return Unknown, false
	}
}

// ValidateAdvance checks whether the order may move from the current status
// to target without performing the transition.
//
// A transition is legal when target is the immediate successor on the
// delivery path, or when target is Cancelled and the current status is not
// terminal. Everything else, including regressions and skips, is rejected.
//
// Returns:
//   - nil if the transition is allowed
//   - ErrInvalidTransition (wrapped with both states) otherwise
func (s Status) ValidateAdvance(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == Cancelled {
		if s.IsTerminal() {
			return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, s)
		}
		return nil
	}

	if next, ok := s.Next(); ok && next == target {
		return nil
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
}

// ValidateCanHaveAgent validates the consistency between order status and
// agent assignment. An agent is attached exactly while the order is in the
// assigned-through-delivered stretch of the lifecycle.
//
// Parameters:
//   - hasAgent: whether the order has an agent assigned
//
// Returns:
//   - error: validation error if status and agent assignment are inconsistent
func (s Status) ValidateCanHaveAgent(hasAgent bool) error {
	requiresAgent := s == AgentAssigned || s == PickedUp || s == InTransit || s == Delivered

	if hasAgent && !requiresAgent {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have an agent", s),
		)
	}

	if !hasAgent && requiresAgent {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no agent", s),
		)
	}

	return nil
}

// ValidateCanHaveOTP validates the consistency between order status and the
// delivery OTP. The OTP exists exactly between pickup and handoff.
//
// Parameters:
//   - hasOTP: whether the order carries a delivery OTP
//
// Returns:
//   - error: validation error if status and OTP presence are inconsistent
func (s Status) ValidateCanHaveOTP(hasOTP bool) error {
	requiresOTP := s == PickedUp || s == InTransit

	if hasOTP && !requiresOTP {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to carry a delivery otp", s),
		)
	}

	if !hasOTP && requiresOTP {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no delivery otp", s),
		)
	}

	return nil
}
