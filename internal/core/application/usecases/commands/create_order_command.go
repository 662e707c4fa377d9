package commands

import (
	"errors"
	"time"

	"gatebite/internal/core/domain/model/kernel"
	"gatebite/internal/pkg/errs"
	"gatebite/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to register a new food delivery
// order for gate delivery. The confirmation code is the customer's order
// number from the restaurant and must be unique across all orders.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(
//	    orderID, "ORD-100001", 3, "Skyline Tacos",
//	    "Alex Rivera", "alex@example.com", "B22", "UA1847",
//	    pickupTime,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	snap, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	confirmationCode    string
	restaurantID        int64
	restaurantName      string
	userName            string
	userContact         string
	boardingGate        string
	flightNumber        string
	estimatedPickupTime time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates that the order ID is valid and all required fields are present.
// The flight number is optional; an empty string means the customer did not
// provide one.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	confirmationCode string,
	restaurantID int64,
	restaurantName string,
	userName string,
	userContact string,
	boardingGate string,
	flightNumber string,
	estimatedPickupTime time.Time,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		restaurantName:      restaurantName,
		flightNumber:        flightNumber,
		estimatedPickupTime: estimatedPickupTime,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setConfirmationCode(confirmationCode),
		orderCommand.setRestaurantID(restaurantID),
		orderCommand.setUserName(userName),
		orderCommand.setUserContact(userContact),
		orderCommand.setBoardingGate(boardingGate),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ConfirmationCode returns the customer's restaurant order number.
func (c CreateOrderCommand) ConfirmationCode() string {
	return c.confirmationCode
}

// RestaurantID returns the identifier of the restaurant preparing the order.
func (c CreateOrderCommand) RestaurantID() int64 {
	return c.restaurantID
}

// RestaurantName returns the display name of the restaurant.
func (c CreateOrderCommand) RestaurantName() string {
	return c.restaurantName
}

// UserName returns the customer's name.
func (c CreateOrderCommand) UserName() string {
	return c.userName
}

// UserContact returns the customer's contact, email or phone.
func (c CreateOrderCommand) UserContact() string {
	return c.userContact
}

// BoardingGate returns the gate where the order is delivered.
func (c CreateOrderCommand) BoardingGate() string {
	return c.boardingGate
}

// FlightNumber returns the optional flight number, empty when absent.
func (c CreateOrderCommand) FlightNumber() string {
	return c.flightNumber
}

// EstimatedPickupTime returns when the food is expected to be ready.
func (c CreateOrderCommand) EstimatedPickupTime() time.Time {
	return c.estimatedPickupTime
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setConfirmationCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("confirmationCode")
	}

	c.confirmationCode = code
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidError("restaurantID")
	}

	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setUserName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("userName")
	}

	c.userName = name
	return nil
}

func (c *CreateOrderCommand) setUserContact(contact string) error {
	if contact == "" {
		return errs.NewValueIsRequiredError("userContact")
	}

	c.userContact = contact
	return nil
}

func (c *CreateOrderCommand) setBoardingGate(gate string) error {
	if gate == "" {
		return errs.NewValueIsRequiredError("boardingGate")
	}

	c.boardingGate = gate
	return nil
}
