// Package queries contains read-only operations for the tracking and
// dashboard surfaces. Queries bypass the aggregates and read the database
// directly, following the CQRS split: the write side owns invariants, the
// read side owns projection shape.
package queries

import (
	"errors"

	"gatebite/internal/core/domain/model/kernel"
	"gatebite/internal/pkg/errs"
	"gatebite/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrGetOrderByConfirmationQueryIsNotConstructed = errors.New(
		"GetOrderByConfirmationQuery must be created via NewGetOrderByConfirmationQuery constructor",
	)
)

// GetOrderQuery retrieves the current state of one order by its identifier.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	snap, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no such order
//	}
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderByConfirmationQuery retrieves one order by the customer-facing
// confirmation code. Used by the tracking page, where the customer only
// knows the number on their restaurant receipt.
type GetOrderByConfirmationQuery struct { //nolint:recvcheck //using for validation
	confirmationCode string

	guard guard.ConstructorGuard
}

// NewGetOrderByConfirmationQuery creates a query keyed by confirmation code.
func NewGetOrderByConfirmationQuery(confirmationCode string) (GetOrderByConfirmationQuery, error) {
	if confirmationCode == "" {
		return GetOrderByConfirmationQuery{}, errs.NewValueIsRequiredError("confirmationCode")
	}

	return GetOrderByConfirmationQuery{
		confirmationCode: confirmationCode,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByConfirmationQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByConfirmationQueryIsNotConstructed)
}

// ConfirmationCode returns the requested confirmation code.
func (q GetOrderByConfirmationQuery) ConfirmationCode() string {
	return q.confirmationCode
}
