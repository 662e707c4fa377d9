package kernel

import (
	"fmt"

	"gatebite/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for a zero-value UUID,
// one that did not come out of NewUUID, UUIDFromString, or UUIDFromBytes.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies an aggregate. It wraps github.com/google/uuid behind a
// value object so order ids are immutable and comparable, and so a
// forgotten initialization surfaces as a validation error instead of the
// nil UUID silently flowing through the system.
//
// Example:
//
//	id := kernel.NewUUID()
//	parsed, err := kernel.UUIDFromString(request.OrderID)
//	if err != nil {
//	    return fmt.Errorf("bad order id: %w", err)
//	}
//	if id.IsEqual(parsed) { ... }
type UUID struct {
	id uuid.UUID
}

// NewUUID returns a fresh random (version 4) identifier.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the canonical textual form, as received in route
// parameters and request bodies. Parsing is delegated to uuid.Parse, so
// the braced, urn-prefixed, and unhyphenated variants are accepted too.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes restores an identifier from its 16-byte database
// representation. Unlike UUIDFromString it rejects the nil UUID, since a
// stored row must never carry one.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	restored := UUID{id: id}
	if err = restored.Validate(); err != nil {
		return UUID{}, err
	}

	return restored, nil
}

// String returns the canonical hyphenated form, the one used for lock
// keys, subscriber registry keys, and JSON payloads.
func (u UUID) String() string {
	return u.id.String()
}

// Value returns the wrapped uuid.UUID for the persistence layer. The
// result is a copy; mutating it does not touch the value object.
func (u UUID) Value() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers carry the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate fails with ErrUUIDIsNotConstructed for the zero value. Every
// aggregate constructor calls this on the ids it receives.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
