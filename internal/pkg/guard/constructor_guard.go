// Package guard marks domain objects created through their constructors,
// letting Validate reject zero-value instances.
// Embedding a ConstructorGuard lets a type detect whether it was created
// through its designated constructor or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created through
// their designated constructor functions. It prevents direct struct
// initialization and enforces validation rules.
//
// The guard works by maintaining an internal flag that is only set to true when
// the object is created through the proper constructor function. Any attempt to
// use a zero-value struct will fail validation.
//
// Example usage:
//
//	var ErrAgentNotConstructed = errors.New("DeliveryAgent must be created via NewDeliveryAgent")
//
//	type DeliveryAgent struct {
//	    id    int64
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewDeliveryAgent(id int64, name string) (DeliveryAgent, error) {
//	    if name == "" {
//	        return DeliveryAgent{}, errors.New("name is required")
//	    }
//	    return DeliveryAgent{
//	        id:    id,
//	        name:  name,
//	        guard: guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (a DeliveryAgent) Validate() error {
//	    return a.guard.Validate(ErrAgentNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a new ConstructorGuard that marks an object as
// properly constructed. This should be called in the constructor of domain objects
// to ensure they can be distinguished from zero-value instances.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was properly constructed through
// its designated constructor function.
//
// If the object was created as a zero value (not through the constructor),
// this method returns the provided validation error. If validationError is nil,
// ErrDefaultConstructorGuard is returned instead.
//
// Returns:
//   - nil if the object was properly constructed
//   - validationError if the object was not constructed through its constructor
//   - ErrDefaultConstructorGuard if validationError is nil and object not constructed
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
