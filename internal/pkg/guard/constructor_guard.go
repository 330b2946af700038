// Package guard detects zero-value domain objects that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in value objects, aggregates and commands.
// Only NewConstructorGuard produces a guard that validates, so a struct literal
// or zero value of the owning type fails its Validate call.
//
// Example:
//
//	type TakeParcelCommand struct {
//	    parcelID kernel.UUID
//	    guard    guard.ConstructorGuard
//	}
//
//	func (c TakeParcelCommand) Validate() error {
//	    return c.guard.Validate(ErrTakeParcelCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the owning object as built by its constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard was not produced by NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
