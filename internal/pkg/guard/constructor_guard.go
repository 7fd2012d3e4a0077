// Package guard lets value objects and entities detect whether they were built
// through their constructor or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller supplies no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a field and set only by constructors.
//
//	type Drone struct {
//	    id    kernel.ID
//	    guard guard.ConstructorGuard
//	}
//
//	func (d *Drone) Validate() error {
//	    return d.guard.Validate(ErrDroneIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the owning object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed objects and validationError otherwise,
// falling back to ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
