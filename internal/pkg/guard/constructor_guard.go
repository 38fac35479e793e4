// Package guard implements the constructor guard pattern used by domain objects
// to detect zero-value instances that bypassed their designated constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed objects from zero values.
// Embed one in a struct and set it with NewConstructorGuard inside the constructor;
// Validate then fails for any instance created by direct struct initialization.
//
// Example:
//
//	type ShareToken struct {
//	    value string
//	    guard ConstructorGuard
//	}
//
//	func MintShareToken() ShareToken {
//	    return ShareToken{value: randomToken(), guard: NewConstructorGuard()}
//	}
//
//	func (t ShareToken) Validate() error {
//	    return t.guard.Validate(ErrShareTokenIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
