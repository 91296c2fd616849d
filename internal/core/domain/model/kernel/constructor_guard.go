package kernel

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when no
// specific validation error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed value objects from zero
// values. Embedding a guard and setting it with NewConstructorGuard inside the
// factory function lets Validate detect structs that bypassed construction.
//
// Example:
//
//	type TimeWindow struct {
//	    start, end ClockTime
//	    guard      ConstructorGuard
//	}
//
//	func NewTimeWindow(...) (TimeWindow, error) {
//	    ...
//	    return TimeWindow{start: s, end: e, guard: NewConstructorGuard()}, nil
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed objects, validationError for zero
// values, and ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
