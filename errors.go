package dynamix

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for lookup and capability failures.
var (
	ErrNotFound    = errors.New("dynamix: attribute not found")
	ErrNotComposed = errors.New("dynamix: capability not composed")
	ErrUnbound     = errors.New("dynamix: object has no class")
)

// Sentinel causes for definition-time composition failures. These are always
// observed wrapped inside a *CompositionError.
var (
	ErrClassName        = errors.New("dynamix: invalid class name")
	ErrAlreadyDefined   = errors.New("dynamix: class already defined")
	ErrNotDeclarative   = errors.New("dynamix: type is not declarative")
	ErrUnknownTrait     = errors.New("dynamix: unknown trait")
	ErrUnknownOp        = errors.New("dynamix: unknown override op")
	ErrOverrideMismatch = errors.New("dynamix: override signature mismatch")
	ErrOverrideConflict = errors.New("dynamix: duplicate override")
	ErrOverrideOrphan   = errors.New("dynamix: override without its capability")
)

// Sentinel errors for snapshot encoding and decoding.
var (
	ErrInvalidFormat = errors.New("dynamix: invalid snapshot format")
	ErrClassMismatch = errors.New("dynamix: snapshot class mismatch")
)

// CompositionError reports a class definition that could not be composed.
// It carries the class name, the override op when the failure is op-specific,
// and wraps the underlying cause so errors.Is reaches the sentinel.
//
// Composition failures surface when the class is built, never later from
// instance operations.
type CompositionError struct {
	Class string
	Op    Op
	cause error
}

func (e *CompositionError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("dynamix: compose %s: op %s: %v", e.Class, e.Op, e.cause)
	}
	return fmt.Sprintf("dynamix: compose %s: %v", e.Class, e.cause)
}

// Unwrap returns the underlying cause.
func (e *CompositionError) Unwrap() error {
	return e.cause
}

// composeErr wraps cause in a CompositionError for the given class.
func composeErr(class string, op Op, cause error) error {
	return &CompositionError{Class: class, Op: op, cause: cause}
}

// IsNotFound checks if err is a lookup failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNotComposed checks if err reports a missing capability.
func IsNotComposed(err error) bool {
	return errors.Is(err, ErrNotComposed)
}

// IsComposition checks if err is (or wraps) a CompositionError.
func IsComposition(err error) bool {
	var ce *CompositionError
	return errors.As(err, &ce)
}

// AsComposition extracts the CompositionError from err's chain.
func AsComposition(err error) (*CompositionError, bool) {
	var ce *CompositionError
	ok := errors.As(err, &ce)
	return ce, ok
}
