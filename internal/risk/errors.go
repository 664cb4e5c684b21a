package risk

import (
	"errors"
	"fmt"
)

var (
	ErrNotAnInteger        = errors.New("label is not an integer")
	ErrNotAStaticOption    = errors.New("selected value is not a static option")
	ErrFieldNotFound       = errors.New("cannot find field")
	ErrNoConfiguredOptions = errors.New("cannot find values of field")
	ErrNoMatchingOption    = errors.New("cannot find matching value")
)

// ExtractError is returned when the selected option of a select box cannot
// be read as an ordinal.
type ExtractError struct {
	Field string
	Label string
	Err   error
}

func (e *ExtractError) Error() string {
	if errors.Is(e.Err, ErrNotAnInteger) {
		return fmt.Sprintf("field %s: %v: %q", e.Field, e.Err, e.Label)
	}
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// ResolveError is returned when a product cannot be bound to the target field.
type ResolveError struct {
	Field   string
	Product int64
	Err     error
}

func (e *ResolveError) Error() string {
	if errors.Is(e.Err, ErrNoMatchingOption) {
		return fmt.Sprintf("%v %d in field %s", e.Err, e.Product, e.Field)
	}
	return fmt.Sprintf("%v %s", e.Err, e.Field)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// RuleError names the rule that failed.
type RuleError struct {
	Rule string
	Err  error
}

func (e *RuleError) Error() string { return fmt.Sprintf("rule %q: %v", e.Rule, e.Err) }

func (e *RuleError) Unwrap() error { return e.Err }
