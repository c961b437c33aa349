package bench

import (
	"errors"
	"fmt"
)

// Error classes. Callers classify failures with errors.Is.
var (
	// ErrInvalidValue: input outside its declared domain. Fix the input and retry.
	ErrInvalidValue = errors.New("invalid value")
	// ErrNotFound: well-formed configuration that the backing table does not contain.
	ErrNotFound = errors.New("not found")
	// ErrOutOfRange: fidelity value outside its declared numeric bounds.
	ErrOutOfRange = errors.New("out of range")
	// ErrConfiguration: malformed constraint table, ambiguous match, or missing
	// backing collaborator. Indicates a build-time defect.
	ErrConfiguration = errors.New("configuration error")
	// ErrTooRestrictive: the requested constraints leave no feasible configuration.
	ErrTooRestrictive = errors.New("constraints too restrictive")
)

// DomainError reports a parameter value rejected by its declared domain.
type DomainError struct {
	Param  string
	Domain Domain // nil when the parameter is not declared at all
	Value  any
	kind   error
}

func (e *DomainError) Error() string {
	if e.Domain == nil {
		return fmt.Sprintf("%v: %q is not a declared parameter (got %v)", e.kind, e.Param, e.Value)
	}
	return fmt.Sprintf("%v: %q must be in %s, but got %v", e.kind, e.Param, e.Domain, e.Value)
}

// Unwrap returns the error class (ErrInvalidValue or ErrOutOfRange).
func (e *DomainError) Unwrap() error {
	return e.kind
}
