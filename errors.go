package segtremig

import "github.com/pkg/errors"

// Format-string constants for parameter validation errors, in the style
// of a typical Go "errors catalogue" file: used with fmt.Errorf or
// errors.Wrapf to attach the offending value and a short reason.
const (
	InvalidIntParameterError    = "invalid %s %d, %s"
	InvalidFloatParameterError  = "invalid %s %f, %s"
	InvalidStringParameterError = "invalid %s %s, %s"
	DimensionMismatchError      = "%s has dimension %d, expected %d"
	UnorderedEventListError     = "devent at index %d has time %f, which is not >= previous time %f"
)

// Sentinel error values for the fatal conditions defined by the core.
// Wrap these with errors.Wrap/errors.Wrapf at the detection site so
// callers can recover the sentinel with errors.Cause.
var (
	// ErrInfiniteCoalescentTime is returned when no demographic event
	// remains and more than one population still carries live lineages
	// with no migration between them, whatever the recombination and
	// coalescent rates are, or when no event of any kind can fire:
	// coalescence can never complete.
	ErrInfiniteCoalescentTime = errors.New("infinite coalescent time: no migration and no pending demographic events")

	// ErrAllocationFailure is returned when an arena would have to grow
	// past its configured hard ceiling.
	ErrAllocationFailure = errors.New("allocation failure: arena growth exceeded configured limit")

	// ErrInvalidParameter is returned by configuration validation.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// errInfiniteCoalescentTime wraps ErrInfiniteCoalescentTime with a stack
// trace at the point of detection.
func errInfiniteCoalescentTime() error {
	return errors.WithStack(ErrInfiniteCoalescentTime)
}
