package resolve

import (
	"errors"
	"fmt"
)

// InvalidVersionError is returned when a version string fails to parse.
type InvalidVersionError struct {
	Input string
	Cause string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Cause)
}

// InvalidRequirementError is returned when a requirement string fails to parse.
type InvalidRequirementError struct {
	Input string
	Cause string
}

func (e *InvalidRequirementError) Error() string {
	return fmt.Sprintf("invalid requirement %q: %s", e.Input, e.Cause)
}

// ErrInconsistentRequirements is the single failure kind the solver itself
// produces: no assignment exists that satisfies every constraint. It
// carries no payload describing which constraint conflicted with which;
// callers that want a hint at what went wrong should enable tracing (see
// WithTrace) and inspect the trace output.
var ErrInconsistentRequirements = errors.New("inconsistent requirements: no assignment satisfies all constraints")
