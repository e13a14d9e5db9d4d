package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrDegenerateSeparation indicates two bodies at the same position during force evaluation.
	ErrDegenerateSeparation = errors.New("dynamo: degenerate separation (coincident bodies)")

	// ErrNonFiniteState indicates a step that would leave NaN or Inf in a body's state.
	ErrNonFiniteState = errors.New("dynamo: non-finite body state")

	// ErrNonPositiveMass indicates a body whose mass is not a positive finite number.
	ErrNonPositiveMass = errors.New("dynamo: body mass must be positive")

	// ErrDuplicateBody indicates two bodies sharing a name in one registry.
	ErrDuplicateBody = errors.New("dynamo: duplicate body name")

	// ErrUnknownBody indicates a lookup for a body that is not registered.
	ErrUnknownBody = errors.New("dynamo: unknown body")

	// ErrUnknownPreset indicates a system preset that does not exist.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")
)

// SeparationError reports the pair of bodies whose separation collapsed to
// zero, or became so small the force between them is not finite.
type SeparationError struct {
	Body   string
	Anchor string
}

func (e *SeparationError) Error() string {
	return fmt.Sprintf("%s: %s and %s are too close", ErrDegenerateSeparation, e.Body, e.Anchor)
}

func (e *SeparationError) Unwrap() error {
	return ErrDegenerateSeparation
}

// BodyError wraps a construction error with the offending body.
type BodyError struct {
	Body    string
	Wrapped error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("body %q: %v", e.Body, e.Wrapped)
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Tick    int
	Elapsed float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d (t=%.0fs): %v", e.Tick, e.Elapsed, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
