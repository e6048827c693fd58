package sim

import "errors"

var (
	// ErrDt indicates a non-positive timestep.
	ErrDt = errors.New("sim: dt must be positive")

	// ErrDuration indicates a non-positive run duration.
	ErrDuration = errors.New("sim: duration must be positive")

	// ErrDtTooLarge indicates a timestep above the configured maximum.
	ErrDtTooLarge = errors.New("sim: dt exceeds max step")

	// ErrDiverged indicates a NaN or Inf crept into the scene mid-run.
	ErrDiverged = errors.New("sim: scene diverged (NaN or Inf detected)")
)

// RunError wraps an error with the step and time it occurred at.
type RunError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *RunError) Error() string {
	return e.Wrapped.Error()
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
