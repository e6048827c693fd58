package charge

import "errors"

// Configuration errors reported by [New]. Construction fails fast; the
// evaluation laws themselves never return errors.
var (
	// ErrRadius indicates a non-point geometry with a non-positive radius.
	ErrRadius = errors.New("charge: radius must be positive for non-point geometry")

	// ErrMass indicates a non-positive mass.
	ErrMass = errors.New("charge: mass must be positive")

	// ErrGeometry indicates an unrecognized geometry tag or name.
	ErrGeometry = errors.New("charge: unknown geometry")
)
