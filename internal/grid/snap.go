// Package grid snaps coordinates onto a uniform lattice. Scene builders use
// it to place sources on tidy spacings; hosts use it for snap-to-grid
// placement of interactively dragged charges.
package grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrStep indicates a non-positive grid step.
var ErrStep = errors.New("grid: step must be positive")

// Snap rounds each coordinate of p to the nearest multiple of step. Ties
// round away from zero. A non-positive step is a caller bug and is reported
// as an error rather than returning NaN or Inf coordinates.
func Snap(p r3.Vec, step float64) (r3.Vec, error) {
	if step <= 0 {
		return r3.Vec{}, fmt.Errorf("%w: got %g", ErrStep, step)
	}
	return r3.Vec{
		X: math.Round(p.X/step) * step,
		Y: math.Round(p.Y/step) * step,
		Z: math.Round(p.Z/step) * step,
	}, nil
}
