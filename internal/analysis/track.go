package analysis

import (
	"fmt"

	"github.com/tyl-create/elec-n/internal/sim"
)

// Axis selects one component of a source's state. The velocity axes sit
// exactly three tags above their position counterparts; index arithmetic
// elsewhere relies on that layout.
type Axis int

const (
	X Axis = iota
	Y
	Z
	VX
	VY
	VZ
)

var axisNames = map[Axis]string{
	X:  "x",
	Y:  "y",
	Z:  "z",
	VX: "vx",
	VY: "vy",
	VZ: "vz",
}

func (a Axis) String() string {
	if name, ok := axisNames[a]; ok {
		return name
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// ParseAxis maps a name like "x" or "vz" back to its tag.
func ParseAxis(name string) (Axis, error) {
	for a, n := range axisNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrAxis, name)
}

// Track extracts one component of one source's motion across frames.
// The source index refers to the recorded order, which the runner keeps
// stable from frame to frame.
func Track(frames []sim.Frame, source int, axis Axis) ([]float64, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if source < 0 || source >= len(frames[0].Sources) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSource, source, len(frames[0].Sources))
	}
	if _, ok := axisNames[axis]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrAxis, int(axis))
	}

	out := make([]float64, len(frames))
	for i, f := range frames {
		s := f.Sources[source]
		switch axis {
		case X:
			out[i] = s.Position.X
		case Y:
			out[i] = s.Position.Y
		case Z:
			out[i] = s.Position.Z
		case VX:
			out[i] = s.Velocity.X
		case VY:
			out[i] = s.Velocity.Y
		case VZ:
			out[i] = s.Velocity.Z
		}
	}
	return out, nil
}
