package charge

import (
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// Geometry tags the charge distribution law used for a Source.
type Geometry int

const (
	Point Geometry = iota
	Ring
	ConductingSphere
	NonConductingSphere
)

var geometryNames = map[Geometry]string{
	Point:               "point",
	Ring:                "ring",
	ConductingSphere:    "conducting_sphere",
	NonConductingSphere: "nonconducting_sphere",
}

func (g Geometry) String() string {
	if name, ok := geometryNames[g]; ok {
		return name
	}
	return fmt.Sprintf("geometry(%d)", int(g))
}

// ParseGeometry maps a config name to its Geometry tag.
func ParseGeometry(name string) (Geometry, error) {
	for g, n := range geometryNames {
		if n == name {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrGeometry, name)
}

// MarshalYAML encodes the geometry by name in scene files.
func (g Geometry) MarshalYAML() (interface{}, error) {
	name, ok := geometryNames[g]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrGeometry, int(g))
	}
	return name, nil
}

func (g *Geometry) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseGeometry(name)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Source is a charged body in a scene. It is a pure value: assignment copies
// it completely, and nothing in the engine retains a reference to a caller's
// Source.
//
// Radius is ignored for Point sources and required positive otherwise. Mass
// is only consulted when the body moves; a zero Mass on a hand-built literal
// is treated as 1.0 by the integrator.
type Source struct {
	ID       string
	Geometry Geometry
	Position r3.Vec
	Velocity r3.Vec
	Charge   float64
	Radius   float64
	Mass     float64
	Fixed    bool
}

// New constructs a validated Source with a fresh ID. Geometry, radius and
// mass constraints are checked here, once, so the evaluation laws can assume
// well-formed inputs.
func New(g Geometry, pos r3.Vec, q, radius, mass float64) (Source, error) {
	if _, ok := geometryNames[g]; !ok {
		return Source{}, fmt.Errorf("%w: %d", ErrGeometry, int(g))
	}
	if g != Point && radius <= 0 {
		return Source{}, fmt.Errorf("%w: %s with radius %g", ErrRadius, g, radius)
	}
	if mass <= 0 {
		return Source{}, fmt.Errorf("%w: got %g", ErrMass, mass)
	}
	return Source{
		ID:       uuid.NewString(),
		Geometry: g,
		Position: pos,
		Charge:   q,
		Radius:   radius,
		Mass:     mass,
	}, nil
}

// NewPoint is shorthand for a unit-mass point charge.
func NewPoint(pos r3.Vec, q float64) Source {
	s, _ := New(Point, pos, q, 0, 1.0)
	return s
}

// Clone returns an independent snapshot of a scene. Source carries no
// reference fields, so element copies are already deep.
func Clone(sources []Source) []Source {
	if sources == nil {
		return nil
	}
	out := make([]Source, len(sources))
	copy(out, sources)
	return out
}
