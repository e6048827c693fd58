package field

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
)

const (
	// Epsilon is the singularity guard distance. Any probe within Epsilon of
	// a source center (or ring sample) receives zero contribution from it.
	// Regularization, not an error: colocated probes are routine during
	// interactive placement.
	Epsilon = 0.05

	// CoulombSI is Coulomb's constant in N·m²/C². The default evaluator uses
	// natural units (k = 1); pass CoulombSI for SI scenes.
	CoulombSI = 8.9875517862e9
)

// RingSamples sets how many point samples approximate a ring for each query
// kind. Field queries need the most samples for smooth off-axis behavior;
// force sampling of a ring target is the cheapest cut.
type RingSamples struct {
	Field     int `yaml:"field"`
	Potential int `yaml:"potential"`
	Force     int `yaml:"force"`
}

// DefaultRingSamples returns the sample counts tuned for interactive use.
func DefaultRingSamples() RingSamples {
	return RingSamples{Field: 40, Potential: 30, Force: 20}
}

// ringOffsets caches the unit-circle sample directions for one sample count,
// so ring laws pay no trig per query.
type ringOffsets struct {
	cos []float64
	sin []float64
}

func newRingOffsets(n int) *ringOffsets {
	t := &ringOffsets{
		cos: make([]float64, n),
		sin: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		angle := float64(i) * 2 * math.Pi / float64(n)
		t.sin[i] = math.Sin(angle)
		t.cos[i] = math.Cos(angle)
	}
	return t
}

// Evaluator computes superposed fields, potentials and net forces. Construct
// with [New]; the zero value is not usable. Evaluators are immutable after
// construction and safe to copy.
type Evaluator struct {
	K       float64
	Samples RingSamples

	fieldRing     *ringOffsets
	potentialRing *ringOffsets
	forceRing     *ringOffsets
}

// New builds an Evaluator for the given Coulomb constant. Non-positive
// sample counts fall back to the defaults.
func New(k float64, samples RingSamples) Evaluator {
	def := DefaultRingSamples()
	if samples.Field <= 0 {
		samples.Field = def.Field
	}
	if samples.Potential <= 0 {
		samples.Potential = def.Potential
	}
	if samples.Force <= 0 {
		samples.Force = def.Force
	}
	return Evaluator{
		K:             k,
		Samples:       samples,
		fieldRing:     newRingOffsets(samples.Field),
		potentialRing: newRingOffsets(samples.Potential),
		forceRing:     newRingOffsets(samples.Force),
	}
}

// FieldAt returns the total electric field at p and its magnitude. Every
// source contributes; use [Evaluator.NetForce] when a body must not act on
// itself.
func (e Evaluator) FieldAt(p r3.Vec, sources []charge.Source) (r3.Vec, float64) {
	total := e.fieldExcluding(p, sources, "")
	return total, r3.Norm(total)
}

// PotentialAt returns the total scalar potential at p.
func (e Evaluator) PotentialAt(p r3.Vec, sources []charge.Source) float64 {
	return e.potentialExcluding(p, sources, "")
}

// InteractionEnergy returns the electrostatic energy of the configuration,
// ½·Σ qᵢ·V₋ᵢ(pᵢ), with each source seen by the others through its center.
// Every pair is counted once.
func (e Evaluator) InteractionEnergy(sources []charge.Source) float64 {
	total := 0.0
	for i := range sources {
		total += sources[i].Charge * e.potentialExcluding(sources[i].Position, sources, sources[i].ID)
	}
	return total / 2
}

func (e Evaluator) potentialExcluding(p r3.Vec, sources []charge.Source, skipID string) float64 {
	total := 0.0
	for i := range sources {
		if skipID != "" && sources[i].ID == skipID {
			continue
		}
		total += e.sourcePotential(sources[i], p)
	}
	return total
}

// fieldExcluding superposes source fields at p, skipping the source whose ID
// matches skipID. An empty skipID excludes nothing: blank IDs on hand-built
// sources never match.
func (e Evaluator) fieldExcluding(p r3.Vec, sources []charge.Source, skipID string) r3.Vec {
	var total r3.Vec
	for i := range sources {
		if skipID != "" && sources[i].ID == skipID {
			continue
		}
		total = r3.Add(total, e.sourceField(sources[i], p))
	}
	return total
}

// sourceField dispatches on the geometry tag. The switch is exhaustive over
// [charge.Geometry]; a new geometry must be handled here.
func (e Evaluator) sourceField(s charge.Source, p r3.Vec) r3.Vec {
	if s.Geometry == charge.Ring {
		return e.ringField(s, p)
	}

	sep := r3.Sub(p, s.Position)
	d := r3.Norm(sep)
	if d < Epsilon {
		return r3.Vec{}
	}

	switch s.Geometry {
	case charge.Point:
		return r3.Scale(e.K*s.Charge/(d*d*d), sep)

	case charge.ConductingSphere:
		// Shell theorem: the interior of a conductor is field-free, the
		// exterior sees a point charge at the center.
		if d < s.Radius {
			return r3.Vec{}
		}
		return r3.Scale(e.K*s.Charge/(d*d*d), sep)

	case charge.NonConductingSphere:
		// Uniform volume charge: field grows linearly with depth inside,
		// point law outside. sep = d·r̂, so E_in = kq·d/R³ r̂ = sep·(kq/R³).
		if d < s.Radius {
			return r3.Scale(e.K*s.Charge/(s.Radius*s.Radius*s.Radius), sep)
		}
		return r3.Scale(e.K*s.Charge/(d*d*d), sep)
	}
	return r3.Vec{}
}

func (e Evaluator) sourcePotential(s charge.Source, p r3.Vec) float64 {
	if s.Geometry == charge.Ring {
		return e.ringPotential(s, p)
	}

	d := r3.Norm(r3.Sub(p, s.Position))
	if d < Epsilon {
		return 0
	}

	switch s.Geometry {
	case charge.Point:
		return e.K * s.Charge / d

	case charge.ConductingSphere:
		// Constant potential throughout the interior, continuous at R.
		if d < s.Radius {
			return e.K * s.Charge / s.Radius
		}
		return e.K * s.Charge / d

	case charge.NonConductingSphere:
		if d < s.Radius {
			return e.K * s.Charge / (2 * s.Radius) * (3 - d*d/(s.Radius*s.Radius))
		}
		return e.K * s.Charge / d
	}
	return 0
}

// ringField sums the point law over equal charge samples spaced around the
// ring. The singularity guard applies per sample: a probe sitting on the
// ring loses only the samples it touches.
func (e Evaluator) ringField(s charge.Source, p r3.Vec) r3.Vec {
	tab := e.fieldRing
	n := len(tab.cos)
	dq := s.Charge / float64(n)

	var total r3.Vec
	for i := 0; i < n; i++ {
		sample := r3.Vec{
			X: s.Position.X + s.Radius*tab.cos[i],
			Y: s.Position.Y + s.Radius*tab.sin[i],
			Z: s.Position.Z,
		}
		sep := r3.Sub(p, sample)
		d := r3.Norm(sep)
		if d < Epsilon {
			continue
		}
		total = r3.Add(total, r3.Scale(e.K*dq/(d*d*d), sep))
	}
	return total
}

func (e Evaluator) ringPotential(s charge.Source, p r3.Vec) float64 {
	tab := e.potentialRing
	n := len(tab.cos)
	dq := s.Charge / float64(n)

	total := 0.0
	for i := 0; i < n; i++ {
		sample := r3.Vec{
			X: s.Position.X + s.Radius*tab.cos[i],
			Y: s.Position.Y + s.Radius*tab.sin[i],
			Z: s.Position.Z,
		}
		d := r3.Norm(r3.Sub(p, sample))
		if d < Epsilon {
			continue
		}
		total += e.K * dq / d
	}
	return total
}
