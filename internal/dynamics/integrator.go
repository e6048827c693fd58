package dynamics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/field"
)

// DefaultDamping bleeds a little kinetic energy each step so interactive
// scenes settle instead of oscillating forever.
const DefaultDamping = 0.98

// Integrator advances charge scenes with damped semi-implicit Euler:
//
//	v' = (v + a·dt) · damping
//	p' = p + v'·dt
//
// Step never bounds dt; callers own that contract (the sim runner rejects
// oversized steps before they reach here).
type Integrator struct {
	Eval    field.Evaluator
	Damping float64
}

// New returns an Integrator with the default damping. Adjust the Damping
// field for other values; 1.0 disables damping entirely.
func New(eval field.Evaluator) Integrator {
	return Integrator{Eval: eval, Damping: DefaultDamping}
}

// Step returns the scene advanced by dt. All forces are computed against the
// input snapshot before any source moves, so update order cannot leak into
// the physics. Fixed sources pass through untouched but still act on the
// rest. The input is never modified and the result is freshly allocated.
func (in Integrator) Step(sources []charge.Source, dt float64) []charge.Source {
	forces := make([]r3.Vec, len(sources))
	for i := range sources {
		if sources[i].Fixed {
			continue
		}
		forces[i], _ = in.Eval.NetForce(sources[i], sources)
	}

	out := charge.Clone(sources)
	for i := range out {
		if out[i].Fixed {
			continue
		}
		m := out[i].Mass
		if m <= 0 {
			m = 1.0
		}
		v := r3.Scale(in.Damping, r3.Add(out[i].Velocity, r3.Scale(dt/m, forces[i])))
		out[i].Velocity = v
		out[i].Position = r3.Add(out[i].Position, r3.Scale(dt, v))
	}
	return out
}
