package field

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
)

// NetForce returns the force on target from every other source in sources,
// and its magnitude. The target is identified by ID and excluded from its own
// field; with no other sources present the result is an exact zero vector.
//
// Point and sphere targets use the centroid approximation F = q·E(center),
// which is exact only in uniform fields and ignores induced-charge effects on
// conductors. Ring targets are discretized into Samples.Force point charges
// and the per-sample forces accumulated.
func (e Evaluator) NetForce(target charge.Source, sources []charge.Source) (r3.Vec, float64) {
	if !hasOther(sources, target.ID) {
		return r3.Vec{}, 0
	}

	if target.Geometry == charge.Ring {
		tab := e.forceRing
		n := len(tab.cos)
		dq := target.Charge / float64(n)

		var total r3.Vec
		for i := 0; i < n; i++ {
			sample := r3.Vec{
				X: target.Position.X + target.Radius*tab.cos[i],
				Y: target.Position.Y + target.Radius*tab.sin[i],
				Z: target.Position.Z,
			}
			f := e.fieldExcluding(sample, sources, target.ID)
			total = r3.Add(total, r3.Scale(dq, f))
		}
		return total, r3.Norm(total)
	}

	f := e.fieldExcluding(target.Position, sources, target.ID)
	force := r3.Scale(target.Charge, f)
	return force, r3.Norm(force)
}

// hasOther reports whether sources contains anything besides the target.
// Blank IDs never match, mirroring fieldExcluding.
func hasOther(sources []charge.Source, targetID string) bool {
	for i := range sources {
		if targetID != "" && sources[i].ID == targetID {
			continue
		}
		return true
	}
	return false
}
