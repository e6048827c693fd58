// Package field evaluates electrostatic fields, potentials and forces for
// collections of [charge.Source].
//
// An [Evaluator] is configured once with a Coulomb constant and ring sample
// counts, then answers point queries by superposing the per-geometry laws:
//
//	eval := field.New(1.0, field.DefaultRingSamples())
//	e, mag := eval.FieldAt(p, sources)
//	v := eval.PotentialAt(p, sources)
//	f, _ := eval.NetForce(target, sources)
//
// All queries are pure functions of their arguments: the evaluator holds no
// mutable state, never modifies source slices, and identical inputs always
// produce identical outputs. Probes closer than [Epsilon] to a source center
// (or, for rings, to an individual sample) contribute exactly zero rather
// than diverging.
package field
