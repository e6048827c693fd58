// Package metrics reduces recorded scene snapshots to scalar observables.
package metrics

import "github.com/tyl-create/elec-n/internal/charge"

// Metric observes scene snapshots during a run and reduces them to a single
// value. Implementations are stateful and not safe for concurrent use; the
// runner observes from one goroutine.
type Metric interface {
	Name() string
	Observe(sources []charge.Source, t float64)
	Value() float64
	Reset()
}
