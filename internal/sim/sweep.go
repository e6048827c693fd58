package sim

import (
	"context"
	"sync"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/dynamics"
	"github.com/tyl-create/elec-n/internal/metrics"
)

// Sweep runs the same scene under a series of damping values, one full run
// per value. Runs execute in parallel goroutines but each run is still the
// ordinary sequential loop with its own integrator and metric instances.
type Sweep struct {
	base    dynamics.Integrator
	factory func() []metrics.Metric
}

// NewSweep wraps a base integrator. factory builds a fresh metric set per
// run so parallel runs never share metric state; nil means no metrics.
func NewSweep(base dynamics.Integrator, factory func() []metrics.Metric) *Sweep {
	return &Sweep{base: base, factory: factory}
}

// Run produces one Result per damping value, in the same order.
func (s *Sweep) Run(ctx context.Context, sources []charge.Source, cfg Config, dampings []float64) ([]*Result, error) {
	results := make([]*Result, len(dampings))
	errs := make([]error, len(dampings))

	var wg sync.WaitGroup
	for i, damping := range dampings {
		wg.Add(1)
		go func(idx int, damping float64) {
			defer wg.Done()

			integ := s.base
			integ.Damping = damping

			runner := New(integ)
			if s.factory != nil {
				for _, m := range s.factory() {
					runner.AddMetric(m)
				}
			}

			results[idx], errs[idx] = runner.Run(ctx, sources, cfg)
		}(i, damping)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
