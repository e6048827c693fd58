package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/dynamics"
	"github.com/tyl-create/elec-n/internal/metrics"
)

// Runner drives an integrator over a scene and records every frame. The loop
// is strictly sequential; a Runner is not safe for concurrent Run calls.
type Runner struct {
	integ   dynamics.Integrator
	metrics []metrics.Metric
}

func New(integ dynamics.Integrator) *Runner {
	return &Runner{
		integ:   integ,
		metrics: make([]metrics.Metric, 0),
	}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }

// Run advances the scene for cfg.Duration and returns the recorded frames.
// The input slice is cloned up front and never touched afterwards. On
// divergence the frames so far are returned alongside the error.
func (r *Runner) Run(ctx context.Context, sources []charge.Source, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([]Frame, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	scene := charge.Clone(sources)
	t := 0.0
	r.record(result, scene, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		scene = r.integ.Step(scene, cfg.Dt)
		t += cfg.Dt

		if !finite(scene) {
			return result, &RunError{Step: i, Time: t, Wrapped: ErrDiverged}
		}

		result.StepsTaken++
		r.record(result, scene, t)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (r *Runner) record(result *Result, scene []charge.Source, t float64) {
	for _, m := range r.metrics {
		m.Observe(scene, t)
	}
	result.Frames = append(result.Frames, Frame{Time: t, Sources: charge.Clone(scene)})
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: got %g", ErrDt, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: got %g", ErrDuration, cfg.Duration)
	}
	maxDt := cfg.MaxDt
	if maxDt <= 0 {
		maxDt = DefaultMaxDt
	}
	if cfg.Dt > maxDt {
		return fmt.Errorf("%w: %g > %g", ErrDtTooLarge, cfg.Dt, maxDt)
	}
	return nil
}

func finite(sources []charge.Source) bool {
	for i := range sources {
		p, v := sources[i].Position, sources[i].Velocity
		for _, f := range [6]float64{p.X, p.Y, p.Z, v.X, v.Y, v.Z} {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
	}
	return true
}
