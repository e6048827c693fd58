package sim

import "github.com/tyl-create/elec-n/internal/charge"

// DefaultMaxDt is the largest step the runner accepts when the config leaves
// MaxDt zero. The integrator itself never clamps; oversized steps are a
// config error, not something to silently repair.
const DefaultMaxDt = 0.1

// Config bounds a recorded run.
type Config struct {
	Dt       float64
	Duration float64
	MaxDt    float64
}

// Frame is one recorded snapshot. Sources is an independent clone; mutating
// it cannot disturb the run that produced it.
type Frame struct {
	Time    float64
	Sources []charge.Source
}

// Result collects every frame of a run plus the final metric values.
type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	StepsTaken int
}

// Times returns the frame timestamps as a flat slice for plotting.
func (r *Result) Times() []float64 {
	times := make([]float64, len(r.Frames))
	for i := range r.Frames {
		times[i] = r.Frames[i].Time
	}
	return times
}
