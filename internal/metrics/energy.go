package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/field"
)

// Energy tracks the total energy of the last observed snapshot: kinetic plus
// electrostatic interaction energy.
type Energy struct {
	name    string
	eval    field.Evaluator
	current float64
	samples int
}

func NewEnergy(eval field.Evaluator) *Energy {
	return &Energy{
		name: "energy",
		eval: eval,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(sources []charge.Source, t float64) {
	ke := 0.0
	for i := range sources {
		m := sources[i].Mass
		if m <= 0 {
			m = 1.0
		}
		ke += 0.5 * m * r3.Norm2(sources[i].Velocity)
	}
	e.current = ke + e.eval.InteractionEnergy(sources)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.current
}

func (e *Energy) Reset() {
	e.current = 0
	e.samples = 0
}

// Drift tracks the largest relative energy excursion from the first
// snapshot. Useful on undamped scenes, where drift is pure integrator error.
type Drift struct {
	name     string
	energy   *Energy
	initial  float64
	maxDrift float64
	samples  int
}

func NewDrift(eval field.Evaluator) *Drift {
	return &Drift{
		name:   "energy_drift",
		energy: NewEnergy(eval),
	}
}

func (d *Drift) Name() string { return d.name }

func (d *Drift) Observe(sources []charge.Source, t float64) {
	d.energy.Observe(sources, t)
	value := d.energy.Value()

	if d.samples == 0 {
		d.initial = value
	}
	d.samples++

	if d.initial != 0 {
		drift := math.Abs(value-d.initial) / math.Abs(d.initial)
		d.maxDrift = math.Max(d.maxDrift, drift)
	}
}

func (d *Drift) Value() float64 {
	return d.maxDrift
}

func (d *Drift) Reset() {
	d.energy.Reset()
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}
