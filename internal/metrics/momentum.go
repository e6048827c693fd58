package metrics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
)

// Momentum tracks the magnitude of the total linear momentum of the last
// snapshot. Fixed sources contribute nothing.
type Momentum struct {
	name    string
	current float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(sources []charge.Source, t float64) {
	var total r3.Vec
	for i := range sources {
		if sources[i].Fixed {
			continue
		}
		mass := sources[i].Mass
		if mass <= 0 {
			mass = 1.0
		}
		total = r3.Add(total, r3.Scale(mass, sources[i].Velocity))
	}
	m.current = r3.Norm(total)
}

func (m *Momentum) Value() float64 { return m.current }

func (m *Momentum) Reset() { m.current = 0 }

// MaxSpeed tracks the fastest source speed seen over the whole run.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(sources []charge.Source, t float64) {
	for i := range sources {
		if v := r3.Norm(sources[i].Velocity); v > m.max {
			m.max = v
		}
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }
