package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/field"
)

func testEval() field.Evaluator {
	return field.New(1.0, field.DefaultRingSamples())
}

func TestEnergyPairPotential(t *testing.T) {
	m := NewEnergy(testEval())

	// Two charges at rest: total energy is the pair potential k·q1·q2/d.
	a := charge.NewPoint(r3.Vec{}, 2.0)
	b := charge.NewPoint(r3.Vec{X: 4}, 3.0)

	m.Observe([]charge.Source{a, b}, 0)

	want := 2.0 * 3.0 / 4.0
	if math.Abs(m.Value()-want) > 1e-9 {
		t.Errorf("energy = %v, want %v", m.Value(), want)
	}
}

func TestEnergyIncludesKinetic(t *testing.T) {
	m := NewEnergy(testEval())

	a := charge.NewPoint(r3.Vec{}, 1.0)
	a.Mass = 2.0
	a.Velocity = r3.Vec{X: 3}

	m.Observe([]charge.Source{a}, 0)

	// Lone source: no interaction term, just ½·m·v².
	want := 0.5 * 2.0 * 9.0
	if math.Abs(m.Value()-want) > 1e-9 {
		t.Errorf("energy = %v, want %v", m.Value(), want)
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergy(testEval())

	a := charge.NewPoint(r3.Vec{}, 1.0)
	a.Velocity = r3.Vec{X: 1}
	m.Observe([]charge.Source{a}, 0)

	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestDriftTracksExcursion(t *testing.T) {
	d := NewDrift(testEval())

	a := charge.NewPoint(r3.Vec{}, 1.0)
	a.Velocity = r3.Vec{X: 1}

	d.Observe([]charge.Source{a}, 0)
	if d.Value() != 0 {
		t.Errorf("drift after first snapshot = %v, want 0", d.Value())
	}

	slow := a
	slow.Velocity = r3.Vec{X: 0.5}
	d.Observe([]charge.Source{slow}, 1)

	// Energy fell from 0.5 to 0.125: drift is 75%.
	if math.Abs(d.Value()-0.75) > 1e-9 {
		t.Errorf("drift = %v, want 0.75", d.Value())
	}

	// Drift is a high-water mark; recovery does not lower it.
	d.Observe([]charge.Source{a}, 2)
	if math.Abs(d.Value()-0.75) > 1e-9 {
		t.Errorf("drift shrank to %v", d.Value())
	}
}

func TestMomentum(t *testing.T) {
	m := NewMomentum()

	a := charge.NewPoint(r3.Vec{}, 1.0)
	a.Mass = 2.0
	a.Velocity = r3.Vec{X: 1}
	anchor := charge.NewPoint(r3.Vec{X: 1}, 1.0)
	anchor.Velocity = r3.Vec{X: 100}
	anchor.Fixed = true

	m.Observe([]charge.Source{a, anchor}, 0)

	// Fixed sources are excluded no matter their velocity field.
	if math.Abs(m.Value()-2.0) > 1e-9 {
		t.Errorf("momentum = %v, want 2", m.Value())
	}
}

func TestMaxSpeedHighWaterMark(t *testing.T) {
	m := NewMaxSpeed()

	a := charge.NewPoint(r3.Vec{}, 1.0)
	a.Velocity = r3.Vec{X: 3, Y: 4}
	m.Observe([]charge.Source{a}, 0)

	a.Velocity = r3.Vec{X: 1}
	m.Observe([]charge.Source{a}, 1)

	if m.Value() != 5.0 {
		t.Errorf("max speed = %v, want 5", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestContainment(t *testing.T) {
	c := NewContainment(2.0)

	inside := charge.NewPoint(r3.Vec{X: 1}, 1.0)
	outside := charge.NewPoint(r3.Vec{X: 5}, 1.0)

	c.Observe([]charge.Source{inside}, 0)
	c.Observe([]charge.Source{inside, outside}, 1)

	if math.Abs(c.Value()-0.5) > 1e-9 {
		t.Errorf("containment = %v, want 0.5", c.Value())
	}
}
