package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/field"
)

// TraceOptions bounds the field-line tracer. Zero values fall back to
// [DefaultTraceOptions].
type TraceOptions struct {
	SeedsPerSource int     // lines started around each charged source
	SeedRadius     float64 // seed offset from the source center
	Step           float64 // march distance per iteration
	MaxSteps       int     // iteration cap per line
	Bounds         float64 // abandon a line this far from the origin
}

// DefaultTraceOptions is tuned for unit-scale scenes a few lengths across.
func DefaultTraceOptions() TraceOptions {
	return TraceOptions{
		SeedsPerSource: 20,
		SeedRadius:     0.15,
		Step:           0.05,
		MaxSteps:       400,
		Bounds:         12,
	}
}

// TraceFieldLines marches field lines from a ring of seeds around every
// charged source: forward along E from positive sources, backward from
// negative ones, so each line runs from high potential to low. A line ends
// when it reaches another source, leaves the bounds, lands in a field null,
// or hits the step cap. Lines that never clear their seed are dropped.
func TraceFieldLines(ev field.Evaluator, sources []charge.Source, opt TraceOptions) [][]r3.Vec {
	def := DefaultTraceOptions()
	if opt.SeedsPerSource <= 0 {
		opt.SeedsPerSource = def.SeedsPerSource
	}
	if opt.SeedRadius <= 0 {
		opt.SeedRadius = def.SeedRadius
	}
	if opt.Step <= 0 {
		opt.Step = def.Step
	}
	if opt.MaxSteps <= 0 {
		opt.MaxSteps = def.MaxSteps
	}
	if opt.Bounds <= 0 {
		opt.Bounds = def.Bounds
	}

	var lines [][]r3.Vec
	for i := range sources {
		s := &sources[i]
		if s.Charge == 0 {
			continue
		}
		dir := 1.0
		if s.Charge < 0 {
			dir = -1
		}
		for k := 0; k < opt.SeedsPerSource; k++ {
			angle := 2 * math.Pi * float64(k) / float64(opt.SeedsPerSource)
			line := traceLine(ev, sources, seedPoint(s, angle, opt.SeedRadius), dir, opt)
			if len(line) > 1 {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// seedPoint picks a seed just outside the charged surface. Seeding at a
// plain center offset would start sphere lines in the field-free interior
// and ring lines in the near-null at the ring center.
func seedPoint(s *charge.Source, angle, off float64) r3.Vec {
	r := off
	if s.Geometry != charge.Point {
		r += s.Radius
	}
	return s.Position.Add(r3.Vec{X: r * math.Cos(angle), Y: r * math.Sin(angle)})
}

func traceLine(ev field.Evaluator, sources []charge.Source, seed r3.Vec, dir float64, opt TraceOptions) []r3.Vec {
	p := seed
	points := make([]r3.Vec, 0, 64)
	points = append(points, seed)

	for i := 0; i < opt.MaxSteps; i++ {
		e, mag := ev.FieldAt(p, sources)
		if mag < 1e-9 {
			break
		}

		p = p.Add(e.Scale(dir * opt.Step / mag))

		if r3.Norm(p) > opt.Bounds {
			break
		}
		arrived := false
		for j := range sources {
			if nearSource(p, &sources[j], opt.SeedRadius) {
				arrived = true
				break
			}
		}
		if arrived {
			break
		}

		points = append(points, p)
	}
	return points
}

// nearSource reports whether p sits within pad of the charged surface: the
// ring wire for rings, the shell for spheres, the center for points.
func nearSource(p r3.Vec, s *charge.Source, pad float64) bool {
	d := p.Sub(s.Position)
	switch s.Geometry {
	case charge.Ring:
		rho := math.Hypot(d.X, d.Y)
		return math.Hypot(rho-s.Radius, d.Z) < pad
	case charge.ConductingSphere, charge.NonConductingSphere:
		return r3.Norm(d) < s.Radius+pad
	default:
		return r3.Norm(d) < pad
	}
}

// LinesWireframe converts traced lines into renderable polylines.
func LinesWireframe(lines [][]r3.Vec) *Wireframe {
	wf := NewWireframe()
	for _, line := range lines {
		wf.AddPolyline(line, false)
	}
	return wf
}
