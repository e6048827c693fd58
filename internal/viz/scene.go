package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
)

const (
	ringSegments   = 24
	sphereSegments = 16
)

// circlePoints samples a circle of the given radius around center, lying in
// the plane normal to the chosen axis (0=x, 1=y, 2=z).
func circlePoints(center r3.Vec, radius float64, normal, segs int) []r3.Vec {
	pts := make([]r3.Vec, segs)
	for i := 0; i < segs; i++ {
		a := 2 * math.Pi * float64(i) / float64(segs)
		c, s := radius*math.Cos(a), radius*math.Sin(a)
		var off r3.Vec
		switch normal {
		case 0:
			off = r3.Vec{Y: c, Z: s}
		case 1:
			off = r3.Vec{X: c, Z: s}
		default:
			off = r3.Vec{X: c, Y: s}
		}
		pts[i] = r3.Add(center, off)
	}
	return pts
}

// BuildSceneWireframe turns sources into renderable geometry: rings become
// closed polygons in their charge plane, spheres a triple of orthogonal
// great circles, point charges a filled marker. A positive velScale adds a
// tick from each moving source along its velocity.
func BuildSceneWireframe(sources []charge.Source, velScale float64) *Wireframe {
	wf := NewWireframe()
	for i := range sources {
		s := &sources[i]
		switch s.Geometry {
		case charge.Ring:
			wf.AddPolyline(circlePoints(s.Position, s.Radius, 2, ringSegments), true)
			wf.AddMarker(s.Position, 0)
		case charge.ConductingSphere, charge.NonConductingSphere:
			for normal := 0; normal < 3; normal++ {
				wf.AddPolyline(circlePoints(s.Position, s.Radius, normal, sphereSegments), true)
			}
			wf.AddMarker(s.Position, 1)
		default:
			wf.AddMarker(s.Position, 2)
		}

		if velScale > 0 && r3.Norm(s.Velocity) > 0 {
			wf.AddEdge(s.Position, r3.Add(s.Position, r3.Scale(velScale, s.Velocity)))
		}
	}
	return wf
}
