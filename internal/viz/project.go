package viz

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera projects world coordinates onto the canvas with a simple
// perspective divide. Rotation happens around the world axes, so the scene
// appears to tumble while the camera stays put.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera returns a camera far enough back that unit-scale scenes render
// without clipping.
func NewCamera() *Camera {
	return &Camera{Distance: 50, Near: 0.1, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p r3.Vec) r3.Vec {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a world point to sub-pixel screen coordinates. Returns
// x, y, depth, and whether the point lands on a sw-by-sh screen.
func (c *Camera) Project(p r3.Vec, sw, sh int) (int, int, float64, bool) {
	rot := c.rotate(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// Edge is a world-space line segment.
type Edge struct {
	Start, End r3.Vec
}

// Marker is a world-space point drawn as a filled disc of the given
// sub-pixel radius.
type Marker struct {
	Pos    r3.Vec
	Radius int
}

// Wireframe collects edges and markers for one rendered scene.
type Wireframe struct {
	Edges   []Edge
	Markers []Marker
}

func NewWireframe() *Wireframe { return &Wireframe{} }

func (w *Wireframe) AddEdge(s, e r3.Vec) {
	w.Edges = append(w.Edges, Edge{Start: s, End: e})
}

func (w *Wireframe) AddMarker(p r3.Vec, radius int) {
	w.Markers = append(w.Markers, Marker{Pos: p, Radius: radius})
}

// AddPolyline adds consecutive segments through pts, closing back to the
// first point when closed is set.
func (w *Wireframe) AddPolyline(pts []r3.Vec, closed bool) {
	for i := 1; i < len(pts); i++ {
		w.AddEdge(pts[i-1], pts[i])
	}
	if closed && len(pts) > 2 {
		w.AddEdge(pts[len(pts)-1], pts[0])
	}
}

func (w *Wireframe) Clear() {
	w.Edges = w.Edges[:0]
	w.Markers = w.Markers[:0]
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render draws the wireframe onto the canvas back to front, then overlays
// the markers so bodies are never hidden by their own trails.
func Render(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.SubWidth(), c.SubHeight()

	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.End, sw, sh)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}

	for _, m := range w.Markers {
		if x, y, _, ok := cam.Project(m.Pos, sw, sh); ok {
			c.FillCircle(x, y, m.Radius)
		}
	}
}

// AxesWireframe builds the three positive world axes, length l each.
func AxesWireframe(l float64) *Wireframe {
	w := NewWireframe()
	o := r3.Vec{}
	w.AddEdge(o, r3.Vec{X: l})
	w.AddEdge(o, r3.Vec{Y: l})
	w.AddEdge(o, r3.Vec{Z: l})
	return w
}
