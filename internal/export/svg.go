// Package export renders recorded runs and field geometry as SVG.
package export

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/sim"
)

// chargeColor follows the usual convention: red for positive, blue for
// negative, grey for neutral bodies.
func chargeColor(q float64) string {
	switch {
	case q > 0:
		return "#ff5050"
	case q < 0:
		return "#5078ff"
	}
	return "#aaaaaa"
}

// viewport maps world xy-coordinates onto an SVG pixel rectangle, y up.
type viewport struct {
	minX, minY     float64
	rangeX, rangeY float64
	width, height  int
}

func fitViewport(pts []r3.Vec, width, height int) viewport {
	v := viewport{width: width, height: height, rangeX: 1, rangeY: 1}
	if len(pts) == 0 {
		return v
	}

	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	v.minX = minX - rangeX*0.1
	v.minY = minY - rangeY*0.1
	v.rangeX = rangeX * 1.2
	v.rangeY = rangeY * 1.2
	return v
}

func (v viewport) place(p r3.Vec) (float64, float64) {
	x := (p.X - v.minX) / v.rangeX * float64(v.width)
	y := float64(v.height) - (p.Y-v.minY)/v.rangeY*float64(v.height)
	return x, y
}

func (v viewport) header(sb *strings.Builder) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, v.width, v.height, v.width, v.height)
}

func (v viewport) path(sb *strings.Builder, pts []r3.Vec, stroke string, strokeWidth float64) {
	if len(pts) < 2 {
		return
	}
	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="%.1f" d="M`, stroke, strokeWidth)
	for i, p := range pts {
		x, y := v.place(p)
		if i == 0 {
			fmt.Fprintf(sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")
}

// outline draws a source at its world position: a filled dot for point
// charges, an outlined ellipse for rings and spheres. Ellipses absorb the
// independent x/y scaling of the viewport.
func (v viewport) outline(sb *strings.Builder, s *charge.Source) {
	x, y := v.place(s.Position)
	color := chargeColor(s.Charge)
	if s.Geometry == charge.Point {
		fmt.Fprintf(sb, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", x, y, color)
		return
	}
	rx := s.Radius / v.rangeX * float64(v.width)
	ry := s.Radius / v.rangeY * float64(v.height)
	fmt.Fprintf(sb, `<ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
		x, y, rx, ry, color)
	fmt.Fprintf(sb, `<circle cx="%.1f" cy="%.1f" r="2" fill="%s"/>`+"\n", x, y, color)
}

// sourceExtent returns the xy-reach of a source so viewport fitting never
// clips a ring or sphere outline.
func sourceExtent(s *charge.Source) []r3.Vec {
	if s.Geometry == charge.Point {
		return []r3.Vec{s.Position}
	}
	r := s.Radius
	return []r3.Vec{
		r3.Add(s.Position, r3.Vec{X: r}),
		r3.Add(s.Position, r3.Vec{X: -r}),
		r3.Add(s.Position, r3.Vec{Y: r}),
		r3.Add(s.Position, r3.Vec{Y: -r}),
	}
}

// SceneSVG renders a recorded run on the xy-plane: one stroked trajectory
// per source, colored by charge sign, with each body outlined at its final
// position.
func SceneSVG(frames []sim.Frame, width, height int) string {
	if len(frames) == 0 || len(frames[0].Sources) == 0 {
		return ""
	}

	var bounds []r3.Vec
	for i := range frames {
		for j := range frames[i].Sources {
			bounds = append(bounds, sourceExtent(&frames[i].Sources[j])...)
		}
	}
	v := fitViewport(bounds, width, height)

	var sb strings.Builder
	v.header(&sb)

	for j := range frames[0].Sources {
		pts := make([]r3.Vec, len(frames))
		for i := range frames {
			pts[i] = frames[i].Sources[j].Position
		}
		v.path(&sb, pts, chargeColor(frames[0].Sources[j].Charge), 1.5)
	}

	final := frames[len(frames)-1].Sources
	for j := range final {
		v.outline(&sb, &final[j])
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// FieldLinesSVG renders traced field lines with the sources that anchor
// them, projected on the xy-plane.
func FieldLinesSVG(lines [][]r3.Vec, sources []charge.Source, width, height int) string {
	if len(sources) == 0 {
		return ""
	}

	var bounds []r3.Vec
	for _, line := range lines {
		bounds = append(bounds, line...)
	}
	for j := range sources {
		bounds = append(bounds, sourceExtent(&sources[j])...)
	}
	v := fitViewport(bounds, width, height)

	var sb strings.Builder
	v.header(&sb)
	for _, line := range lines {
		v.path(&sb, line, "#cccccc", 1)
	}
	for j := range sources {
		v.outline(&sb, &sources[j])
	}
	sb.WriteString("</svg>")
	return sb.String()
}
