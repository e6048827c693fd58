package export

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/sim"
)

func dipoleFrames() []sim.Frame {
	mk := func(x1, x2 float64) sim.Frame {
		return sim.Frame{Sources: []charge.Source{
			{Geometry: charge.Point, Position: r3.Vec{X: x1}, Charge: 1},
			{Geometry: charge.Point, Position: r3.Vec{X: x2}, Charge: -1},
		}}
	}
	return []sim.Frame{mk(-1, 1), mk(-0.9, 0.9), mk(-0.8, 0.8)}
}

func TestSceneSVG(t *testing.T) {
	out := SceneSVG(dipoleFrames(), 400, 300)

	if !strings.HasPrefix(out, `<?xml version="1.0"`) {
		t.Fatal("missing XML header")
	}
	if !strings.Contains(out, `width="400" height="300"`) {
		t.Error("viewport dimensions not emitted")
	}
	if got := strings.Count(out, "<path"); got != 2 {
		t.Errorf("got %d trajectory paths, want 2", got)
	}
	if !strings.Contains(out, "#ff5050") || !strings.Contains(out, "#5078ff") {
		t.Error("charge sign colors missing")
	}
	if !strings.HasSuffix(out, "</svg>") {
		t.Error("unterminated document")
	}
	if strings.Contains(out, "NaN") {
		t.Error("non-finite coordinates emitted")
	}
}

func TestSceneSVGEmpty(t *testing.T) {
	if out := SceneSVG(nil, 400, 300); out != "" {
		t.Errorf("got %q, want empty", out)
	}
}

func TestFieldLinesSVG(t *testing.T) {
	sources := []charge.Source{
		{Geometry: charge.Point, Position: r3.Vec{X: -1}, Charge: 1},
		{Geometry: charge.Ring, Position: r3.Vec{X: 1}, Charge: -1, Radius: 0.5},
	}
	lines := [][]r3.Vec{
		{{X: -0.8}, {X: 0}, {X: 0.4}},
		{{X: -0.8, Y: 0.2}, {X: 0, Y: 0.4}},
	}

	out := FieldLinesSVG(lines, sources, 500, 500)

	if got := strings.Count(out, "<path"); got != 2 {
		t.Errorf("got %d line paths, want 2", got)
	}
	// The ring renders as an outlined ellipse, the point as a filled dot.
	if !strings.Contains(out, "<ellipse") {
		t.Error("ring outline missing")
	}
	if !strings.Contains(out, "<circle") {
		t.Error("point marker missing")
	}
}
