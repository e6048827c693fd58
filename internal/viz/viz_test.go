package viz

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/field"
)

func TestCanvasSetAndString(t *testing.T) {
	c := NewCanvas(4, 4)

	if c.SubWidth() != 8 || c.SubHeight() != 16 {
		t.Fatalf("sub size %dx%d, want 8x16", c.SubWidth(), c.SubHeight())
	}

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("top-left cell %#x, want 0x2801", c.Grid[0][0])
	}

	// Out-of-range coordinates are ignored, not panics.
	c.Set(-1, 5)
	c.Set(100, 100)

	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d rows, want 4", len(lines))
	}
	for _, line := range lines {
		if n := len([]rune(line)); n != 4 {
			t.Errorf("row has %d runes, want 4", n)
		}
	}

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Errorf("after clear got %#x, want empty cell", c.Grid[0][0])
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for col := 0; col < 4; col++ {
		if c.Grid[0][col] == 0x2800 {
			t.Errorf("cell %d empty after horizontal line", col)
		}
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(8, 4)
	c.FillCircle(8, 8, 2)
	if c.Grid[2][4] == 0x2800 {
		t.Error("circle center not set")
	}
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera()

	x, y, depth, ok := cam.Project(r3.Vec{}, 160, 96)
	if !ok || x != 80 || y != 48 || depth != 0 {
		t.Errorf("origin projected to (%d,%d,%v,%v), want (80,48,0,true)", x, y, depth, ok)
	}

	// Unit offset along +x lands min(sw,sh)/3 sub-pixels right of center.
	x, y, _, ok = cam.Project(r3.Vec{X: 1}, 160, 96)
	if !ok || x != 112 || y != 48 {
		t.Errorf("unit x projected to (%d,%d,%v), want (112,48,true)", x, y, ok)
	}

	// Points at or behind the camera plane are culled.
	if _, _, _, ok := cam.Project(r3.Vec{Z: 60}, 160, 96); ok {
		t.Error("point behind camera reported visible")
	}
}

func TestBuildSceneWireframe(t *testing.T) {
	sources := []charge.Source{
		{Geometry: charge.Point, Charge: 1, Velocity: r3.Vec{X: 1}},
		{Geometry: charge.Ring, Charge: 1, Radius: 2},
		{Geometry: charge.ConductingSphere, Charge: 1, Radius: 1},
	}

	wf := BuildSceneWireframe(sources, 0)
	wantEdges := ringSegments + 3*sphereSegments
	if len(wf.Edges) != wantEdges {
		t.Errorf("got %d edges, want %d", len(wf.Edges), wantEdges)
	}
	if len(wf.Markers) != 3 {
		t.Errorf("got %d markers, want 3", len(wf.Markers))
	}

	// A positive velScale adds one tick for the moving point charge.
	wf = BuildSceneWireframe(sources, 0.5)
	if len(wf.Edges) != wantEdges+1 {
		t.Errorf("got %d edges with velocity tick, want %d", len(wf.Edges), wantEdges+1)
	}
}

func TestTraceFieldLinesDipole(t *testing.T) {
	ev := field.New(1, field.RingSamples{})
	sources := []charge.Source{
		{Geometry: charge.Point, Position: r3.Vec{X: -1}, Charge: 1},
		{Geometry: charge.Point, Position: r3.Vec{X: 1}, Charge: -1},
	}
	opt := DefaultTraceOptions()

	lines := TraceFieldLines(ev, sources, opt)
	if want := 2 * opt.SeedsPerSource; len(lines) != want {
		t.Fatalf("got %d lines, want %d", len(lines), want)
	}

	// The axial line from the positive charge must terminate on the
	// negative one.
	arrived := false
	for _, line := range lines {
		last := line[len(line)-1]
		if r3.Norm(last.Sub(r3.Vec{X: 1})) < 0.25 {
			arrived = true
			break
		}
	}
	if !arrived {
		t.Error("no line reached the negative charge")
	}
}

func TestTraceFieldLinesNeutral(t *testing.T) {
	ev := field.New(1, field.RingSamples{})
	sources := []charge.Source{{Geometry: charge.Point, Charge: 0}}
	if lines := TraceFieldLines(ev, sources, DefaultTraceOptions()); len(lines) != 0 {
		t.Errorf("neutral source produced %d lines, want 0", len(lines))
	}
}

func TestFieldMap(t *testing.T) {
	ev := field.New(1, field.RingSamples{})
	sources := []charge.Source{
		{Geometry: charge.Point, Position: r3.Vec{X: -1}, Charge: 1},
		{Geometry: charge.Point, Position: r3.Vec{X: 1}, Charge: -1},
	}

	out := FieldMap(ev, sources, 2, 41, 21)
	rows := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(rows) != 21 {
		t.Fatalf("got %d rows, want 21", len(rows))
	}
	for i, row := range rows {
		if n := len([]rune(row)); n != 41 {
			t.Fatalf("row %d has %d runes, want 41", i, n)
		}
	}

	if got := []rune(rows[10])[10]; got != '+' {
		t.Errorf("positive marker cell is %q, want '+'", got)
	}
	if got := []rune(rows[10])[30]; got != '-' {
		t.Errorf("negative marker cell is %q, want '-'", got)
	}

	if !strings.ContainsAny(out, ".:-=+*#%@") {
		t.Error("map has no intensity texture")
	}
}
