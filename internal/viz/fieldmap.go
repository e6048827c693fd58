package viz

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/field"
)

var intensityRamp = []rune(" .:-=+*#%@")

// FieldMap renders |E| over the z=0 slice as a width-by-height character
// map spanning [-extent, extent] in x and y, +y up. Brightness is
// mag/(mag+mean), so the average field strength sits mid-ramp and singular
// peaks saturate instead of washing everything else out. Source centers on
// the slice are overlaid with their charge sign.
func FieldMap(ev field.Evaluator, sources []charge.Source, extent float64, width, height int) string {
	if width < 1 || height < 1 || extent <= 0 {
		return ""
	}

	mags := make([][]float64, height)
	mean := 0.0
	for row := 0; row < height; row++ {
		mags[row] = make([]float64, width)
		y := extent - 2*extent*float64(row)/float64(height-1)
		if height == 1 {
			y = 0
		}
		for col := 0; col < width; col++ {
			x := -extent + 2*extent*float64(col)/float64(width-1)
			if width == 1 {
				x = 0
			}
			_, mag := ev.FieldAt(r3.Vec{X: x, Y: y}, sources)
			mags[row][col] = mag
			mean += mag
		}
	}
	mean /= float64(width * height)
	if mean == 0 {
		mean = 1
	}

	grid := make([][]rune, height)
	for row := range grid {
		grid[row] = make([]rune, width)
		for col := range grid[row] {
			norm := mags[row][col] / (mags[row][col] + mean)
			idx := int(norm * float64(len(intensityRamp)))
			if idx >= len(intensityRamp) {
				idx = len(intensityRamp) - 1
			}
			grid[row][col] = intensityRamp[idx]
		}
	}

	// Charge markers replace the intensity cell under each center.
	for i := range sources {
		s := &sources[i]
		col := int((s.Position.X + extent) / (2 * extent) * float64(width-1))
		row := int((extent - s.Position.Y) / (2 * extent) * float64(height-1))
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		switch {
		case s.Charge > 0:
			grid[row][col] = '+'
		case s.Charge < 0:
			grid[row][col] = '-'
		default:
			grid[row][col] = 'o'
		}
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
