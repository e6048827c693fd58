package analysis

import (
	"fmt"
	"strings"

	"github.com/tyl-create/elec-n/internal/sim"
)

// Portrait is a 2D phase-space trajectory: one position coordinate of a
// source plotted against the matching velocity coordinate.
type Portrait struct {
	Axis   Axis
	Points []struct{ X, Y float64 }
}

// PhasePortrait builds a position/velocity portrait for one source from
// recorded frames. axis selects the position coordinate; the paired
// velocity coordinate is implied.
func PhasePortrait(frames []sim.Frame, source int, axis Axis) (*Portrait, error) {
	if axis != X && axis != Y && axis != Z {
		return nil, fmt.Errorf("%w: portrait wants a position axis, got %s", ErrAxis, axis)
	}

	pos, err := Track(frames, source, axis)
	if err != nil {
		return nil, err
	}
	vel, err := Track(frames, source, axis+VX)
	if err != nil {
		return nil, err
	}

	portrait := &Portrait{
		Axis:   axis,
		Points: make([]struct{ X, Y float64 }, len(pos)),
	}
	for i := range pos {
		portrait.Points[i].X = pos[i]
		portrait.Points[i].Y = vel[i]
	}
	return portrait, nil
}

// ASCII renders the portrait as a width-by-height character plot, drawing
// the zero axes where they cross the visible range.
func (p *Portrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
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
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
