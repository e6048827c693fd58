package scene

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/grid"
)

// Lattice builds a rows×cols plate of alternating charges in the xy-plane.
// Positions are snapped to a half-spacing grid so the accumulated spacing
// arithmetic cannot drift off the lattice.
func Lattice(rows, cols int, spacing float64) *Config {
	cfg := DefaultConfig()
	cfg.Name = fmt.Sprintf("lattice-%dx%d", rows, cols)
	cfg.Dt = 0.005
	cfg.Duration = 8.0

	cx := float64(cols-1) * spacing / 2
	cy := float64(rows-1) * spacing / 2
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			pos := r3.Vec{X: float64(c)*spacing - cx, Y: float64(r)*spacing - cy}
			pos, _ = grid.Snap(pos, spacing/2)

			q := 1.0
			if (r+c)%2 == 1 {
				q = -1.0
			}
			cfg.Sources = append(cfg.Sources, SourceConfig{
				Geometry: charge.Point,
				Position: arr(pos),
				Charge:   q,
			})
		}
	}
	cfg.Probes = [][3]float64{{0, 0, 1}}
	return cfg
}

// Scatter builds n free charges noise-displaced around a disc of the given
// extent. The same seed always yields the same scene.
func Scatter(n int, extent float64, seed int64) *Config {
	cfg := DefaultConfig()
	cfg.Name = fmt.Sprintf("scatter-%d", n)
	cfg.Dt = 0.005
	cfg.Duration = 12.0

	noise := opensimplex.New(seed)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		angle := t * 2 * math.Pi

		// Radius wobbles with smooth noise sampled around the unit circle so
		// neighbors stay correlated instead of jumping at the seam.
		wobble := noise.Eval2(math.Cos(angle), math.Sin(angle))
		radius := extent * (0.35 + 0.3*(wobble+1))
		z := noise.Eval3(t*5, 1.3, 0.7) * extent * 0.15

		pos := r3.Vec{X: radius * math.Cos(angle), Y: radius * math.Sin(angle), Z: z}

		q := 1.0
		if i%2 == 1 {
			q = -1.0
		}
		cfg.Sources = append(cfg.Sources, SourceConfig{
			Geometry: charge.Point,
			Position: arr(pos),
			Charge:   q,
		})
	}
	return cfg
}
