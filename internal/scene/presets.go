package scene

import (
	"sort"

	"github.com/tyl-create/elec-n/internal/charge"
)

// Presets holds the built-in scenes. Procedural scenes (lattice, scatter)
// are generated once at init with fixed seeds so `elecn run -p name` is
// reproducible.
var Presets = map[string]*Config{
	"dipole": {
		Name: "dipole", K: 1.0, Dt: 0.005, Duration: 12.0, Damping: 0.98,
		Sources: []SourceConfig{
			{Geometry: charge.Point, Position: [3]float64{-1, 0, 0}, Charge: 1.0},
			{Geometry: charge.Point, Position: [3]float64{1, 0, 0}, Charge: -1.0},
		},
		Probes: [][3]float64{{0, 0, 0}, {0, 1, 0}},
	},
	"mirror": {
		Name: "mirror", K: 1.0, Dt: 0.005, Duration: 15.0, Damping: 0.98,
		Sources: []SourceConfig{
			{Geometry: charge.Point, Position: [3]float64{-1, 0, 0}, Charge: 2.0},
			{Geometry: charge.Point, Position: [3]float64{1, 0, 0}, Charge: 2.0},
		},
	},
	"orbit": {
		Name: "orbit", K: 1.0, Dt: 0.002, Duration: 25.0, Damping: 1.0,
		Sources: []SourceConfig{
			{Geometry: charge.Point, Position: [3]float64{0, 0, 0}, Charge: 10.0,
				Mass: 100.0, Fixed: true},
			{Geometry: charge.Point, Position: [3]float64{2, 0, 0}, Charge: -1.0,
				Mass: 0.5, Velocity: [3]float64{0, 1.55, 0}},
		},
	},
	"shell": {
		Name: "shell", K: 1.0, Dt: 0.005, Duration: 10.0, Damping: 0.98,
		Sources: []SourceConfig{
			{Geometry: charge.ConductingSphere, Position: [3]float64{0, 0, 0},
				Charge: 5.0, Radius: 1.0, Fixed: true},
			{Geometry: charge.Point, Position: [3]float64{0.5, 0, 0}, Charge: -0.5},
			{Geometry: charge.Point, Position: [3]float64{2.5, 0, 0}, Charge: -0.5},
		},
		Probes: [][3]float64{{0.5, 0, 0}, {2, 0, 0}},
	},
	"ring-axis": {
		Name: "ring-axis", K: 1.0, Dt: 0.002, Duration: 20.0, Damping: 1.0,
		Sources: []SourceConfig{
			{Geometry: charge.Ring, Position: [3]float64{0, 0, 0}, Charge: 4.0,
				Radius: 2.0, Fixed: true},
			{Geometry: charge.Point, Position: [3]float64{0, 0, 3}, Charge: -1.0, Mass: 0.5},
		},
		Probes: [][3]float64{{0, 0, 1.5}},
	},
}

func init() {
	Presets["lattice"] = Lattice(3, 3, 1.0)
	Presets["scatter"] = Scatter(12, 3.0, 7)
}

// GetPreset returns a named preset or nil.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the preset names sorted for stable CLI output.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
