package scene

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/dynamics"
	"github.com/tyl-create/elec-n/internal/field"
)

const (
	DefaultK        = 1.0
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultDamping  = dynamics.DefaultDamping
)

// SourceConfig is the yaml form of one charge source. Zero Mass means "use
// the default of 1.0"; an explicit negative mass is rejected at build time.
type SourceConfig struct {
	ID       string          `yaml:"id,omitempty"`
	Geometry charge.Geometry `yaml:"geometry"`
	Position [3]float64      `yaml:"position,flow"`
	Velocity [3]float64      `yaml:"velocity,flow,omitempty"`
	Charge   float64         `yaml:"charge"`
	Radius   float64         `yaml:"radius,omitempty"`
	Mass     float64         `yaml:"mass,omitempty"`
	Fixed    bool            `yaml:"fixed,omitempty"`
}

// Config describes a complete scene: the evaluator constants, the run
// parameters, the sources, and any probe points of interest.
type Config struct {
	Name     string            `yaml:"name"`
	K        float64           `yaml:"k"`
	Dt       float64           `yaml:"dt"`
	Duration float64           `yaml:"duration"`
	Damping  float64           `yaml:"damping"`
	Samples  field.RingSamples `yaml:"ring_samples,omitempty"`
	Sources  []SourceConfig    `yaml:"sources"`
	Probes   [][3]float64      `yaml:"probes,omitempty,flow"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:     "scene",
		K:        DefaultK,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Damping:  DefaultDamping,
		Samples:  field.DefaultRingSamples(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build validates every source entry and returns the live scene. Errors name
// the offending index so bad yaml is easy to find.
func (c *Config) Build() ([]charge.Source, error) {
	sources := make([]charge.Source, 0, len(c.Sources))
	for i, sc := range c.Sources {
		mass := sc.Mass
		if mass == 0 {
			mass = 1.0
		}
		s, err := charge.New(sc.Geometry, vec(sc.Position), sc.Charge, sc.Radius, mass)
		if err != nil {
			return nil, fmt.Errorf("scene %q: source %d: %w", c.Name, i, err)
		}
		if sc.ID != "" {
			s.ID = sc.ID
		}
		s.Velocity = vec(sc.Velocity)
		s.Fixed = sc.Fixed
		sources = append(sources, s)
	}
	return sources, nil
}

// Evaluator returns the field evaluator this scene configures.
func (c *Config) Evaluator() field.Evaluator {
	return field.New(c.K, c.Samples)
}

// Integrator returns the configured integrator for this scene.
func (c *Config) Integrator() dynamics.Integrator {
	integ := dynamics.New(c.Evaluator())
	if c.Damping > 0 {
		integ.Damping = c.Damping
	}
	return integ
}

// ProbePoints converts the configured probes to vectors.
func (c *Config) ProbePoints() []r3.Vec {
	points := make([]r3.Vec, len(c.Probes))
	for i, p := range c.Probes {
		points[i] = vec(p)
	}
	return points
}

func vec(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

func arr(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
