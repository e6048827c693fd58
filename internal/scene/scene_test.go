package scene

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/tyl-create/elec-n/internal/charge"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.K != 1.0 {
		t.Errorf("expected k=1, got %v", cfg.K)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Damping <= 0 || cfg.Damping > 1 {
		t.Errorf("damping %v outside (0, 1]", cfg.Damping)
	}
}

func TestBuildValidatesSources(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sources = []SourceConfig{
		{Geometry: charge.Point, Charge: 1.0},
		{Geometry: charge.Ring, Charge: 1.0}, // missing radius
	}

	_, err := cfg.Build()
	if !errors.Is(err, charge.ErrRadius) {
		t.Fatalf("Build() error = %v, want ErrRadius", err)
	}
}

func TestBuildDefaultsAndOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sources = []SourceConfig{
		{ID: "anchor", Geometry: charge.Point, Position: [3]float64{1, 2, 3},
			Charge: -2.0, Velocity: [3]float64{0, 0.5, 0}, Fixed: true},
	}

	sources, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	s := sources[0]
	if s.ID != "anchor" {
		t.Errorf("explicit ID lost: %q", s.ID)
	}
	if s.Mass != 1.0 {
		t.Errorf("mass = %v, want default 1.0", s.Mass)
	}
	if s.Position.Y != 2 || s.Velocity.Y != 0.5 || !s.Fixed {
		t.Error("position, velocity or fixed flag not carried over")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")

	cfg := GetPreset("ring-axis")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	if loaded.Name != cfg.Name || loaded.Dt != cfg.Dt || loaded.Damping != cfg.Damping {
		t.Error("run parameters did not survive the round trip")
	}
	if len(loaded.Sources) != len(cfg.Sources) {
		t.Fatalf("got %d sources, want %d", len(loaded.Sources), len(cfg.Sources))
	}
	if loaded.Sources[0].Geometry != charge.Ring {
		t.Errorf("geometry = %v, want ring", loaded.Sources[0].Geometry)
	}
	if loaded.Sources[0].Radius != 2.0 {
		t.Errorf("radius = %v, want 2", loaded.Sources[0].Radius)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	if GetPreset("dipole") == nil {
		t.Fatal("expected dipole preset")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestAllPresetsBuild(t *testing.T) {
	for name, cfg := range Presets {
		sources, err := cfg.Build()
		if err != nil {
			t.Errorf("preset %q: %v", name, err)
			continue
		}
		if len(sources) == 0 {
			t.Errorf("preset %q has no sources", name)
		}
	}
}

func TestLatticeAlignment(t *testing.T) {
	cfg := Lattice(3, 4, 1.0)

	if len(cfg.Sources) != 12 {
		t.Fatalf("got %d sources, want 12", len(cfg.Sources))
	}
	for i, sc := range cfg.Sources {
		for axis, v := range sc.Position {
			m := math.Round(v/0.5) * 0.5
			if math.Abs(v-m) > 1e-9 {
				t.Errorf("source %d axis %d: %v off the half-spacing grid", i, axis, v)
			}
		}
	}

	// Neighbors along a row alternate sign.
	if cfg.Sources[0].Charge == cfg.Sources[1].Charge {
		t.Error("lattice charges do not alternate")
	}
}

func TestScatterDeterministic(t *testing.T) {
	a := Scatter(10, 3.0, 42)
	b := Scatter(10, 3.0, 42)
	c := Scatter(10, 3.0, 43)

	if len(a.Sources) != 10 {
		t.Fatalf("got %d sources, want 10", len(a.Sources))
	}
	for i := range a.Sources {
		if a.Sources[i].Position != b.Sources[i].Position {
			t.Fatalf("source %d differs across identical seeds", i)
		}
	}

	same := true
	for i := range a.Sources {
		if a.Sources[i].Position != c.Sources[i].Position {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical scatter")
	}
}
