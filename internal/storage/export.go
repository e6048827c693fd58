package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/tyl-create/elec-n/internal/scene"
	"github.com/tyl-create/elec-n/internal/sim"
)

// SourceInfo is the static description of one source in an export.
type SourceInfo struct {
	ID       string  `json:"id"`
	Geometry string  `json:"geometry"`
	Charge   float64 `json:"charge"`
	Radius   float64 `json:"radius,omitempty"`
	Mass     float64 `json:"mass"`
	Fixed    bool    `json:"fixed,omitempty"`
}

// ExportData is the JSON shape of a full run dump: static source info once,
// then frame-major position and velocity tracks.
type ExportData struct {
	Scene      string             `json:"scene"`
	K          float64            `json:"k"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Damping    float64            `json:"damping"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
	Sources    []SourceInfo       `json:"sources"`
	Times      []float64          `json:"times"`
	Positions  [][][3]float64     `json:"positions"`
	Velocities [][][3]float64     `json:"velocities"`
}

// BuildExport flattens a run for serialization.
func BuildExport(cfg *scene.Config, result *sim.Result) ExportData {
	data := ExportData{
		Scene:      cfg.Name,
		K:          cfg.K,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Damping:    cfg.Damping,
		Steps:      result.StepsTaken,
		Metrics:    result.Metrics,
		Times:      result.Times(),
		Positions:  make([][][3]float64, len(result.Frames)),
		Velocities: make([][][3]float64, len(result.Frames)),
	}

	if len(result.Frames) > 0 {
		for _, s := range result.Frames[0].Sources {
			data.Sources = append(data.Sources, SourceInfo{
				ID:       s.ID,
				Geometry: s.Geometry.String(),
				Charge:   s.Charge,
				Radius:   s.Radius,
				Mass:     s.Mass,
				Fixed:    s.Fixed,
			})
		}
	}

	for f, frame := range result.Frames {
		data.Positions[f] = make([][3]float64, len(frame.Sources))
		data.Velocities[f] = make([][3]float64, len(frame.Sources))
		for i := range frame.Sources {
			p, v := frame.Sources[i].Position, frame.Sources[i].Velocity
			data.Positions[f][i] = [3]float64{p.X, p.Y, p.Z}
			data.Velocities[f][i] = [3]float64{v.X, v.Y, v.Z}
		}
	}
	return data
}

// ExportJSON writes a full run dump to path.
func ExportJSON(path string, cfg *scene.Config, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, cfg, result)
}

// ExportJSONStdout writes a full run dump to stdout.
func ExportJSONStdout(cfg *scene.Config, result *sim.Result) error {
	return writeExport(os.Stdout, cfg, result)
}

func writeExport(w io.Writer, cfg *scene.Config, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildExport(cfg, result))
}

// ExportCSV writes the frames of a run to path in the archive CSV layout.
func ExportCSV(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteFrames(file, result.Frames)
}
