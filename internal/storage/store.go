// Package storage persists recorded runs. A SQLite database indexes run
// metadata for fast listing; the bulky frame data lives in one CSV per run
// next to a copy of the scene that produced it.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/scene"
	"github.com/tyl-create/elec-n/internal/sim"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	scene TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	dt REAL NOT NULL,
	duration REAL NOT NULL,
	damping REAL NOT NULL,
	k REAL NOT NULL,
	steps INTEGER NOT NULL,
	source_count INTEGER NOT NULL,
	metrics_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_scene ON runs(scene);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`

// Store is a run archive rooted at a directory.
type Store struct {
	baseDir string
	db      *sqlx.DB
}

// Open opens or creates the archive, migrating the index on the way.
func Open(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("storage: create base dir: %w", err)
	}

	dbPath := filepath.Join(baseDir, "runs.db")
	db, err := sqlx.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("storage: open index: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrate index: %w", err)
	}

	return &Store{baseDir: baseDir, db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RunMeta is one row of the run index.
type RunMeta struct {
	ID          string             `db:"id" json:"id"`
	Scene       string             `db:"scene" json:"scene"`
	CreatedAt   int64              `db:"created_at" json:"created_at"`
	Dt          float64            `db:"dt" json:"dt"`
	Duration    float64            `db:"duration" json:"duration"`
	Damping     float64            `db:"damping" json:"damping"`
	K           float64            `db:"k" json:"k"`
	Steps       int                `db:"steps" json:"steps"`
	SourceCount int                `db:"source_count" json:"source_count"`
	Metrics     map[string]float64 `db:"-" json:"metrics"`
}

// Created returns the index timestamp as a time.Time.
func (m RunMeta) Created() time.Time {
	return time.Unix(m.CreatedAt, 0)
}

// Save archives a run: scene.yaml and frames.csv under a fresh run directory
// plus an index row. Returns the run ID.
func (s *Store) Save(cfg *scene.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", cfg.Name, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := scene.Save(filepath.Join(runDir, "scene.yaml"), cfg); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	if err := WriteFrames(csvFile, result.Frames); err != nil {
		csvFile.Close()
		return "", err
	}
	if err := csvFile.Close(); err != nil {
		return "", err
	}

	metricsJSON, err := json.Marshal(result.Metrics)
	if err != nil {
		return "", err
	}

	sourceCount := 0
	if len(result.Frames) > 0 {
		sourceCount = len(result.Frames[0].Sources)
	}

	_, err = s.db.Exec(`INSERT INTO runs
		(id, scene, created_at, dt, duration, damping, k, steps, source_count, metrics_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, cfg.Name, time.Now().Unix(), cfg.Dt, cfg.Duration, cfg.Damping,
		cfg.K, result.StepsTaken, sourceCount, string(metricsJSON))
	if err != nil {
		return "", fmt.Errorf("storage: index run %s: %w", runID, err)
	}

	return runID, nil
}

type runRow struct {
	RunMeta
	MetricsJSON string `db:"metrics_json"`
}

// List returns every indexed run, newest first.
func (s *Store) List() ([]RunMeta, error) {
	var rows []runRow
	err := s.db.Select(&rows, `SELECT id, scene, created_at, dt, duration, damping,
		k, steps, source_count, metrics_json FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}

	runs := make([]RunMeta, 0, len(rows))
	for _, row := range rows {
		meta := row.RunMeta
		if err := json.Unmarshal([]byte(row.MetricsJSON), &meta.Metrics); err != nil {
			meta.Metrics = map[string]float64{}
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// Get returns one run's metadata.
func (s *Store) Get(runID string) (*RunMeta, error) {
	var row runRow
	err := s.db.Get(&row, `SELECT id, scene, created_at, dt, duration, damping,
		k, steps, source_count, metrics_json FROM runs WHERE id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}

	meta := row.RunMeta
	if err := json.Unmarshal([]byte(row.MetricsJSON), &meta.Metrics); err != nil {
		meta.Metrics = map[string]float64{}
	}
	return &meta, nil
}

// LoadRun reads back a run's scene and frames. Source order in the frames
// matches the scene's source order.
func (s *Store) LoadRun(runID string) (*scene.Config, []sim.Frame, error) {
	runDir := filepath.Join(s.baseDir, runID)

	cfg, err := scene.Load(filepath.Join(runDir, "scene.yaml"))
	if err != nil {
		return nil, nil, err
	}
	sources, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	frames, err := ReadFrames(f, sources)
	if err != nil {
		return nil, nil, err
	}
	return cfg, frames, nil
}

// Delete removes a run's directory and index row.
func (s *Store) Delete(runID string) error {
	if _, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, runID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}

// WriteFrames encodes frames as CSV: a time column followed by position and
// velocity triples per source. Full float precision so reloaded runs feed
// analysis without quantization artifacts.
func WriteFrames(w io.Writer, frames []sim.Frame) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(frames) == 0 {
		return cw.Error()
	}

	header := []string{"time"}
	for i := range frames[0].Sources {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i), fmt.Sprintf("z%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i), fmt.Sprintf("vz%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, frame := range frames {
		row := make([]string, 0, 1+6*len(frame.Sources))
		row = append(row, formatFloat(frame.Time))
		for i := range frame.Sources {
			p, v := frame.Sources[i].Position, frame.Sources[i].Velocity
			row = append(row,
				formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z),
				formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadFrames decodes WriteFrames output, overlaying positions and velocities
// onto clones of the template sources.
func ReadFrames(r io.Reader, template []charge.Source) ([]sim.Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 1+6*len(template) {
			return nil, fmt.Errorf("storage: frame row has %d fields, want %d",
				len(record), 1+6*len(template))
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: bad time %q: %w", record[0], err)
		}

		sources := charge.Clone(template)
		for i := range sources {
			vals := make([]float64, 6)
			for j := 0; j < 6; j++ {
				vals[j], err = strconv.ParseFloat(record[1+i*6+j], 64)
				if err != nil {
					return nil, fmt.Errorf("storage: bad value %q: %w", record[1+i*6+j], err)
				}
			}
			sources[i].Position.X, sources[i].Position.Y, sources[i].Position.Z = vals[0], vals[1], vals[2]
			sources[i].Velocity.X, sources[i].Velocity.Y, sources[i].Velocity.Z = vals[3], vals[4], vals[5]
		}
		frames = append(frames, sim.Frame{Time: t, Sources: sources})
	}
	return frames, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
