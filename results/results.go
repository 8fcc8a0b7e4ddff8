// Package results writes run output: a JSON time series of field statistics,
// legacy-VTK temperature fields for 3D inspection, and a plain text summary.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cacaolab/biotherm/geometry"
	"github.com/cacaolab/biotherm/thermal"
)

// Writer emits all artifacts of one run under a single directory, named
// <prefix>_<artifact>.
type Writer struct {
	dir    string
	prefix string
}

func NewWriter(dir, prefix string) (*Writer, error) {
	if prefix == "" {
		return nil, fmt.Errorf("results prefix must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating results dir %s: %w", dir, err)
	}
	return &Writer{dir: dir, prefix: prefix}, nil
}

func (w *Writer) path(suffix string) string {
	return filepath.Join(w.dir, w.prefix+"_"+suffix)
}

// StatsFile is the serialized statistics time series of a run.
type StatsFile struct {
	Vessel    string             `json:"vessel"`
	Material  string             `json:"wall_material"`
	Cells     int                `json:"cells"`
	Dt        float64            `json:"dt_s"`
	Snapshots []thermal.Snapshot `json:"snapshots"`
}

// WriteStats writes the statistics series as indented JSON and returns the
// file path.
func (w *Writer) WriteStats(dom *geometry.Domain, material string, dt float64, history []thermal.Step) (string, error) {
	sf := StatsFile{
		Vessel:    dom.Kind.String(),
		Material:  material,
		Cells:     dom.NumCells(),
		Dt:        dt,
		Snapshots: make([]thermal.Snapshot, 0, len(history)),
	}
	for _, step := range history {
		sf.Snapshots = append(sf.Snapshots, step.Stats)
	}
	data, err := json.MarshalIndent(&sf, "", "  ")
	if err != nil {
		return "", err
	}
	p := w.path("stats.json")
	if err := os.WriteFile(p, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", p, err)
	}
	return p, nil
}

// ReadStats loads a statistics file written by WriteStats.
func ReadStats(path string) (*StatsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sf := &StatsFile{}
	if err := json.Unmarshal(data, sf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return sf, nil
}
