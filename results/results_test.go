package results

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cacaolab/biotherm/geometry"
	"github.com/cacaolab/biotherm/thermal"
)

func fakeHistory(t *testing.T, dom *geometry.Domain) []thermal.Step {
	t.Helper()
	history := make([]thermal.Step, 3)
	for i := range history {
		field := make([]float64, dom.NumCells())
		for c := range field {
			field[c] = 45 - float64(i)
		}
		history[i] = thermal.Step{
			Time:  float64(i) * 60,
			Field: field,
			Stats: thermal.Snapshot{
				Time: float64(i) * 60, Min: 45 - float64(i), Max: 45 - float64(i),
				Mean: 45 - float64(i), CacaoMax: 45 - float64(i), Activity: 1,
			},
		}
	}
	return history
}

func TestWriteAndReadStats(t *testing.T) {
	dom, err := geometry.NewBoxDomain(geometry.DefaultBoxSpec())
	require.NoError(t, err)
	history := fakeHistory(t, dom)

	w, err := NewWriter(t.TempDir(), "box_wood")
	require.NoError(t, err)
	p, err := w.WriteStats(dom, "wood", 60, history)
	require.NoError(t, err)

	sf, err := ReadStats(p)
	require.NoError(t, err)
	assert.Equal(t, "Box", sf.Vessel)
	assert.Equal(t, "wood", sf.Material)
	assert.Equal(t, dom.NumCells(), sf.Cells)
	require.Len(t, sf.Snapshots, 3)
	assert.Equal(t, 43.0, sf.Snapshots[2].Mean)
}

func TestWriteVTK(t *testing.T) {
	dom, err := geometry.NewBoxDomain(geometry.DefaultBoxSpec())
	require.NoError(t, err)
	history := fakeHistory(t, dom)

	w, err := NewWriter(t.TempDir(), "box")
	require.NoError(t, err)
	p, err := w.WriteVTK(dom, history[0], 0)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(p, "box_field_00000.vtk"))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "# vtk DataFile Version 3.0\n"))
	assert.Contains(t, text, "DATASET STRUCTURED_POINTS")
	assert.Contains(t, text, "SCALARS temperature double 1")
	assert.Contains(t, text, "SCALARS region int 1")

	nx, ny, nz, _, _, _ := dom.RawDims()
	// Header, two scalar blocks of the full grid and their headers.
	lines := strings.Count(text, "\n")
	assert.Equal(t, 8+2*(2+nx*ny*nz), lines)
}

func TestWriteSummary(t *testing.T) {
	dom, err := geometry.NewBoxDomain(geometry.DefaultBoxSpec())
	require.NoError(t, err)
	history := fakeHistory(t, dom)

	w, err := NewWriter(t.TempDir(), "box")
	require.NoError(t, err)
	p, err := w.WriteSummary(dom, "wood", history,
		[]thermal.StabilityWarning{{Dt: 600, Limit: 312}})
	require.NoError(t, err)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Box")
	assert.Contains(t, text, "wood")
	assert.Contains(t, text, "Warnings:")

	_, err = w.WriteSummary(dom, "wood", nil, nil)
	assert.Error(t, err)
}

func TestNewWriterRejectsEmptyPrefix(t *testing.T) {
	_, err := NewWriter(t.TempDir(), "")
	assert.Error(t, err)
}
