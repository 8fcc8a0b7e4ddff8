package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxDomain(t *testing.T) {
	dom, err := NewBoxDomain(DefaultBoxSpec())
	require.NoError(t, err)

	assert.Equal(t, VesselBox, dom.Kind)
	assert.Equal(t, []RegionTag{RegionWall, RegionCacao}, dom.RegionTags())
	assert.Equal(t, []FacetTag{FacetExteriorConvective, FacetVentilationOpening}, dom.FacetTags())
	assert.Equal(t, []string{"bottom", "lateral"}, dom.Openings())

	// The box is fully enclosed, so total active volume matches the outer
	// envelope and the boundary area matches its surface.
	spec := DefaultBoxSpec()
	vol := dom.RegionVolume(RegionWall) + dom.RegionVolume(RegionCacao)
	assert.InDelta(t, spec.Length*spec.Width*spec.Height, vol, 1e-9)
	area := dom.BoundaryArea(FacetExteriorConvective) + dom.BoundaryArea(FacetVentilationOpening)
	want := 2 * (spec.Length*spec.Width + spec.Length*spec.Height + spec.Width*spec.Height)
	assert.InDelta(t, want, area, 1e-9)

	// Every boundary face belongs to a wall cell; interior faces separate
	// wall from cacao.
	for _, bf := range dom.BoundaryFaces() {
		assert.Equal(t, RegionWall, dom.Region(bf.Cell))
	}
	nInterior := 0
	for _, f := range dom.Faces() {
		if f.Tag == FacetInterior {
			nInterior++
			assert.NotEqual(t, dom.Region(f.A), dom.Region(f.B))
		} else {
			assert.Equal(t, dom.Region(f.A), dom.Region(f.B))
		}
	}
	assert.Greater(t, nInterior, 0)
}

func TestBoxVentilationFractions(t *testing.T) {
	spec := DefaultBoxSpec()
	dom, err := NewBoxDomain(spec)
	require.NoError(t, err)

	var bottomVent, bottomTotal float64
	for _, bf := range dom.BoundaryFaces() {
		_, _, z := dom.CellCenter(bf.Cell)
		if z < spec.Height/2 && bf.Opening == "bottom" {
			bottomVent += bf.Area
		}
	}
	bottomTotal = spec.Length * spec.Width
	// Voxelized patch, so the fraction is approximate.
	assert.InDelta(t, spec.BottomVentFraction, bottomVent/bottomTotal, 0.15)
}

func TestDrumDomain(t *testing.T) {
	dom, err := NewDrumDomain(DefaultDrumSpec())
	require.NoError(t, err)

	assert.Equal(t, VesselHexagonalDrum, dom.Kind)
	assert.Equal(t, []RegionTag{RegionWall, RegionCacao}, dom.RegionTags())
	assert.Contains(t, dom.FacetTags(), FacetVentilationOpening)
	assert.Equal(t, []string{"top"}, dom.Openings())

	// Voxelized hexagonal prism volume approximates the analytic prism.
	spec := DefaultDrumSpec()
	r := spec.OuterDiameter / 2
	analytic := 3 * math.Sqrt(3) / 2 * r * r * spec.Length
	vol := dom.RegionVolume(RegionWall) + dom.RegionVolume(RegionCacao)
	assert.InDelta(t, analytic, vol, 0.12*analytic)

	// No active cell outside the outer hexagon.
	for c := 0; c < dom.NumCells(); c++ {
		x, y, _ := dom.CellCenter(c)
		assert.True(t, insideHexagon(x, y, r+1e-9))
	}
}

func TestInsideHexagon(t *testing.T) {
	r := 1.0
	a := r * math.Sqrt(3) / 2
	assert.True(t, insideHexagon(0, 0, r))
	assert.True(t, insideHexagon(0.99*r, 0, r))
	assert.True(t, insideHexagon(0, 0.99*a, r))
	assert.False(t, insideHexagon(1.01*r, 0, r))
	assert.False(t, insideHexagon(0, 1.01*a, r))
	// Corner between two edges.
	assert.False(t, insideHexagon(0.9*r, 0.5*a, r))
}

func TestBoxSpecValidation(t *testing.T) {
	spec := DefaultBoxSpec()
	spec.WallThickness = 0.5
	_, err := NewBoxDomain(spec)
	assert.Error(t, err)

	spec = DefaultBoxSpec()
	spec.CellSize = -1
	_, err = NewBoxDomain(spec)
	assert.Error(t, err)

	spec = DefaultBoxSpec()
	spec.BottomVentFraction = 1.5
	_, err = NewBoxDomain(spec)
	assert.Error(t, err)
}

func TestParseNames(t *testing.T) {
	assert.Equal(t, RegionWall, ParseRegionName(" Wall "))
	assert.Equal(t, RegionCacao, ParseRegionName("cacao"))
	assert.Equal(t, RegionNone, ParseRegionName("granite"))
	assert.Equal(t, FacetVentilationOpening, ParseFacetName("Vent"))
	assert.Equal(t, FacetExteriorConvective, ParseFacetName("anything"))

	kind, err := ParseVesselKind("drum")
	assert.NoError(t, err)
	assert.Equal(t, VesselHexagonalDrum, kind)
	_, err = ParseVesselKind("sphere")
	assert.Error(t, err)
}
