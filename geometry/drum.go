package geometry

import (
	"fmt"
	"math"
)

// DrumSpec describes the hexagonal rotating drum: a regular hexagonal prism
// lying on its axis, loaded through perforations along the top face.
// Defaults follow the 300 kg reference drum: 1.8 m long, 86 cm across
// vertices, 3 cm walls.
type DrumSpec struct {
	Length        float64 // axial (z) extent [m]
	OuterDiameter float64 // across opposite vertices [m]
	WallThickness float64 // [m]
	CellSize      float64 // target cell edge length [m]

	// TopVentFraction is the fraction of the axial length, centered, of the
	// top face that is perforated.
	TopVentFraction float64
}

// DefaultDrumSpec returns the reference drum geometry.
func DefaultDrumSpec() DrumSpec {
	return DrumSpec{
		Length:          1.8,
		OuterDiameter:   0.86,
		WallThickness:   0.03,
		CellSize:        0.05,
		TopVentFraction: 0.30,
	}
}

func (s DrumSpec) validate() error {
	if s.Length <= 0 || s.OuterDiameter <= 0 {
		return fmt.Errorf("drum dimensions must be positive, got L=%g D=%g", s.Length, s.OuterDiameter)
	}
	if s.WallThickness <= 0 {
		return fmt.Errorf("wall thickness must be positive, got %g", s.WallThickness)
	}
	apothem := 0.5 * s.OuterDiameter * math.Sqrt(3) / 2
	if s.WallThickness >= apothem {
		return fmt.Errorf("wall thickness %g leaves no interior in a %g drum", s.WallThickness, s.OuterDiameter)
	}
	if s.CellSize <= 0 || s.CellSize > s.OuterDiameter/4 {
		return fmt.Errorf("cell size %g out of range (0, %g]", s.CellSize, s.OuterDiameter/4)
	}
	if s.TopVentFraction < 0 || s.TopVentFraction > 1 {
		return fmt.Errorf("top vent fraction %g out of range [0, 1]", s.TopVentFraction)
	}
	return nil
}

// insideHexagon reports whether (x, y) lies inside the regular hexagon of
// circumradius r centered at the origin, with vertices on the x axis and a
// flat edge facing +y.
func insideHexagon(x, y, r float64) bool {
	a := r * math.Sqrt(3) / 2 // apothem
	if math.Abs(y) > a {
		return false
	}
	if math.Abs(math.Sqrt(3)*x+y) > 2*a {
		return false
	}
	return math.Abs(math.Sqrt(3)*x-y) <= 2*a
}

// NewDrumDomain discretizes the drum on a uniform grid: the hexagonal
// cross-section is voxelized in x-y, the axis runs along z, and the two end
// plates are wall material. As with the box, the wall resolves to at least
// one full cell layer.
func NewDrumDomain(s DrumSpec) (*Domain, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	rOut := 0.5 * s.OuterDiameter
	// Inner hexagon keeps the wall thickness normal to the faces.
	rIn := rOut - s.WallThickness*2/math.Sqrt(3)

	nx := int(math.Round(2 * rOut / s.CellSize))
	ny := nx
	nz := int(math.Round(s.Length / s.CellSize))
	if nx < 5 {
		nx, ny = 5, 5
	}
	if nz < 3 {
		nz = 3
	}
	g := voxelGrid{
		nx: nx, ny: ny, nz: nz,
		hx:     2 * rOut / float64(nx),
		hy:     2 * rOut / float64(ny),
		hz:     s.Length / float64(nz),
		origin: [3]float64{-rOut, -rOut, 0},
	}
	capCells := wallCells(s.WallThickness, g.hz)

	regionOf := func(i, j, k int) RegionTag {
		x, y, _ := g.center(i, j, k)
		if !insideHexagon(x, y, rOut) {
			return RegionNone
		}
		if k < capCells || k >= nz-capCells {
			return RegionWall
		}
		if insideHexagon(x, y, rIn) {
			return RegionCacao
		}
		return RegionWall
	}

	ventZ0 := 0.5 * s.Length * (1 - s.TopVentFraction)
	ventZ1 := 0.5 * s.Length * (1 + s.TopVentFraction)

	boundaryOf := func(i, j, k, dir int) (FacetTag, string) {
		if dir == dirYPlus {
			_, _, z := g.center(i, j, k)
			if z >= ventZ0 && z <= ventZ1 {
				return FacetVentilationOpening, "top"
			}
		}
		return FacetExteriorConvective, ""
	}

	return assemble(VesselHexagonalDrum, g, regionOf, boundaryOf)
}
