package geometry

import (
	"fmt"
	"math"
)

// BoxSpec describes the rectangular wooden fermentation box. Defaults match
// the 400 kg community box: 85 x 90 x 74 cm outer envelope with 2.5 cm walls,
// perforations over half the floor and the lower quarter of each side.
type BoxSpec struct {
	Length        float64 // outer x extent [m]
	Width         float64 // outer y extent [m]
	Height        float64 // outer z extent [m]
	WallThickness float64 // [m]
	CellSize      float64 // target cell edge length [m]

	// BottomVentFraction is the fraction of the floor area perforated for
	// drainage and air intake; the patch is centered.
	BottomVentFraction float64

	// LateralVentFraction is the height fraction of each side wall, from the
	// floor up, that is perforated.
	LateralVentFraction float64
}

// DefaultBoxSpec returns the reference box geometry.
func DefaultBoxSpec() BoxSpec {
	return BoxSpec{
		Length:              0.85,
		Width:               0.90,
		Height:              0.74,
		WallThickness:       0.025,
		CellSize:            0.05,
		BottomVentFraction:  0.50,
		LateralVentFraction: 0.25,
	}
}

func (s BoxSpec) validate() error {
	if s.Length <= 0 || s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("box dimensions must be positive, got %gx%gx%g", s.Length, s.Width, s.Height)
	}
	if s.WallThickness <= 0 {
		return fmt.Errorf("wall thickness must be positive, got %g", s.WallThickness)
	}
	min := math.Min(s.Length, math.Min(s.Width, s.Height))
	if 2*s.WallThickness >= min {
		return fmt.Errorf("wall thickness %g leaves no interior in a %g vessel", s.WallThickness, min)
	}
	if s.CellSize <= 0 || s.CellSize > min/3 {
		return fmt.Errorf("cell size %g out of range (0, %g]", s.CellSize, min/3)
	}
	if s.BottomVentFraction < 0 || s.BottomVentFraction > 1 {
		return fmt.Errorf("bottom vent fraction %g out of range [0, 1]", s.BottomVentFraction)
	}
	if s.LateralVentFraction < 0 || s.LateralVentFraction > 1 {
		return fmt.Errorf("lateral vent fraction %g out of range [0, 1]", s.LateralVentFraction)
	}
	return nil
}

// NewBoxDomain discretizes the box on a uniform grid. The wall is resolved
// to at least one full cell layer, so the effective wall thickness is
// max(WallThickness, CellSize) rounded to whole cells.
func NewBoxDomain(s BoxSpec) (*Domain, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	nx := int(math.Round(s.Length / s.CellSize))
	ny := int(math.Round(s.Width / s.CellSize))
	nz := int(math.Round(s.Height / s.CellSize))
	if nx < 3 {
		nx = 3
	}
	if ny < 3 {
		ny = 3
	}
	if nz < 3 {
		nz = 3
	}
	g := voxelGrid{
		nx: nx, ny: ny, nz: nz,
		hx: s.Length / float64(nx),
		hy: s.Width / float64(ny),
		hz: s.Height / float64(nz),
	}
	wallX := wallCells(s.WallThickness, g.hx)
	wallY := wallCells(s.WallThickness, g.hy)
	wallZ := wallCells(s.WallThickness, g.hz)

	regionOf := func(i, j, k int) RegionTag {
		if i < wallX || i >= nx-wallX ||
			j < wallY || j >= ny-wallY ||
			k < wallZ || k >= nz-wallZ {
			return RegionWall
		}
		return RegionCacao
	}

	// Centered rectangular patch covering BottomVentFraction of the floor.
	fr := math.Sqrt(s.BottomVentFraction)
	ventX0 := 0.5 * s.Length * (1 - fr)
	ventX1 := 0.5 * s.Length * (1 + fr)
	ventY0 := 0.5 * s.Width * (1 - fr)
	ventY1 := 0.5 * s.Width * (1 + fr)
	lateralZ := s.LateralVentFraction * s.Height

	boundaryOf := func(i, j, k, dir int) (FacetTag, string) {
		x, y, z := g.center(i, j, k)
		switch dir {
		case dirZMinus:
			if x >= ventX0 && x <= ventX1 && y >= ventY0 && y <= ventY1 {
				return FacetVentilationOpening, "bottom"
			}
		case dirXMinus, dirXPlus, dirYMinus, dirYPlus:
			if z <= lateralZ {
				return FacetVentilationOpening, "lateral"
			}
		}
		return FacetExteriorConvective, ""
	}

	return assemble(VesselBox, g, regionOf, boundaryOf)
}

func wallCells(thickness, h float64) int {
	n := int(math.Round(thickness / h))
	if n < 1 {
		n = 1
	}
	return n
}
