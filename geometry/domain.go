package geometry

import (
	"fmt"
	"math"
	"sort"
)

// VesselKind selects one of the supported bioreactor geometries.
type VesselKind uint8

const (
	VesselBox VesselKind = iota
	VesselHexagonalDrum
)

func (v VesselKind) String() string {
	switch v {
	case VesselBox:
		return "Box"
	case VesselHexagonalDrum:
		return "HexagonalDrum"
	}
	return "Unknown"
}

// ParseVesselKind resolves a vessel name from configuration input.
func ParseVesselKind(name string) (VesselKind, error) {
	switch name {
	case "box", "Box":
		return VesselBox, nil
	case "drum", "Drum", "hexagon", "HexagonalDrum":
		return VesselHexagonalDrum, nil
	}
	return VesselBox, fmt.Errorf("unknown vessel kind %q", name)
}

// Face is a conduction face between two active cells. Tag is FacetInterior
// where the face separates Wall and Cacao cells, FacetNone otherwise.
type Face struct {
	A, B int
	Area float64
	Dist float64
	Tag  FacetTag
}

// BoundaryFace is an exterior face of an active cell. Opening names the
// ventilation patch the face belongs to and is empty for plain convective
// surfaces.
type BoundaryFace struct {
	Cell    int
	Tag     FacetTag
	Area    float64
	Opening string
}

// Domain is an immutable structured hexahedral discretization of a vessel:
// active cells carry a region tag, exterior faces carry a boundary facet
// tag. Construction is the only mutation; the solver treats a Domain as
// read-only and may share it freely across parallel work.
type Domain struct {
	Kind VesselKind

	nx, ny, nz int
	hx, hy, hz float64
	origin     [3]float64

	index    []int       // raw grid id -> active cell index, -1 outside
	cells    []int       // active cell index -> raw grid id
	region   []RegionTag // per active cell
	faces    []Face
	boundary []BoundaryFace
}

// NumCells returns the number of active cells.
func (d *Domain) NumCells() int { return len(d.cells) }

// Region returns the region tag of active cell c.
func (d *Domain) Region(c int) RegionTag { return d.region[c] }

// CellVolume returns the volume of active cell c. The grid is uniform, so
// every cell shares the same volume.
func (d *Domain) CellVolume(c int) float64 { return d.hx * d.hy * d.hz }

// Faces returns the internal conduction faces.
func (d *Domain) Faces() []Face { return d.faces }

// BoundaryFaces returns the tagged exterior faces.
func (d *Domain) BoundaryFaces() []BoundaryFace { return d.boundary }

// MinSpacing returns the finest discretization length, used for time step
// stability checks.
func (d *Domain) MinSpacing() float64 {
	return math.Min(d.hx, math.Min(d.hy, d.hz))
}

// RegionTags returns the distinct region tags present, in ascending order.
func (d *Domain) RegionTags() []RegionTag {
	seen := make(map[RegionTag]bool)
	for _, r := range d.region {
		seen[r] = true
	}
	tags := make([]RegionTag, 0, len(seen))
	for r := range seen {
		tags = append(tags, r)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// FacetTags returns the distinct boundary facet tags present, in ascending
// order.
func (d *Domain) FacetTags() []FacetTag {
	seen := make(map[FacetTag]bool)
	for _, f := range d.boundary {
		seen[f.Tag] = true
	}
	tags := make([]FacetTag, 0, len(seen))
	for f := range seen {
		tags = append(tags, f)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Openings returns the distinct ventilation opening names present, sorted.
func (d *Domain) Openings() []string {
	seen := make(map[string]bool)
	for _, f := range d.boundary {
		if f.Tag == FacetVentilationOpening {
			seen[f.Opening] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RegionVolume returns the total volume of cells tagged r.
func (d *Domain) RegionVolume(r RegionTag) (v float64) {
	for c := range d.region {
		if d.region[c] == r {
			v += d.CellVolume(c)
		}
	}
	return
}

// BoundaryArea returns the total area of boundary faces tagged f.
func (d *Domain) BoundaryArea(f FacetTag) (a float64) {
	for _, bf := range d.boundary {
		if bf.Tag == f {
			a += bf.Area
		}
	}
	return
}

// CellCenter returns the coordinates of active cell c.
func (d *Domain) CellCenter(c int) (x, y, z float64) {
	id := d.cells[c]
	i := id % d.nx
	j := (id / d.nx) % d.ny
	k := id / (d.nx * d.ny)
	x = d.origin[0] + (float64(i)+0.5)*d.hx
	y = d.origin[1] + (float64(j)+0.5)*d.hy
	z = d.origin[2] + (float64(k)+0.5)*d.hz
	return
}

// RawDims returns the full structured grid dimensions and spacings, for
// writers that emit the complete grid.
func (d *Domain) RawDims() (nx, ny, nz int, hx, hy, hz float64) {
	return d.nx, d.ny, d.nz, d.hx, d.hy, d.hz
}

// FillRaw scatters a per-active-cell field onto the full structured grid,
// writing fill into inactive cells.
func (d *Domain) FillRaw(field []float64, fill float64) []float64 {
	raw := make([]float64, d.nx*d.ny*d.nz)
	for i := range raw {
		raw[i] = fill
	}
	for c, id := range d.cells {
		raw[id] = field[c]
	}
	return raw
}

// voxelGrid holds the full structured lattice a vessel is carved from.
type voxelGrid struct {
	nx, ny, nz int
	hx, hy, hz float64
	origin     [3]float64
}

func (g voxelGrid) id(i, j, k int) int { return i + g.nx*(j+g.ny*k) }

func (g voxelGrid) center(i, j, k int) (x, y, z float64) {
	x = g.origin[0] + (float64(i)+0.5)*g.hx
	y = g.origin[1] + (float64(j)+0.5)*g.hy
	z = g.origin[2] + (float64(k)+0.5)*g.hz
	return
}

// face directions, paired with the neighbor offset and face area selector
const (
	dirXMinus = iota
	dirXPlus
	dirYMinus
	dirYPlus
	dirZMinus
	dirZPlus
)

var dirOffsets = [6][3]int{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

func (g voxelGrid) faceArea(dir int) float64 {
	switch dir {
	case dirXMinus, dirXPlus:
		return g.hy * g.hz
	case dirYMinus, dirYPlus:
		return g.hx * g.hz
	}
	return g.hx * g.hy
}

func (g voxelGrid) faceDist(dir int) float64 {
	switch dir {
	case dirXMinus, dirXPlus:
		return g.hx
	case dirYMinus, dirYPlus:
		return g.hy
	}
	return g.hz
}

// assemble carves a Domain out of a voxel grid. regionOf classifies every
// lattice cell; boundaryOf tags exterior faces of active cells.
func assemble(kind VesselKind, g voxelGrid,
	regionOf func(i, j, k int) RegionTag,
	boundaryOf func(i, j, k, dir int) (FacetTag, string)) (*Domain, error) {

	d := &Domain{
		Kind:   kind,
		nx:     g.nx,
		ny:     g.ny,
		nz:     g.nz,
		hx:     g.hx,
		hy:     g.hy,
		hz:     g.hz,
		origin: g.origin,
		index:  make([]int, g.nx*g.ny*g.nz),
	}
	raw := make([]RegionTag, g.nx*g.ny*g.nz)
	for k := 0; k < g.nz; k++ {
		for j := 0; j < g.ny; j++ {
			for i := 0; i < g.nx; i++ {
				id := g.id(i, j, k)
				raw[id] = regionOf(i, j, k)
				if raw[id] != RegionNone {
					d.index[id] = len(d.cells)
					d.cells = append(d.cells, id)
					d.region = append(d.region, raw[id])
				} else {
					d.index[id] = -1
				}
			}
		}
	}
	if len(d.cells) == 0 {
		return nil, fmt.Errorf("%s: discretization produced no active cells; cell size too coarse for the vessel dimensions", kind)
	}

	for k := 0; k < g.nz; k++ {
		for j := 0; j < g.ny; j++ {
			for i := 0; i < g.nx; i++ {
				id := g.id(i, j, k)
				if raw[id] == RegionNone {
					continue
				}
				a := d.index[id]
				for dir := 0; dir < 6; dir++ {
					off := dirOffsets[dir]
					ni, nj, nk := i+off[0], j+off[1], k+off[2]
					inGrid := ni >= 0 && ni < g.nx && nj >= 0 && nj < g.ny && nk >= 0 && nk < g.nz
					if inGrid && raw[g.id(ni, nj, nk)] != RegionNone {
						// Internal face; record once, from the lower cell id.
						nid := g.id(ni, nj, nk)
						if nid < id {
							continue
						}
						b := d.index[nid]
						tag := FacetNone
						if d.region[a] != d.region[b] {
							tag = FacetInterior
						}
						d.faces = append(d.faces, Face{
							A:    a,
							B:    b,
							Area: g.faceArea(dir),
							Dist: g.faceDist(dir),
							Tag:  tag,
						})
						continue
					}
					tag, opening := boundaryOf(i, j, k, dir)
					d.boundary = append(d.boundary, BoundaryFace{
						Cell:    a,
						Tag:     tag,
						Area:    g.faceArea(dir),
						Opening: opening,
					})
				}
			}
		}
	}
	return d, nil
}
