package geometry

import "strings"

// RegionTag identifies a material zone of the discretized vessel.
type RegionTag uint8

const (
	// RegionNone marks grid cells outside the vessel.
	RegionNone RegionTag = iota

	// RegionWall is the structural wall of the vessel.
	RegionWall

	// RegionCacao is the fermenting cacao mass filling the vessel interior.
	RegionCacao
)

// String returns the string representation of a RegionTag
func (r RegionTag) String() string {
	switch r {
	case RegionNone:
		return "None"
	case RegionWall:
		return "Wall"
	case RegionCacao:
		return "Cacao"
	}
	return "Unknown"
}

// FacetTag identifies a class of domain surface.
type FacetTag uint8

const (
	// FacetNone indicates an untagged internal face.
	FacetNone FacetTag = iota

	// FacetExteriorConvective is an outer wall surface cooled by ambient air.
	FacetExteriorConvective

	// FacetVentilationOpening is a perforated wall patch with enhanced air
	// exchange.
	FacetVentilationOpening

	// FacetInterior is the wall/cacao contact surface. It carries no external
	// flux; temperature and flux continuity are enforced by the conduction
	// operator.
	FacetInterior
)

// String returns the string representation of a FacetTag
func (f FacetTag) String() string {
	switch f {
	case FacetNone:
		return "None"
	case FacetExteriorConvective:
		return "ExteriorConvective"
	case FacetVentilationOpening:
		return "VentilationOpening"
	case FacetInterior:
		return "Interior"
	}
	return "Unknown"
}

// RegionNameMap maps common region names to RegionTag. Keys are lowercase
// for case-insensitive matching.
var RegionNameMap = map[string]RegionTag{
	"wall":  RegionWall,
	"wood":  RegionWall,
	"shell": RegionWall,
	"cacao": RegionCacao,
	"bean":  RegionCacao,
	"mass":  RegionCacao,
}

// FacetNameMap maps common boundary names to FacetTag.
var FacetNameMap = map[string]FacetTag{
	"exterior":    FacetExteriorConvective,
	"convective":  FacetExteriorConvective,
	"ventilation": FacetVentilationOpening,
	"opening":     FacetVentilationOpening,
	"vent":        FacetVentilationOpening,
	"interior":    FacetInterior,
	"interface":   FacetInterior,
}

// ParseRegionName converts a region name to a RegionTag. Matching is
// case-insensitive and trims whitespace; unknown names map to RegionNone.
func ParseRegionName(name string) RegionTag {
	if tag, ok := RegionNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return tag
	}
	return RegionNone
}

// ParseFacetName converts a boundary name to a FacetTag. Unknown names map
// to FacetExteriorConvective, the default treatment for outer surfaces.
func ParseFacetName(name string) FacetTag {
	if tag, ok := FacetNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return tag
	}
	return FacetExteriorConvective
}
