// Package materials resolves thermal properties for the tagged regions of a
// bioreactor domain. Properties are plain data resolved through mappings so
// that vessel, wall material and solver stay independently testable.
package materials

import (
	"fmt"
	"sort"

	"github.com/cacaolab/biotherm/geometry"
)

// Properties is the thermal property triple of one material.
type Properties struct {
	Name string
	K    float64 // thermal conductivity [W/m.K]
	Rho  float64 // density [kg/m3]
	Cp   float64 // specific heat [J/kg.K]
}

// Diffusivity returns k/(rho*cp) [m2/s].
func (p Properties) Diffusivity() float64 {
	return p.K / (p.Rho * p.Cp)
}

func (p Properties) validate() error {
	if p.K <= 0 || p.Rho <= 0 || p.Cp <= 0 {
		return fmt.Errorf("material %q: k, rho, cp must all be strictly positive, got k=%g rho=%g cp=%g",
			p.Name, p.K, p.Rho, p.Cp)
	}
	return nil
}

// Set maps region tags to material properties. It is constant for the
// duration of a simulation run.
type Set map[geometry.RegionTag]Properties

// Lookup returns the properties for tag, or an error when the tag has no
// mapping.
func (s Set) Lookup(tag geometry.RegionTag) (Properties, error) {
	p, ok := s[tag]
	if !ok {
		return Properties{}, fmt.Errorf("no material mapped for region tag %s", tag)
	}
	return p, nil
}

// Validate checks that every mapped material has physical properties.
func (s Set) Validate() error {
	for _, p := range s {
		if err := p.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Variant selects the wall construction material.
type Variant string

const (
	Wood    Variant = "wood"
	Plastic Variant = "plastic"
	Steel   Variant = "steel"
)

// Cacao is the fermenting bean mass; it is part of every material set
// regardless of the wall variant. Moisture figures feed the evaporation
// model.
var Cacao = Properties{Name: "Fermenting Cacao", K: 0.279, Rho: 910, Cp: 920}

// Reference moisture content of the bean mass over a full fermentation,
// mass fraction wet basis.
const (
	MoistureInitial = 0.40
	MoistureFinal   = 0.07
)

var wallVariants = map[Variant]Properties{
	Wood:    {Name: "Cedar Wood", K: 0.128, Rho: 420, Cp: 2000},
	Plastic: {Name: "HDPE", K: 0.40, Rho: 950, Cp: 1900},
	Steel:   {Name: "Carbon Steel", K: 45.0, Rho: 7850, Cp: 490},
}

// Variants lists the supported wall materials, sorted.
func Variants() []Variant {
	vs := make([]Variant, 0, len(wallVariants))
	for v := range wallVariants {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	return vs
}

// Resolve builds the material set for a wall variant. The Cacao entry is
// always present.
func Resolve(v Variant) (Set, error) {
	wall, ok := wallVariants[v]
	if !ok {
		return nil, fmt.Errorf("unknown wall material variant %q (supported: %v)", v, Variants())
	}
	s := Set{
		geometry.RegionWall:  wall,
		geometry.RegionCacao: Cacao,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
