package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/cacaolab/biotherm/geometry"
	"github.com/cacaolab/biotherm/materials"
	"github.com/cacaolab/biotherm/thermal"
)

// Parameters obtained from the YAML input file
type SimParameters struct {
	Title        string `yaml:"Title"`
	Vessel       string `yaml:"Vessel"`       // "box" or "drum"
	WallMaterial string `yaml:"WallMaterial"` // "wood", "plastic" or "steel"

	InitialTemperature float64 `yaml:"InitialTemperature"`
	Dt                 float64 `yaml:"Dt"`        // [s]
	FinalTime          float64 `yaml:"FinalTime"` // [s]

	Box  *geometry.BoxSpec  `yaml:"Box,omitempty"`
	Drum *geometry.DrumSpec `yaml:"Drum,omitempty"`

	AmbientTemperature      float64            `yaml:"AmbientTemperature"`
	DiurnalAmplitude        float64            `yaml:"DiurnalAmplitude"`
	ConvectiveCoefficient   float64            `yaml:"ConvectiveCoefficient"`
	VentilationCoefficients map[string]float64 `yaml:"VentilationCoefficients,omitempty"`
	DefaultVentCoefficient  float64            `yaml:"DefaultVentCoefficient"`

	Evaporation             bool    `yaml:"Evaporation"`
	RelativeHumidity        float64 `yaml:"RelativeHumidity"`
	EvaporationCoefficient  float64 `yaml:"EvaporationCoefficient"` // mass transfer [m/s]
	EvaporationAreaFraction float64 `yaml:"EvaporationAreaFraction"`
	EvaporationCap          float64 `yaml:"EvaporationCap"`
	ImplicitEvaporation     bool    `yaml:"ImplicitEvaporation"`

	Fermentation bool                   `yaml:"Fermentation"`
	HeatProfile  []thermal.ProfilePoint `yaml:"HeatProfile,omitempty"`

	Workers int `yaml:"Workers"`
}

// Defaults returns the reference case: a wooden box pitched at 25 degC,
// simulated over 48 hours at one minute steps.
func Defaults() *SimParameters {
	flux := thermal.DefaultFluxSpec()
	return &SimParameters{
		Title:                   "Cacao fermentation reference case",
		Vessel:                  "box",
		WallMaterial:            "wood",
		InitialTemperature:      25,
		Dt:                      60,
		FinalTime:               48 * 3600,
		AmbientTemperature:      flux.AmbientTemperature,
		ConvectiveCoefficient:   flux.ConvectiveCoefficient,
		DefaultVentCoefficient:  flux.DefaultVentCoefficient,
		RelativeHumidity:        flux.Evaporation.RelativeHumidity,
		EvaporationCoefficient:  flux.Evaporation.MassTransferCoefficient,
		EvaporationAreaFraction: flux.Evaporation.AreaFraction,
		EvaporationCap:          flux.Evaporation.CapFlux,
		Fermentation:            true,
	}
}

func (sp *SimParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, sp)
}

func (sp *SimParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", sp.Title)
	fmt.Printf("[%s]\t\t\t= Vessel\n", sp.Vessel)
	fmt.Printf("[%s]\t\t\t= WallMaterial\n", sp.WallMaterial)
	fmt.Printf("%8.2f\t\t= InitialTemperature\n", sp.InitialTemperature)
	fmt.Printf("%8.2f\t\t= Dt\n", sp.Dt)
	fmt.Printf("%8.2f\t\t= FinalTime\n", sp.FinalTime)
	fmt.Printf("%8.2f\t\t= AmbientTemperature\n", sp.AmbientTemperature)
	fmt.Printf("%8.2f\t\t= ConvectiveCoefficient\n", sp.ConvectiveCoefficient)
	fmt.Printf("[%v]\t\t\t= Evaporation\n", sp.Evaporation)
	fmt.Printf("[%v]\t\t\t= Fermentation\n", sp.Fermentation)
	keys := make([]string, 0, len(sp.VentilationCoefficients))
	for k := range sp.VentilationCoefficients {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("VentilationCoefficients[%s] = %v\n", key, sp.VentilationCoefficients[key])
	}
}

// Domain realizes the vessel geometry the parameters describe.
func (sp *SimParameters) Domain() (*geometry.Domain, error) {
	kind, err := geometry.ParseVesselKind(sp.Vessel)
	if err != nil {
		return nil, err
	}
	switch kind {
	case geometry.VesselHexagonalDrum:
		spec := geometry.DefaultDrumSpec()
		if sp.Drum != nil {
			spec = *sp.Drum
		}
		return geometry.NewDrumDomain(spec)
	default:
		spec := geometry.DefaultBoxSpec()
		if sp.Box != nil {
			spec = *sp.Box
		}
		return geometry.NewBoxDomain(spec)
	}
}

// Materials resolves the wall material variant.
func (sp *SimParameters) Materials() (materials.Set, error) {
	return materials.Resolve(materials.Variant(sp.WallMaterial))
}

// Flux builds the boundary exchange spec. Values carry over as given, zeros
// included: Defaults() seeds every exposed option, Parse overlays only the
// keys present in the file, and an explicit zero in the file is honored
// rather than silently replaced. Fields the YAML surface does not expose
// (the drying window) keep their defaults.
func (sp *SimParameters) Flux() thermal.FluxSpec {
	f := thermal.DefaultFluxSpec()
	f.AmbientTemperature = sp.AmbientTemperature
	f.DiurnalAmplitude = sp.DiurnalAmplitude
	f.ConvectiveCoefficient = sp.ConvectiveCoefficient
	f.VentilationCoefficients = sp.VentilationCoefficients
	f.DefaultVentCoefficient = sp.DefaultVentCoefficient
	f.Evaporation.Enabled = sp.Evaporation
	f.Evaporation.RelativeHumidity = sp.RelativeHumidity
	f.Evaporation.MassTransferCoefficient = sp.EvaporationCoefficient
	f.Evaporation.AreaFraction = sp.EvaporationAreaFraction
	f.Evaporation.CapFlux = sp.EvaporationCap
	return f
}

// Profile returns the fermentation heat release, nil when the source is
// disabled.
func (sp *SimParameters) Profile() (*thermal.FermentationProfile, error) {
	if !sp.Fermentation {
		return nil, nil
	}
	if len(sp.HeatProfile) > 0 {
		return thermal.NewFermentationProfile(sp.HeatProfile)
	}
	return thermal.DefaultFermentationProfile(), nil
}

// Clock returns the time discretization.
func (sp *SimParameters) Clock() thermal.Clock {
	return thermal.Clock{Dt: sp.Dt, End: sp.FinalTime}
}

// Config returns the solver configuration.
func (sp *SimParameters) Config() thermal.Config {
	return thermal.Config{
		InitialTemperature:  sp.InitialTemperature,
		ImplicitEvaporation: sp.ImplicitEvaporation,
		Workers:             sp.Workers,
	}
}
