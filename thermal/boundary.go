package thermal

import (
	"fmt"
	"math"

	"github.com/cacaolab/biotherm/geometry"
)

// Physical constants of the evaporation model.
const (
	waterMolarMass  = 0.018   // [kg/mol]
	gasConstant     = 8.314   // [J/mol.K]
	latentHeatWater = 2.257e6 // [J/kg]
	kelvinOffset    = 273.15
)

// SaturationPressure returns the saturation vapor pressure of water at tC
// [degC], in Pa, by the Magnus-Tetens correlation. Valid for the 0-60 degC
// range a fermentation can reach.
func SaturationPressure(tC float64) float64 {
	return 610.78 * math.Exp(17.27*tC/(tC+237.3))
}

// Evaporation configures the capped evaporative cooling flux applied on
// ventilation openings.
type Evaporation struct {
	Enabled bool

	// RelativeHumidity of the ambient air, in [0, 1].
	RelativeHumidity float64

	// MassTransferCoefficient of the air film over the opening [m/s].
	MassTransferCoefficient float64

	// AreaFraction scales the wetted share of each opening, in (0, 1].
	AreaFraction float64

	// CapFlux bounds the cooling flux [W/m2]; the film model overshoots once
	// the surface dries out, so the cap keeps the sink physical.
	CapFlux float64

	// DryingWindow is the span [s] over which the surface water activity
	// falls from fresh-pulp to end-of-fermentation levels.
	DryingWindow float64
}

// Surface water activity of the bean mass, fitted to pulp drying over the
// fermentation: fresh pulp is nearly free water, the drained mass ends near
// 0.88.
func (e Evaporation) waterActivity(t float64) float64 {
	const aw0, aw1 = 1.0, 0.88
	if e.DryingWindow <= 0 || t >= e.DryingWindow {
		return aw1
	}
	if t < 0 {
		return aw0
	}
	return aw0 + (aw1-aw0)*t/e.DryingWindow
}

// FluxSpec holds the boundary exchange models of a run: Newton convection on
// exterior surfaces, enhanced convection on ventilation openings, and the
// optional evaporative sink. All coefficients are constant over a run; only
// the ambient temperature and the evaporative flux vary in time.
type FluxSpec struct {
	// AmbientTemperature is the daily mean air temperature [degC].
	AmbientTemperature float64

	// DiurnalAmplitude is the half swing of the day/night cycle [degC];
	// zero disables the cycle.
	DiurnalAmplitude float64

	// ConvectiveCoefficient applies to ExteriorConvective facets [W/m2.K].
	ConvectiveCoefficient float64

	// VentilationCoefficients maps opening names to their enhanced
	// coefficients [W/m2.K]; openings not listed use DefaultVentCoefficient.
	VentilationCoefficients map[string]float64
	DefaultVentCoefficient  float64

	Evaporation Evaporation
}

// DefaultFluxSpec returns the reference tropical fermentation site: 21 degC
// still air, moderately ventilated openings, 65% humidity.
func DefaultFluxSpec() FluxSpec {
	return FluxSpec{
		AmbientTemperature:     21.0,
		DiurnalAmplitude:       0.0,
		ConvectiveCoefficient:  10.0,
		DefaultVentCoefficient: 80.0,
		Evaporation: Evaporation{
			Enabled:                 false,
			RelativeHumidity:        0.65,
			MassTransferCoefficient: 1e-3,
			AreaFraction:            1.0,
			CapFlux:                 150.0,
			DryingWindow:            168 * 3600,
		},
	}
}

// Validate fails fast on unphysical boundary settings. The domain supplies
// the known opening names so that a misspelled coefficient key is caught
// before time stepping.
func (f FluxSpec) Validate(dom *geometry.Domain) error {
	if f.ConvectiveCoefficient < 0 {
		return &ConfigurationError{"ConvectiveCoefficient",
			fmt.Sprintf("must be non-negative, got %g", f.ConvectiveCoefficient)}
	}
	if f.DefaultVentCoefficient < 0 {
		return &ConfigurationError{"DefaultVentCoefficient",
			fmt.Sprintf("must be non-negative, got %g", f.DefaultVentCoefficient)}
	}
	if f.DiurnalAmplitude < 0 {
		return &ConfigurationError{"DiurnalAmplitude",
			fmt.Sprintf("must be non-negative, got %g", f.DiurnalAmplitude)}
	}
	known := make(map[string]bool)
	for _, name := range dom.Openings() {
		known[name] = true
	}
	for name, h := range f.VentilationCoefficients {
		if !known[name] {
			return &ConfigurationError{"VentilationCoefficients",
				fmt.Sprintf("opening %q does not exist on this vessel (has %v)", name, dom.Openings())}
		}
		if h < 0 {
			return &ConfigurationError{"VentilationCoefficients",
				fmt.Sprintf("coefficient for %q must be non-negative, got %g", name, h)}
		}
	}
	e := f.Evaporation
	if e.Enabled {
		if e.RelativeHumidity < 0 || e.RelativeHumidity > 1 {
			return &ConfigurationError{"Evaporation.RelativeHumidity",
				fmt.Sprintf("must be in [0, 1], got %g", e.RelativeHumidity)}
		}
		if e.MassTransferCoefficient <= 0 {
			return &ConfigurationError{"Evaporation.MassTransferCoefficient",
				fmt.Sprintf("must be positive, got %g", e.MassTransferCoefficient)}
		}
		if e.AreaFraction <= 0 || e.AreaFraction > 1 {
			return &ConfigurationError{"Evaporation.AreaFraction",
				fmt.Sprintf("must be in (0, 1], got %g", e.AreaFraction)}
		}
		if e.CapFlux <= 0 {
			return &ConfigurationError{"Evaporation.CapFlux",
				fmt.Sprintf("must be positive, got %g", e.CapFlux)}
		}
	}
	return nil
}

// Ambient returns the air temperature at time t [s]. The diurnal cycle
// peaks at mid-afternoon of each simulated day.
func (f FluxSpec) Ambient(t float64) float64 {
	if f.DiurnalAmplitude == 0 {
		return f.AmbientTemperature
	}
	const day = 86400.0
	return f.AmbientTemperature + f.DiurnalAmplitude*math.Sin(2*math.Pi*(t/day-0.25))
}

// CoefficientFor returns the convective coefficient of a boundary face.
func (f FluxSpec) CoefficientFor(bf geometry.BoundaryFace) float64 {
	if bf.Tag == geometry.FacetVentilationOpening {
		if h, ok := f.VentilationCoefficients[bf.Opening]; ok {
			return h
		}
		return f.DefaultVentCoefficient
	}
	return f.ConvectiveCoefficient
}

// EvaporativeFlux returns the cooling flux [W/m2] drawn from a surface at
// tSurf [degC] into ambient air at tAmb, at time t [s]. Condensation is not
// modeled: the flux is clamped to [0, CapFlux].
func (f FluxSpec) EvaporativeFlux(tSurf, tAmb, t float64) float64 {
	e := f.Evaporation
	if !e.Enabled {
		return 0
	}
	tk := tSurf + kelvinOffset
	pSurf := e.waterActivity(t) * SaturationPressure(tSurf)
	pAir := e.RelativeHumidity * SaturationPressure(tAmb)
	q := e.MassTransferCoefficient * waterMolarMass / (gasConstant * tk) *
		(pSurf - pAir) * latentHeatWater
	if q < 0 {
		return 0
	}
	if q > e.CapFlux {
		return e.CapFlux
	}
	return q
}
