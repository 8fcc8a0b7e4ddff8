package thermal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cacaolab/biotherm/geometry"
)

func TestSaturationPressure(t *testing.T) {
	// Reference values from steam tables.
	assert.InEpsilon(t, 611, SaturationPressure(0), 0.02)
	assert.InEpsilon(t, 3169, SaturationPressure(25), 0.02)
	assert.InEpsilon(t, 12350, SaturationPressure(50), 0.03)
}

func TestAmbientDiurnal(t *testing.T) {
	f := DefaultFluxSpec()
	assert.Equal(t, 21.0, f.Ambient(0))
	assert.Equal(t, 21.0, f.Ambient(12345))

	f.DiurnalAmplitude = 5
	var min, max float64 = 100, -100
	for s := 0.0; s < 86400; s += 600 {
		a := f.Ambient(s)
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	assert.InDelta(t, 16, min, 0.1)
	assert.InDelta(t, 26, max, 0.1)
}

func TestCoefficientFor(t *testing.T) {
	f := DefaultFluxSpec()
	f.VentilationCoefficients = map[string]float64{"bottom": 120}

	ext := geometry.BoundaryFace{Tag: geometry.FacetExteriorConvective}
	bottom := geometry.BoundaryFace{Tag: geometry.FacetVentilationOpening, Opening: "bottom"}
	lateral := geometry.BoundaryFace{Tag: geometry.FacetVentilationOpening, Opening: "lateral"}

	assert.Equal(t, 10.0, f.CoefficientFor(ext))
	assert.Equal(t, 120.0, f.CoefficientFor(bottom))
	assert.Equal(t, 80.0, f.CoefficientFor(lateral))
}

func TestEvaporativeFlux(t *testing.T) {
	f := DefaultFluxSpec()
	f.Evaporation.Enabled = true

	// A hot wet surface in 21 degC / 65% air sheds on the order of 100 W/m2.
	q := f.EvaporativeFlux(45, 21, 0)
	assert.Greater(t, q, 50.0)
	assert.Less(t, q, f.Evaporation.CapFlux)

	// A cold surface cannot condense heat in: the flux floors at zero.
	assert.Equal(t, 0.0, f.EvaporativeFlux(5, 30, 0))

	// The cap binds for an aggressive film coefficient.
	f.Evaporation.MassTransferCoefficient = 0.1
	assert.Equal(t, f.Evaporation.CapFlux, f.EvaporativeFlux(45, 21, 0))

	// Disabled model contributes nothing.
	f.Evaporation.Enabled = false
	assert.Equal(t, 0.0, f.EvaporativeFlux(45, 21, 0))
}

func TestEvaporationDrying(t *testing.T) {
	f := DefaultFluxSpec()
	f.Evaporation.Enabled = true

	// The surface dries over the fermentation, so the same temperatures
	// yield a weaker flux a week in.
	early := f.EvaporativeFlux(45, 21, 0)
	late := f.EvaporativeFlux(45, 21, f.Evaporation.DryingWindow)
	assert.Less(t, late, early)
	assert.Greater(t, late, 0.0)
}

func TestFluxValidate(t *testing.T) {
	dom, err := geometry.NewBoxDomain(geometry.DefaultBoxSpec())
	require.NoError(t, err)

	f := DefaultFluxSpec()
	require.NoError(t, f.Validate(dom))

	f.VentilationCoefficients = map[string]float64{"roof": 50}
	err = f.Validate(dom)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	f = DefaultFluxSpec()
	f.ConvectiveCoefficient = -1
	assert.Error(t, f.Validate(dom))

	f = DefaultFluxSpec()
	f.Evaporation.Enabled = true
	f.Evaporation.RelativeHumidity = 1.4
	assert.Error(t, f.Validate(dom))
}
