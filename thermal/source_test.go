package thermal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFermentationProfileRate(t *testing.T) {
	p := DefaultFermentationProfile()

	r, err := p.Rate(0)
	require.NoError(t, err)
	assert.Equal(t, 90.0, r)

	r, err = p.Rate(12 * 3600)
	require.NoError(t, err)
	assert.Equal(t, 130.0, r)

	// Midway up the yeast ramp.
	r, err = p.Rate(24 * 3600)
	require.NoError(t, err)
	assert.InDelta(t, 175.0, r, 1e-9)

	r, err = p.Rate(168 * 3600)
	require.NoError(t, err)
	assert.Equal(t, 180.0, r)

	assert.Equal(t, 168*3600.0, p.Duration())
}

func TestFermentationProfileOutOfRange(t *testing.T) {
	p := DefaultFermentationProfile()
	_, err := p.Rate(-1)
	assert.Error(t, err)
	_, err = p.Rate(169 * 3600)
	assert.Error(t, err)
}

func TestFermentationProfileValidation(t *testing.T) {
	_, err := NewFermentationProfile([]ProfilePoint{{0, 90}})
	assert.Error(t, err)
	_, err = NewFermentationProfile([]ProfilePoint{{0, 90}, {0, 100}})
	assert.Error(t, err)
	_, err = NewFermentationProfile([]ProfilePoint{{0, 90}, {12, -5}})
	assert.Error(t, err)
}

func TestMicrobialStress(t *testing.T) {
	m := NewMicrobialMonitor()
	assert.Equal(t, 1.0, m.ActivityFactor(0))

	// Heating into the stress band cuts activity; cooling back does not
	// restore it.
	m.Observe(3600, 51.5)
	f := m.ActivityFactor(3600)
	assert.InDelta(t, 1-0.6*0.5, f, 1e-9)
	m.Observe(7200, 40)
	assert.Equal(t, f, m.ActivityFactor(7200))
	assert.False(t, m.Dead())
}

func TestMicrobialDeath(t *testing.T) {
	m := NewMicrobialMonitor()
	m.Observe(10*3600, 56)
	require.True(t, m.Dead())

	atDeath := m.ActivityFactor(10 * 3600)
	assert.InDelta(t, 0.4, atDeath, 1e-9)

	// Residual heat release halves roughly every 4.2 h (tau = 6 h).
	later := m.ActivityFactor(16 * 3600)
	assert.InDelta(t, atDeath/math.E, later, 1e-9)

	// Death is permanent even if the mass cools.
	m.Observe(20*3600, 30)
	assert.True(t, m.Dead())
}
