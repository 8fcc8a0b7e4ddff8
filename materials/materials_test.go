package materials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cacaolab/biotherm/geometry"
)

func TestResolveVariants(t *testing.T) {
	for _, v := range Variants() {
		s, err := Resolve(v)
		require.NoError(t, err)

		wall, err := s.Lookup(geometry.RegionWall)
		require.NoError(t, err)
		cacao, err := s.Lookup(geometry.RegionCacao)
		require.NoError(t, err)

		assert.Greater(t, wall.K, 0.0)
		assert.Greater(t, wall.Rho, 0.0)
		assert.Greater(t, wall.Cp, 0.0)
		assert.Equal(t, Cacao, cacao)
		assert.Greater(t, wall.Diffusivity(), 0.0)
	}
}

func TestResolveUnknownVariant(t *testing.T) {
	_, err := Resolve("adobe")
	assert.Error(t, err)
}

func TestSteelConductivityContrast(t *testing.T) {
	wood, err := Resolve(Wood)
	require.NoError(t, err)
	steel, err := Resolve(Steel)
	require.NoError(t, err)

	// The material variants span two orders of magnitude in conductivity;
	// the solver's implicit scheme depends on this contrast being real.
	ratio := steel[geometry.RegionWall].K / wood[geometry.RegionWall].K
	assert.Greater(t, ratio, 100.0)
}

func TestLookupMissingTag(t *testing.T) {
	s := Set{geometry.RegionCacao: Cacao}
	_, err := s.Lookup(geometry.RegionWall)
	assert.Error(t, err)
}

func TestValidateRejectsNonPositive(t *testing.T) {
	s := Set{geometry.RegionWall: Properties{Name: "broken", K: 0, Rho: 100, Cp: 100}}
	assert.Error(t, s.Validate())
}
