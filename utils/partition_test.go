package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit1D(t *testing.T) {
	assert.Equal(t, [][2]int{{0, 4}, {4, 7}, {7, 10}}, Split1D(10, 3))
	assert.Equal(t, [][2]int{{0, 10}}, Split1D(10, 1))

	// More workers than work collapses to one range per element.
	bounds := Split1D(3, 8)
	assert.Len(t, bounds, 3)

	// Ranges tile [0, n) exactly.
	n := 0
	for _, b := range Split1D(1441, 7) {
		assert.Equal(t, n, b[0])
		assert.Greater(t, b[1], b[0])
		n = b[1]
	}
	assert.Equal(t, 1441, n)

	assert.Equal(t, [][2]int{{0, 5}}, Split1D(5, 0))
}
