package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDOKAccumulateAndCSR(t *testing.T) {
	A := NewDOK(3, 3)
	A.Set(0, 0, 2)
	A.Add(0, 0, 1)
	A.Add(1, 2, -4)
	A.Add(2, 1, -4)
	A.Add(1, 1, 5)
	A.Add(2, 2, 5)

	assert.Equal(t, 3.0, A.At(0, 0))
	r, c := A.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)

	B := A.ToCSR()
	assert.Equal(t, 5, B.NNZ())
	assert.Equal(t, -4.0, B.At(1, 2))

	var sum float64
	B.DoNonZero(func(i, j int, v float64) { sum += v })
	assert.Equal(t, 5.0, sum)
}

func TestDOKReadOnly(t *testing.T) {
	A := NewDOK(2, 2)
	A.Set(0, 0, 1)
	A = A.SetReadOnly("A")
	assert.Panics(t, func() { A.Set(0, 1, 2) })
	assert.Panics(t, func() { A.Add(0, 0, 1) })
}
