package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK wraps a dictionary-of-keys sparse matrix used while assembling the
// discrete conduction operator. Stencil contributions for shared faces
// accumulate into the same entry.
type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) SetReadOnly(name string) DOK {
	m.readOnly = true
	m.name = name
	return m
}

// Set overwrites entry (i, j).
func (m DOK) Set(i, j int, v float64) {
	m.checkWritable()
	m.M.Set(i, j, v)
}

// Add accumulates v into entry (i, j).
func (m DOK) Add(i, j int, v float64) {
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+v)
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:    m.M.ToCSR(),
		name: m.name,
	}
}

// CSR is the compressed, read-optimized form of the assembled operator.
type CSR struct {
	M    *sparse.CSR
	name string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }

// DoNonZero visits every stored element.
func (m CSR) DoNonZero(fn func(i, j int, v float64)) {
	m.M.DoNonZero(fn)
}

// NNZ returns the number of stored elements.
func (m CSR) NNZ() int {
	return m.M.NNZ()
}
