package thermal

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/cacaolab/biotherm/geometry"
	"github.com/cacaolab/biotherm/materials"
	"github.com/cacaolab/biotherm/utils"
)

// System is the assembled backward Euler operator
//
//	A = C/dt + K + H
//
// where C is the lumped heat capacity, K the finite volume conduction
// operator with harmonic face conductances, and H the implicit Robin terms
// of the convective boundaries. All coefficients are constant over a run, so
// A is assembled once and factor-free CG solves each step.
type System struct {
	n   int
	cap []float64 // rho*cp*V per cell [J/K]

	// A in CSR form, flattened for the parallel mat-vec hot loop.
	rowPtr []int
	colIdx []int
	vals   []float64
	diag   []float64 // Jacobi preconditioner

	workers int
	bounds  [][2]int
}

// NewSystem assembles the operator for a domain, material set and boundary
// spec at time step dt.
func NewSystem(dom *geometry.Domain, mats materials.Set, flux FluxSpec, dt float64, workers int) (*System, error) {
	n := dom.NumCells()
	s := &System{
		n:       n,
		cap:     make([]float64, n),
		diag:    make([]float64, n),
		workers: workers,
	}
	if s.workers < 1 {
		s.workers = 1
	}
	s.bounds = utils.Split1D(n, s.workers)

	k := make([]float64, n)
	for c := 0; c < n; c++ {
		p, err := mats.Lookup(dom.Region(c))
		if err != nil {
			return nil, err
		}
		k[c] = p.K
		s.cap[c] = p.Rho * p.Cp * dom.CellVolume(c)
	}

	A := utils.NewDOK(n, n)
	for c := 0; c < n; c++ {
		A.Add(c, c, s.cap[c]/dt)
	}
	for _, f := range dom.Faces() {
		// Harmonic mean keeps the flux continuous across the wall/cacao
		// interface.
		g := f.Area * 2 * k[f.A] * k[f.B] / (f.Dist * (k[f.A] + k[f.B]))
		A.Add(f.A, f.A, g)
		A.Add(f.B, f.B, g)
		A.Add(f.A, f.B, -g)
		A.Add(f.B, f.A, -g)
	}
	for _, bf := range dom.BoundaryFaces() {
		h := flux.CoefficientFor(bf)
		if h > 0 {
			A.Add(bf.Cell, bf.Cell, h*bf.Area)
		}
	}
	s.flatten(A.ToCSR())

	for c := 0; c < n; c++ {
		if s.diag[c] <= 0 {
			return nil, fmt.Errorf("assembled operator has non-positive diagonal %g at cell %d", s.diag[c], c)
		}
	}
	return s, nil
}

// flatten copies the assembled CSR into flat row-indexed slices. The copy
// does not rely on any particular visit order.
func (s *System) flatten(m utils.CSR) {
	s.rowPtr = make([]int, s.n+1)
	m.DoNonZero(func(i, j int, v float64) {
		s.rowPtr[i+1]++
	})
	for i := 0; i < s.n; i++ {
		s.rowPtr[i+1] += s.rowPtr[i]
	}
	nnz := s.rowPtr[s.n]
	s.colIdx = make([]int, nnz)
	s.vals = make([]float64, nnz)
	fill := make([]int, s.n)
	m.DoNonZero(func(i, j int, v float64) {
		p := s.rowPtr[i] + fill[i]
		fill[i]++
		s.colIdx[p] = j
		s.vals[p] = v
		if i == j {
			s.diag[i] = v
		}
	})
}

// NumCells returns the system dimension.
func (s *System) NumCells() int { return s.n }

// HeatCapacity returns the lumped capacity of cell c [J/K].
func (s *System) HeatCapacity(c int) float64 { return s.cap[c] }

// Energy returns the total thermal energy of a field relative to 0 degC.
func (s *System) Energy(T []float64) (e float64) {
	for c, cap := range s.cap {
		e += cap * T[c]
	}
	return
}

// MulVec computes dst = A*x, partitioned over rows across the worker pool.
func (s *System) MulVec(dst, x []float64) {
	if len(s.bounds) == 1 {
		s.mulRange(dst, x, 0, s.n)
		return
	}
	var wg sync.WaitGroup
	for _, b := range s.bounds {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			s.mulRange(dst, x, lo, hi)
		}(b[0], b[1])
	}
	wg.Wait()
}

func (s *System) mulRange(dst, x []float64, lo, hi int) {
	for i := lo; i < hi; i++ {
		var sum float64
		for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			sum += s.vals[p] * x[s.colIdx[p]]
		}
		dst[i] = sum
	}
}

// SolveCG solves A*x = b by Jacobi preconditioned conjugate gradients,
// starting from the x passed in. It returns the iteration count and the
// final residual norm relative to |b|.
func (s *System) SolveCG(x, b []float64, tol float64, maxIter int) (int, float64, error) {
	n := s.n
	r := make([]float64, n)
	z := make([]float64, n)
	p := make([]float64, n)
	ap := make([]float64, n)

	s.MulVec(r, x)
	floats.AddScaledTo(r, b, -1, r) // r = b - A*x

	bNorm := floats.Norm(b, 2)
	if bNorm == 0 {
		bNorm = 1
	}
	for i := 0; i < n; i++ {
		z[i] = r[i] / s.diag[i]
	}
	copy(p, z)
	rz := floats.Dot(r, z)

	res := floats.Norm(r, 2) / bNorm
	if res < tol {
		return 0, res, nil
	}
	for it := 1; it <= maxIter; it++ {
		s.MulVec(ap, p)
		alpha := rz / floats.Dot(p, ap)
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, ap)

		res = floats.Norm(r, 2) / bNorm
		if res < tol {
			return it, res, nil
		}
		for i := 0; i < n; i++ {
			z[i] = r[i] / s.diag[i]
		}
		rzNew := floats.Dot(r, z)
		beta := rzNew / rz
		rz = rzNew
		for i := 0; i < n; i++ {
			p[i] = z[i] + beta*p[i]
		}
	}
	return maxIter, res, fmt.Errorf("CG stalled at residual %.3e after %d iterations", res, maxIter)
}
