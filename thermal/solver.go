package thermal

import (
	"fmt"
	"math"
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/cacaolab/biotherm/geometry"
	"github.com/cacaolab/biotherm/materials"
)

// Clock fixes the time discretization of a run.
type Clock struct {
	Dt  float64 // step size [s]
	End float64 // final time [s]
}

// Config carries the numerical knobs of a run. Zero values resolve to
// defaults in NewSolver.
type Config struct {
	InitialTemperature float64

	// InitialField, when non-nil, supplies the full starting temperature
	// field instead of a uniform InitialTemperature, so a run can resume
	// from a recorded step or from the last field of an aborted run.
	InitialField []float64

	CGTolerance     float64
	CGMaxIterations int

	// ImplicitEvaporation iterates the evaporative flux to consistency with
	// the end-of-step surface temperature instead of lagging it one step.
	ImplicitEvaporation bool
	PicardTolerance     float64
	PicardMaxIterations int

	Workers int

	// Stop aborts the run between steps when closed.
	Stop <-chan struct{}

	// OnStep, when set, is called after every accepted step.
	OnStep func(Step)
}

// Step is one accepted time level of a run.
type Step struct {
	Time  float64
	Field []float64
	Stats Snapshot
}

// boundFace is a boundary face with its run-constant coefficients resolved.
type boundFace struct {
	cell  int
	hA    float64 // convective conductance h*A [W/K]
	evapA float64 // effective evaporating area [m2], 0 when not an opening
}

// Solver advances the nonlinear heat balance of a loaded vessel. Build one
// with NewSolver; a Solver is good for a single Run.
type Solver struct {
	dom   *geometry.Domain
	mats  materials.Set
	flux  FluxSpec
	src   *FermentationProfile
	clock Clock
	cfg   Config

	sys      *System
	monitor  *MicrobialMonitor
	faces    []boundFace
	cacao    []int // cacao cell indices
	steps    int
	warnings []StabilityWarning
}

// NewSolver validates the full setup and assembles the implicit operator.
// Any inconsistency is reported as a ConfigurationError before time
// stepping begins.
func NewSolver(dom *geometry.Domain, mats materials.Set, flux FluxSpec,
	src *FermentationProfile, clock Clock, cfg Config) (*Solver, error) {

	if dom == nil {
		return nil, &ConfigurationError{"domain", "no domain supplied"}
	}
	if clock.Dt <= 0 {
		return nil, &ConfigurationError{"clock.Dt", fmt.Sprintf("must be positive, got %g", clock.Dt)}
	}
	if clock.End < clock.Dt {
		return nil, &ConfigurationError{"clock.End",
			fmt.Sprintf("must cover at least one step of %gs, got %gs", clock.Dt, clock.End)}
	}
	steps := int(math.Round(clock.End / clock.Dt))
	if math.Abs(float64(steps)*clock.Dt-clock.End) > 1e-6*clock.Dt {
		return nil, &ConfigurationError{"clock",
			fmt.Sprintf("end time %gs is not a whole number of %gs steps", clock.End, clock.Dt)}
	}
	for _, tag := range dom.RegionTags() {
		if _, err := mats.Lookup(tag); err != nil {
			return nil, &ConfigurationError{"materials", err.Error()}
		}
	}
	if err := mats.Validate(); err != nil {
		return nil, &ConfigurationError{"materials", err.Error()}
	}
	if err := flux.Validate(dom); err != nil {
		return nil, err
	}
	if src != nil && clock.End > src.Duration() {
		return nil, &ConfigurationError{"clock.End",
			fmt.Sprintf("run of %gs exceeds the %gs fermentation profile window", clock.End, src.Duration())}
	}
	if cfg.InitialField != nil {
		if len(cfg.InitialField) != dom.NumCells() {
			return nil, &ConfigurationError{"InitialField",
				fmt.Sprintf("has %d values for a %d cell domain", len(cfg.InitialField), dom.NumCells())}
		}
	} else if cfg.InitialTemperature < -50 || cfg.InitialTemperature > 100 {
		return nil, &ConfigurationError{"InitialTemperature",
			fmt.Sprintf("%g degC is outside the plausible range [-50, 100]", cfg.InitialTemperature)}
	}

	if cfg.CGTolerance <= 0 {
		cfg.CGTolerance = 1e-10
	}
	if cfg.CGMaxIterations <= 0 {
		cfg.CGMaxIterations = 2*dom.NumCells() + 1000
	}
	if cfg.PicardTolerance <= 0 {
		cfg.PicardTolerance = 1e-6
	}
	if cfg.PicardMaxIterations <= 0 {
		cfg.PicardMaxIterations = 25
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	sys, err := NewSystem(dom, mats, flux, clock.Dt, cfg.Workers)
	if err != nil {
		return nil, &ConfigurationError{"system", err.Error()}
	}

	s := &Solver{
		dom:     dom,
		mats:    mats,
		flux:    flux,
		src:     src,
		clock:   clock,
		cfg:     cfg,
		sys:     sys,
		monitor: NewMicrobialMonitor(),
		steps:   steps,
	}
	for _, bf := range dom.BoundaryFaces() {
		f := boundFace{cell: bf.Cell, hA: flux.CoefficientFor(bf) * bf.Area}
		if bf.Tag == geometry.FacetVentilationOpening && flux.Evaporation.Enabled {
			f.evapA = bf.Area * flux.Evaporation.AreaFraction
		}
		s.faces = append(s.faces, f)
	}
	for c := 0; c < dom.NumCells(); c++ {
		if dom.Region(c) == geometry.RegionCacao {
			s.cacao = append(s.cacao, c)
		}
	}
	s.checkStability()
	return s, nil
}

// checkStability compares the step against the explicit diffusive limit of
// the finest cell. The backward Euler core is unconditionally stable, but
// the lagged boundary fluxes are not, so an oversized step is worth a
// warning.
func (s *Solver) checkStability() {
	var alphaMax float64
	for _, tag := range s.dom.RegionTags() {
		p, _ := s.mats.Lookup(tag)
		if a := p.Diffusivity(); a > alphaMax {
			alphaMax = a
		}
	}
	dx := s.dom.MinSpacing()
	limit := dx * dx / (6 * alphaMax)
	if s.clock.Dt > limit {
		w := StabilityWarning{Dt: s.clock.Dt, Limit: limit}
		s.warnings = append(s.warnings, w)
		log.Warn(w.String())
	}
}

// Warnings returns the non-fatal warnings raised so far.
func (s *Solver) Warnings() []StabilityWarning { return s.warnings }

// System exposes the assembled operator, mainly for energy accounting.
func (s *Solver) System() *System { return s.sys }

// Run advances the field from the initial condition to clock.End and
// returns every time level, the initial one included. A ConvergenceError
// aborts the run and carries the last iterate.
func (s *Solver) Run() ([]Step, error) {
	n := s.sys.NumCells()
	T := make([]float64, n)
	if s.cfg.InitialField != nil {
		copy(T, s.cfg.InitialField)
	} else {
		for i := range T {
			T[i] = s.cfg.InitialTemperature
		}
	}

	log.WithFields(log.Fields{
		"vessel": s.dom.Kind.String(),
		"cells":  n,
		"dt":     s.clock.Dt,
		"steps":  s.steps,
	}).Info("starting thermal run")

	history := make([]Step, 0, s.steps+1)
	var moisture float64
	history = append(history, s.record(0, T, &moisture, true))
	if s.cfg.OnStep != nil {
		s.cfg.OnStep(history[0])
	}

	rhs := make([]float64, n)
	Tnew := make([]float64, n)
	for step := 1; step <= s.steps; step++ {
		select {
		case <-s.cfg.Stop:
			log.WithField("step", step).Info("run stopped")
			return history, nil
		default:
		}
		t := float64(step) * s.clock.Dt

		copy(Tnew, T)
		var err error
		if s.cfg.ImplicitEvaporation {
			err = s.stepPicard(step, t, T, Tnew, rhs)
		} else {
			s.assembleRHS(rhs, T, T, t)
			err = s.solve(step, t, Tnew, rhs)
		}
		if err != nil {
			return history, err
		}
		copy(T, Tnew)

		_, _, _, cacaoMax := fieldStats(s.dom, T)
		s.monitor.Observe(t, cacaoMax)

		rec := s.record(t, T, &moisture, false)
		history = append(history, rec)
		if s.cfg.OnStep != nil {
			s.cfg.OnStep(rec)
		}
		if step%600 == 0 {
			log.WithFields(log.Fields{
				"t_h":  t / 3600,
				"mean": rec.Stats.Mean,
				"max":  rec.Stats.Max,
			}).Debug("progress")
		}
	}
	log.WithField("steps", s.steps).Info("thermal run complete")
	return history, nil
}

// assembleRHS builds the right hand side at the new time t. Tn is the
// previous accepted field; Tev supplies the surface temperatures the
// evaporative flux is evaluated at (Tn for the lagged scheme, the current
// Picard iterate otherwise).
func (s *Solver) assembleRHS(rhs, Tn, Tev []float64, t float64) {
	tAmb := s.flux.Ambient(t)
	for i := range rhs {
		rhs[i] = s.sys.HeatCapacity(i) / s.clock.Dt * Tn[i]
	}
	if s.src != nil {
		// Profile window is validated against the clock in NewSolver.
		rate, _ := s.src.Rate(t)
		q := rate * s.monitor.ActivityFactor(t)
		for _, c := range s.cacao {
			rhs[c] += q * s.dom.CellVolume(c)
		}
	}
	for _, f := range s.faces {
		rhs[f.cell] += f.hA * tAmb
		if f.evapA > 0 {
			rhs[f.cell] -= s.flux.EvaporativeFlux(Tev[f.cell], tAmb, t) * f.evapA
		}
	}
}

func (s *Solver) solve(step int, t float64, T, rhs []float64) error {
	iters, res, err := s.sys.SolveCG(T, rhs, s.cfg.CGTolerance, s.cfg.CGMaxIterations)
	if err != nil {
		return &ConvergenceError{Time: t, Step: step, Iterations: iters, Residual: res, LastField: append([]float64(nil), T...)}
	}
	return nil
}

// stepPicard iterates the evaporative flux to self-consistency within one
// backward Euler step.
func (s *Solver) stepPicard(step int, t float64, Tn, T, rhs []float64) error {
	prev := make([]float64, len(T))
	for it := 1; it <= s.cfg.PicardMaxIterations; it++ {
		copy(prev, T)
		s.assembleRHS(rhs, Tn, prev, t)
		if err := s.solve(step, t, T, rhs); err != nil {
			return err
		}
		var diff float64
		for i := range T {
			if d := math.Abs(T[i] - prev[i]); d > diff {
				diff = d
			}
		}
		if diff < s.cfg.PicardTolerance {
			return nil
		}
	}
	return &ConvergenceError{
		Time: t, Step: step, Iterations: s.cfg.PicardMaxIterations,
		Residual:  s.picardResidual(T, prev),
		LastField: append([]float64(nil), T...),
	}
}

func (s *Solver) picardResidual(T, prev []float64) (diff float64) {
	for i := range T {
		if d := math.Abs(T[i] - prev[i]); d > diff {
			diff = d
		}
	}
	return
}

// record builds the snapshot of an accepted field and advances the moisture
// accumulator.
func (s *Solver) record(t float64, T []float64, moisture *float64, initial bool) Step {
	min, max, mean, cacaoMax := fieldStats(s.dom, T)
	tAmb := s.flux.Ambient(t)

	var qGen float64
	if s.src != nil {
		rate, err := s.src.Rate(t)
		if err == nil {
			qGen = rate * s.monitor.ActivityFactor(t) * s.dom.RegionVolume(geometry.RegionCacao)
		}
	}
	var qEvap float64
	for _, f := range s.faces {
		if f.evapA > 0 {
			qEvap += s.flux.EvaporativeFlux(T[f.cell], tAmb, t) * f.evapA
		}
	}
	if !initial {
		*moisture += qEvap * s.clock.Dt / latentHeatWater
	}

	field := append([]float64(nil), T...)
	return Step{
		Time:  t,
		Field: field,
		Stats: Snapshot{
			Time:         t,
			Min:          min,
			Max:          max,
			Mean:         mean,
			CacaoMax:     cacaoMax,
			QGeneration:  qGen,
			QEvaporation: qEvap,
			Activity:     s.monitor.ActivityFactor(t),
			MoistureLoss: *moisture,
		},
	}
}
