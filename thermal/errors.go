package thermal

import "fmt"

// ConfigurationError reports an invalid simulation setup. It is returned
// before any time stepping happens so a bad run fails immediately.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Reason)
}

// ConvergenceError reports that the implicit solve failed to converge at a
// time step. LastField carries the most recent iterate so a caller can dump
// the state for inspection.
type ConvergenceError struct {
	Time       float64
	Step       int
	Iterations int
	Residual   float64
	LastField  []float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("solver failed to converge at t=%.1fs (step %d) after %d iterations, residual %.3e",
		e.Time, e.Step, e.Iterations, e.Residual)
}

// StabilityWarning flags a time step larger than the diffusive limit of the
// finest cell. The implicit scheme remains stable, but the explicit boundary
// flux coupling can lag and accuracy degrades. Warnings are collected, not
// returned as errors.
type StabilityWarning struct {
	Dt    float64
	Limit float64
}

func (w StabilityWarning) String() string {
	return fmt.Sprintf("time step %.1fs exceeds diffusive limit %.1fs; boundary coupling may lag", w.Dt, w.Limit)
}
