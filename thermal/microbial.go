package thermal

import "math"

// Thermal thresholds of the fermenting culture.
const (
	// StressTemperature is where microbial activity starts to decline.
	StressTemperature = 48.0

	// DeathTemperature kills the culture. Death is permanent; heat release
	// then decays as residual enzymatic activity winds down.
	DeathTemperature = 55.0

	// deathDecayTau is the e-folding time of post-death heat release.
	deathDecayTau = 6 * 3600.0

	// maxStressPenalty is the activity reduction at the death threshold.
	maxStressPenalty = 0.6
)

// MicrobialMonitor tracks the viability of the fermenting culture from the
// peak cacao temperature seen so far. Stress ratchets: cooling back below
// the stress band does not restore lost activity.
type MicrobialMonitor struct {
	stress    float64 // in [0, 1], monotone non-decreasing
	dead      bool
	deathTime float64
}

func NewMicrobialMonitor() *MicrobialMonitor {
	return &MicrobialMonitor{}
}

// Observe records the peak cacao temperature at time t [s].
func (m *MicrobialMonitor) Observe(t, cacaoMax float64) {
	if m.dead {
		return
	}
	if cacaoMax >= DeathTemperature {
		m.dead = true
		m.deathTime = t
		m.stress = 1
		return
	}
	if cacaoMax > StressTemperature {
		s := (cacaoMax - StressTemperature) / (DeathTemperature - StressTemperature)
		if s > m.stress {
			m.stress = s
		}
	}
}

// ActivityFactor returns the multiplier applied to the fermentation heat
// release at time t [s]: 1 for a healthy culture, reduced under heat stress,
// and exponentially decaying after thermal death.
func (m *MicrobialMonitor) ActivityFactor(t float64) float64 {
	if m.dead {
		base := 1 - maxStressPenalty
		return base * math.Exp(-(t-m.deathTime)/deathDecayTau)
	}
	return 1 - maxStressPenalty*m.stress
}

// Dead reports whether the culture has crossed the death threshold.
func (m *MicrobialMonitor) Dead() bool { return m.dead }
