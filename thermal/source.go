package thermal

import "fmt"

// ProfilePoint is one knot of the fermentation heat release curve.
type ProfilePoint struct {
	Hours float64 // time since pitching [h]
	Rate  float64 // volumetric heat release [W/m3]
}

// FermentationProfile is the volumetric heat release of the fermenting mass
// as a piecewise linear function of time. It depends on time only; the
// temperature feedback of the culture is handled separately by the
// MicrobialMonitor, which scales the profile.
type FermentationProfile struct {
	points []ProfilePoint
}

// NewFermentationProfile builds a profile from knots. Knots must be sorted
// by strictly increasing time with non-negative rates, and at least two are
// required.
func NewFermentationProfile(points []ProfilePoint) (*FermentationProfile, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("fermentation profile needs at least 2 points, got %d", len(points))
	}
	for i, p := range points {
		if p.Rate < 0 {
			return nil, fmt.Errorf("fermentation profile rate at %gh is negative: %g", p.Hours, p.Rate)
		}
		if i > 0 && p.Hours <= points[i-1].Hours {
			return nil, fmt.Errorf("fermentation profile times must be strictly increasing, got %gh after %gh",
				p.Hours, points[i-1].Hours)
		}
	}
	pp := make([]ProfilePoint, len(points))
	copy(pp, points)
	return &FermentationProfile{points: pp}, nil
}

// DefaultFermentationProfile returns the reference 7-day cacao curve: lag
// phase, yeast ramp, peak acetic oxidation around day 3.5, then decline.
func DefaultFermentationProfile() *FermentationProfile {
	p, err := NewFermentationProfile([]ProfilePoint{
		{0, 90},
		{12, 130},
		{36, 220},
		{84, 320},
		{168, 180},
	})
	if err != nil {
		panic(err)
	}
	return p
}

// Duration returns the time span the profile covers, in seconds.
func (p *FermentationProfile) Duration() float64 {
	return p.points[len(p.points)-1].Hours * 3600
}

// Rate interpolates the heat release at time t [s]. Querying outside the
// profile window is an error; extrapolating fermentation heat silently would
// hide a mis-sized run.
func (p *FermentationProfile) Rate(t float64) (float64, error) {
	h := t / 3600
	first, last := p.points[0], p.points[len(p.points)-1]
	if h < first.Hours || h > last.Hours {
		return 0, fmt.Errorf("time %gh outside fermentation profile window [%gh, %gh]",
			h, first.Hours, last.Hours)
	}
	for i := 1; i < len(p.points); i++ {
		if h <= p.points[i].Hours {
			a, b := p.points[i-1], p.points[i]
			frac := (h - a.Hours) / (b.Hours - a.Hours)
			return a.Rate + frac*(b.Rate-a.Rate), nil
		}
	}
	return last.Rate, nil
}
