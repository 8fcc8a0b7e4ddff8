package thermal

import (
	"math"

	"github.com/cacaolab/biotherm/geometry"
)

// Snapshot summarizes the field at one time step. Temperatures are degC,
// powers are W, MoistureLoss is cumulative kg evaporated since t=0.
type Snapshot struct {
	Time     float64 `json:"time_s"`
	Min      float64 `json:"min_c"`
	Max      float64 `json:"max_c"`
	Mean     float64 `json:"mean_c"`
	CacaoMax float64 `json:"cacao_max_c"`

	QGeneration  float64 `json:"q_generation_w"`
	QEvaporation float64 `json:"q_evaporation_w"`
	Activity     float64 `json:"microbial_activity"`
	MoistureLoss float64 `json:"moisture_loss_kg"`
}

// fieldStats reduces a field to min/max/mean and the cacao-region peak. The
// grid is uniform, so the volume weighted mean is the arithmetic mean.
func fieldStats(dom *geometry.Domain, T []float64) (min, max, mean, cacaoMax float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	cacaoMax = math.Inf(-1)
	var sum float64
	for c, v := range T {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		if dom.Region(c) == geometry.RegionCacao && v > cacaoMax {
			cacaoMax = v
		}
	}
	mean = sum / float64(len(T))
	if math.IsInf(cacaoMax, -1) {
		cacaoMax = max
	}
	return
}
