package glucose

import (
	"github.com/montanaflynn/stats"
)

// Metrics summarizes the clinical statistics of a run of glucose values.
type Metrics struct {
	Mean           float64 `json:"mean"`
	StdDev         float64 `json:"std_dev"`
	CV             float64 `json:"cv"`
	TimeInRange    float64 `json:"time_in_range"`
	TimeAboveRange float64 `json:"time_above_range"`
	TimeBelowRange float64 `json:"time_below_range"`
	GMI            float64 `json:"gmi"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
}

// ComputeMetrics derives clinical metrics for values against a target range.
// Standard deviation is the population form; CV is expressed as a percentage
// of the mean. GMI follows the mmol/L regression GMI = 3.31 + 0.431 * mean.
func ComputeMetrics(values []float64, targetLow, targetHigh float64) Metrics {
	if len(values) == 0 {
		return Metrics{}
	}
	data := stats.Float64Data(values)
	mean, _ := stats.Mean(data)
	sd, _ := stats.StdDevP(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)

	cv := 0.0
	if mean > 0 {
		cv = sd / mean * 100
	}

	inRange, above, below := 0, 0, 0
	for _, v := range values {
		switch {
		case v > targetHigh:
			above++
		case v < targetLow:
			below++
		default:
			inRange++
		}
	}

	n := float64(len(values))
	return Metrics{
		Mean:           mean,
		StdDev:         sd,
		CV:             cv,
		TimeInRange:    float64(inRange) / n,
		TimeAboveRange: float64(above) / n,
		TimeBelowRange: float64(below) / n,
		GMI:            3.31 + 0.431*mean,
		Min:            min,
		Max:            max,
	}
}
