package segment

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"glucolens/domain/core"
	"glucolens/domain/segmentation"
	"glucolens/internal/config"
)

// Jumps larger than this between consecutive readings (mmol/L) count as
// abrupt transitions in the window's jump fraction.
const jumpThreshold = 3.0

// Sampler slices a trace into overlapping windows and summarizes each one.
type Sampler struct {
	cfg config.AnalysisConfig
}

// NewSampler creates a window sampler with the given configuration.
func NewSampler(cfg config.AnalysisConfig) *Sampler {
	return &Sampler{cfg: cfg}
}

// Windows slides a window of 8% of the trace (at least 48 samples) in steps
// of a quarter window (at least 12 samples) and records one WindowRecord
// per position, centered on the window's middle sample hour.
func (s *Sampler) Windows(hours, values []float64) []segmentation.WindowRecord {
	n := len(values)
	w := int(0.08 * float64(n))
	if w < 48 {
		w = 48
	}
	step := w / 4
	if step < 12 {
		step = 12
	}

	var recs []segmentation.WindowRecord
	for i := 0; i+w <= n; i += step {
		if w < s.cfg.MinSamples {
			continue
		}
		recs = append(recs, s.record(hours[i:i+w], values[i:i+w]))
	}
	return recs
}

func (s *Sampler) record(hours, values []float64) segmentation.WindowRecord {
	data := stats.Float64Data(values)
	m, _ := stats.Mean(data)
	sd, _ := stats.StdDevP(data)
	mn, _ := stats.Min(data)
	mx, _ := stats.Max(data)

	cv := 0.0
	if m > 0 {
		cv = sd / m * 100
	}

	inRange := 0
	for _, v := range values {
		if v >= s.cfg.TargetLow && v <= s.cfg.TargetHigh {
			inRange++
		}
	}
	tir := float64(inRange) / float64(len(values))

	diffs := make([]float64, 0, len(values)-1)
	jumps := 0
	for i := 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		diffs = append(diffs, d)
		if math.Abs(d) > jumpThreshold {
			jumps++
		}
	}
	jumpFrac := 0.0
	if len(diffs) > 0 {
		jumpFrac = float64(jumps) / float64(len(diffs))
	}

	// spread of the signed rate of change between consecutive readings
	variabilityIndex := 0.0
	if len(diffs) >= 2 {
		variabilityIndex, _ = stats.StdDevP(stats.Float64Data(diffs))
	}

	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, values, nil, false)
	trend := 0.0
	if !math.IsNaN(beta) {
		r2 := stat.RSquared(xs, values, nil, alpha, beta)
		if math.IsNaN(r2) {
			r2 = 0
		}
		trend = math.Min(10, math.Abs(beta)*r2)
	}

	return segmentation.WindowRecord{
		CenterHour:       hours[len(hours)/2],
		Mean:             m,
		CV:               cv,
		TimeInRange:      tir,
		GMI:              3.31 + 0.431*m,
		Min:              mn,
		Max:              mx,
		Brittleness:      brittlenessScore(cv, tir, mn, mx, jumpFrac),
		VariabilityIndex: variabilityIndex,
		Stability:        100 - math.Min(100, cv*1.5),
		Trend:            trend,
		Chaos:            chaosScore(values, cv, jumpFrac, mn, mx),
	}
}

// brittlenessScore is a 0-100 composite of the window's risk markers.
func brittlenessScore(cv, tir, min, max, jumpFrac float64) float64 {
	score := 0.0
	switch {
	case cv > 60:
		score += 40
	case cv > 50:
		score += 30
	case cv > 35:
		score += 20
	case cv > 20:
		score += 10
	}
	switch {
	case tir < 0.3:
		score += 20
	case tir < 0.5:
		score += 15
	case tir < 0.7:
		score += 10
	}
	if min < 3.0 {
		score += 15
	}
	if max > 13.9 {
		score += 15
	}
	if jumpFrac > 0.1 {
		score += 10
	}
	return math.Min(100, score)
}

// chaosScore is a coarse 0-10 disorder rating from variability, jump
// fraction, and a 10-bin histogram entropy of the window.
func chaosScore(values []float64, cv, jumpFrac, min, max float64) float64 {
	score := 0.0
	switch {
	case cv > 50:
		score += 4
	case cv > 35:
		score += 3
	case cv > 20:
		score += 2
	case cv > 10:
		score++
	}
	switch {
	case jumpFrac > 0.2:
		score += 3
	case jumpFrac > 0.1:
		score += 2
	case jumpFrac > 0.05:
		score++
	}

	ent := 0.0
	if max > min {
		const bins = 10
		counts := make([]int, bins)
		for _, v := range values {
			b := int((v - min) / (max - min) * bins)
			if b == bins {
				b = bins - 1
			}
			counts[b]++
		}
		for _, c := range counts {
			if c > 0 {
				p := float64(c) / float64(len(values))
				ent -= p * math.Log(p)
			}
		}
	}
	switch {
	case ent > 1.8:
		score += 3
	case ent > 1.2:
		score += 2
	case ent > 0.6:
		score++
	}

	return core.Clamp(score, 0, 10)
}
