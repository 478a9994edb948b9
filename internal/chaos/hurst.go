package chaos

import (
	"math"

	"github.com/montanaflynn/stats"

	"glucolens/domain/core"
)

// Hurst estimates the Hurst exponent by rescaled-range analysis over
// log-spaced window sizes from 5 to n/4. The R/S curve slope in log-log
// space is clipped to [0, 1]. Values below 0.5 indicate anti-persistent
// (mean-reverting) behavior, above 0.5 persistent trends.
func (e *Estimator) Hurst(values []float64) (float64, bool) {
	n := len(values)
	if n < e.cfg.MinSamples {
		return DefaultHurst, false
	}
	maxScale := n / 4
	if maxScale < 5 {
		maxScale = 5
	}
	var lx, ly []float64
	for _, w := range logSpacedInts(5, maxScale, e.cfg.HurstScales) {
		if w < 5 || w > n {
			continue
		}
		var rss []float64
		for s := 0; s+w <= n; s += w {
			if rs, ok := rescaledRange(values[s : s+w]); ok {
				rss = append(rss, rs)
			}
		}
		if len(rss) > 0 {
			m, _ := stats.Mean(stats.Float64Data(rss))
			lx = append(lx, math.Log(float64(w)))
			ly = append(ly, math.Log(m))
		}
	}
	if len(lx) < 2 {
		return DefaultHurst, false
	}
	b, ok := slope(lx, ly)
	if !ok {
		return DefaultHurst, false
	}
	return core.Clamp(b, 0, 1), true
}

// rescaledRange computes R/S for one sub-window: the range of the
// mean-adjusted cumulative sum over the population standard deviation.
// Constant sub-windows are skipped.
func rescaledRange(seg []float64) (float64, bool) {
	m, _ := stats.Mean(stats.Float64Data(seg))
	sd, _ := stats.StdDevP(stats.Float64Data(seg))
	if sd == 0 {
		return 0, false
	}
	cum := 0.0
	maxC := math.Inf(-1)
	minC := math.Inf(1)
	for _, v := range seg {
		cum += v - m
		if cum > maxC {
			maxC = cum
		}
		if cum < minC {
			minC = cum
		}
	}
	return (maxC - minC) / sd, true
}
