package chaos

import (
	"math"

	"github.com/montanaflynn/stats"

	"glucolens/domain/core"
)

// Lyapunov estimates the largest Lyapunov exponent from the spread of
// pairwise distances in the reconstructed phase space. Positive values
// indicate divergence of nearby trajectories. The estimate is clipped to
// [-2, 2]. The second return is false when the estimator degraded to its
// default: too few samples, or a degenerate attractor where at least 5% of
// point pairs coincide.
func (e *Estimator) Lyapunov(values []float64) (float64, bool) {
	if len(values) < e.cfg.MinSamples {
		return DefaultLyapunov, false
	}
	ds := downsample(values, e.cfg.MaxEmbedPoints)
	pts := embed(ds, e.cfg.EmbedDim, e.cfg.EmbedLag)
	if len(pts) < 2 {
		return DefaultLyapunov, false
	}
	d := stats.Float64Data(pairDistances(pts))
	p95, err95 := stats.Percentile(d, 95)
	p5, err5 := stats.Percentile(d, 5)
	if err95 != nil || err5 != nil || p5 <= 0 || p95 <= 0 {
		return DefaultLyapunov, false
	}
	lam := math.Log(p95/p5) / float64(len(values))
	return core.Clamp(lam, -2, 2), true
}
