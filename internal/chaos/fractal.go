package chaos

import (
	"math"

	"github.com/montanaflynn/stats"

	"glucolens/domain/core"
)

// FractalDim estimates the fractal dimension of the min-max normalized
// trace by curve-length scaling: the total stride-k variation L(k) is
// measured at log-spaced strides up to min(16, n/10), and the dimension is
// 1 minus the log-log slope, clipped to [1, 2]. Smooth traces approach 1,
// space-filling jitter approaches 2.
func (e *Estimator) FractalDim(values []float64) (float64, bool) {
	n := len(values)
	if n < e.cfg.MinSamples {
		return DefaultFractalDim, false
	}
	lo, _ := stats.Min(stats.Float64Data(values))
	hi, _ := stats.Max(stats.Float64Data(values))
	if hi <= lo {
		return DefaultFractalDim, false
	}
	y := make([]float64, n)
	for i, v := range values {
		y[i] = (v - lo) / (hi - lo)
	}

	maxScale := n / 10
	if maxScale > 16 {
		maxScale = 16
	}
	if maxScale < 2 {
		maxScale = 2
	}
	var lx, ly []float64
	for _, k := range logSpacedInts(1, maxScale, e.cfg.FractalScales) {
		if k >= n {
			continue
		}
		length := 0.0
		for i := 0; i+k < n; i += k {
			length += math.Abs(y[i+k] - y[i])
		}
		if length > 0 {
			lx = append(lx, math.Log(float64(k)))
			ly = append(ly, math.Log(length))
		}
	}
	if len(lx) < 2 {
		return DefaultFractalDim, false
	}
	b, ok := slope(lx, ly)
	if !ok {
		return DefaultFractalDim, false
	}
	return core.Clamp(1.0-b, 1, 2), true
}
