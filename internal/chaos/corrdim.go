package chaos

import (
	"math"

	"github.com/montanaflynn/stats"

	"glucolens/domain/core"
)

// CorrDim estimates the correlation dimension via the Grassberger-Procaccia
// correlation sum. Radii are log-spaced between the 1st and 50th percentile
// of pairwise phase-space distances; the log-log slope of C(r) is clipped
// to [0.5, 3].
func (e *Estimator) CorrDim(values []float64) (float64, bool) {
	if len(values) < e.cfg.MinSamples {
		return DefaultCorrDim, false
	}
	ds := downsample(values, e.cfg.MaxEmbedPoints)
	pts := embed(ds, e.cfg.EmbedDim, e.cfg.EmbedLag)
	if len(pts) < 2 {
		return DefaultCorrDim, false
	}
	d := pairDistances(pts)
	data := stats.Float64Data(d)
	r1, err1 := stats.Percentile(data, 1)
	r50, err50 := stats.Percentile(data, 50)
	if err1 != nil || err50 != nil || r1 <= 0 || r50 <= r1 {
		return DefaultCorrDim, false
	}

	var lx, ly []float64
	ratio := r50 / r1
	for i := 0; i < e.cfg.CorrRadii; i++ {
		r := r1 * math.Pow(ratio, float64(i)/float64(e.cfg.CorrRadii-1))
		within := 0
		for _, x := range d {
			if x <= r {
				within++
			}
		}
		c := float64(within) / float64(len(d))
		if c > 0 {
			lx = append(lx, math.Log(r))
			ly = append(ly, math.Log(c))
		}
	}
	if len(lx) < 2 {
		return DefaultCorrDim, false
	}
	b, ok := slope(lx, ly)
	if !ok {
		return DefaultCorrDim, false
	}
	return core.Clamp(b, 0.5, 3), true
}
