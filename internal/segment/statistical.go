package segment

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"glucolens/domain/segmentation"
)

// Statistical significance gates for the Welch sliding-window test.
const (
	welchZThreshold = 3.0
	welchPThreshold = 0.01
)

// Effect-size floors per track: a statistically significant split is
// discarded when the level shift is clinically negligible. Homogeneous
// traces otherwise produce huge z-scores from vanishing variance.
const (
	floorTIR  = 0.15
	floorMean = 1.0
	floorBrit = 10.0
)

// StatisticalDetector flags windows where a Welch two-sample test between
// the s windows before and after shows a significant level shift on the
// time-in-range or mean track.
type StatisticalDetector struct{}

func (StatisticalDetector) Name() string { return "statistical" }

func (StatisticalDetector) Detect(recs []segmentation.WindowRecord) []float64 {
	if len(recs) < minWindows {
		return nil
	}
	tracks := []struct {
		values func(segmentation.WindowRecord) float64
		floor  float64
	}{
		{func(r segmentation.WindowRecord) float64 { return r.TimeInRange }, floorTIR},
		{func(r segmentation.WindowRecord) float64 { return r.Mean }, floorMean},
	}

	var out []float64
	for _, track := range tracks {
		t := make([]float64, len(recs))
		for i, r := range recs {
			t[i] = track.values(r)
		}
		byIndex := map[int]float64{}
		for _, s := range []int{2, 3} {
			for i := s; i <= len(t)-s; i++ {
				z, delta, ok := welch(t[i-s:i], t[i:i+s])
				if !ok {
					continue
				}
				p := 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))
				if math.Abs(z) > welchZThreshold && p < welchPThreshold && math.Abs(delta) >= track.floor {
					if math.Abs(z) > byIndex[i] {
						byIndex[i] = math.Abs(z)
					}
				}
			}
		}
		cands := make([]candidate, 0, len(byIndex))
		for i, strength := range byIndex {
			cands = append(cands, candidate{index: i, strength: strength})
		}
		sort.Slice(cands, func(a, b int) bool { return cands[a].index < cands[b].index })
		for _, i := range collapseRuns(cands) {
			out = append(out, recs[i].CenterHour)
		}
	}
	return sortedUnique(out)
}

// welch runs a two-sample z-test with unpooled variances and returns the
// z statistic and the raw mean difference (right minus left).
func welch(left, right []float64) (z, delta float64, ok bool) {
	ml, vl := meanVar(left)
	mr, vr := meanVar(right)
	se := math.Sqrt(vl/float64(len(left)) + vr/float64(len(right)))
	if se == 0 {
		return 0, 0, false
	}
	return (mr - ml) / se, mr - ml, true
}

func meanVar(xs []float64) (mean, variance float64) {
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		variance += (x - mean) * (x - mean)
	}
	variance /= float64(len(xs))
	return mean, variance
}
