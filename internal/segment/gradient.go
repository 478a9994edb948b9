package segment

import (
	"math"

	"github.com/montanaflynn/stats"

	"glucolens/domain/segmentation"
)

// GradientDetector flags windows where the discrete second difference of a
// track spikes beyond 1.5 population standard deviations of the curvature,
// subject to the track's absolute effect floor.
type GradientDetector struct{}

func (GradientDetector) Name() string { return "gradient" }

func (GradientDetector) Detect(recs []segmentation.WindowRecord) []float64 {
	if len(recs) < minWindows {
		return nil
	}
	tracks := []struct {
		values func(segmentation.WindowRecord) float64
		floor  float64
	}{
		{func(r segmentation.WindowRecord) float64 { return r.Mean }, floorMean},
		{func(r segmentation.WindowRecord) float64 { return r.TimeInRange }, floorTIR},
		{func(r segmentation.WindowRecord) float64 { return r.Brittleness }, floorBrit},
	}

	var out []float64
	for _, track := range tracks {
		t := make([]float64, len(recs))
		for i, r := range recs {
			t[i] = track.values(r)
		}
		g2 := make([]float64, len(t)-2)
		for i := range g2 {
			g2[i] = t[i+2] - 2*t[i+1] + t[i]
		}
		if len(g2) < 2 {
			continue
		}
		sd, _ := stats.StdDevP(stats.Float64Data(g2))
		threshold := math.Max(1.5*sd, track.floor)

		var cands []candidate
		for i, g := range g2 {
			if math.Abs(g) >= threshold {
				cands = append(cands, candidate{index: i, strength: math.Abs(g)})
			}
		}
		for _, i := range collapseRuns(cands) {
			out = append(out, recs[i+1].CenterHour)
		}
	}
	return sortedUnique(out)
}
