package segment

import (
	"glucolens/domain/segmentation"
)

// PhaseDetector buckets windows into brittleness bands and flags every
// transition between bands. Bands are quartiles of the 0-100 score.
type PhaseDetector struct{}

func (PhaseDetector) Name() string { return "phase" }

func (PhaseDetector) Detect(recs []segmentation.WindowRecord) []float64 {
	if len(recs) < minWindows {
		return nil
	}
	var out []float64
	for i := 1; i < len(recs); i++ {
		if brittlenessBand(recs[i].Brittleness) != brittlenessBand(recs[i-1].Brittleness) {
			out = append(out, recs[i].CenterHour)
		}
	}
	return out
}

func brittlenessBand(score float64) int {
	switch {
	case score < 25:
		return 0
	case score < 50:
		return 1
	case score < 75:
		return 2
	default:
		return 3
	}
}
