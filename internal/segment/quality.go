package segment

import (
	"math"

	"glucolens/domain/segmentation"
)

// Compare contrasts adjacent segments, plus first against last when more
// than two segments exist. Segments without samples are skipped. A pair is
// significant when its TIR delta (percentage points) or CV delta exceeds
// the given threshold.
func Compare(segs []segmentation.Segment, tirDelta, cvDelta float64) []segmentation.Comparison {
	pairs := make([][2]int, 0, len(segs))
	for i := 0; i+1 < len(segs); i++ {
		pairs = append(pairs, [2]int{i, i + 1})
	}
	if len(segs) > 2 {
		pairs = append(pairs, [2]int{0, len(segs) - 1})
	}

	var out []segmentation.Comparison
	for _, p := range pairs {
		a, b := segs[p[0]].Stats, segs[p[1]].Stats
		if a == nil || b == nil {
			continue
		}
		deltaTIR := (b.TimeInRange - a.TimeInRange) * 100
		deltaCV := b.CV - a.CV
		out = append(out, segmentation.Comparison{
			From:             p[0],
			To:               p[1],
			DeltaTIR:         deltaTIR,
			DeltaCV:          deltaCV,
			DeltaMean:        b.Mean - a.Mean,
			DeltaBrittleness: b.Brittleness - a.Brittleness,
			Significant:      math.Abs(deltaTIR) > tirDelta || math.Abs(deltaCV) > cvDelta,
		})
	}
	return out
}

// Rate scores the segmentation output on four axes and combines them into
// an overall grade.
func Rate(segs []segmentation.Segment, comps []segmentation.Comparison) segmentation.Quality {
	var count float64
	switch n := len(segs); {
	case n >= 2 && n <= 4:
		count = 90
	case n == 1:
		count = 60
	case n >= 5 && n <= 6:
		count = 70
	default:
		count = 50
	}

	significant := 0
	improvements := 0
	for _, c := range comps {
		if c.Significant {
			significant++
		}
		if c.DeltaTIR > 0 || c.DeltaCV < 0 {
			improvements++
		}
	}
	difference := math.Min(100, 40+30*float64(significant))
	clinical := 50 + 15*float64(improvements)
	if improvements >= 2 {
		clinical += 10
	}
	clinical = math.Min(100, clinical)
	const diversity = 80.0

	overall := 0.3*count + 0.3*difference + 0.3*clinical + 0.1*diversity
	var grade string
	switch {
	case overall >= 85:
		grade = "Excellent"
	case overall >= 75:
		grade = "Good"
	case overall >= 65:
		grade = "Moderate"
	default:
		grade = "Needs Improvement"
	}

	return segmentation.Quality{
		CountScore:      count,
		DifferenceScore: difference,
		ClinicalScore:   clinical,
		DiversityScore:  diversity,
		Overall:         overall,
		Grade:           grade,
	}
}
