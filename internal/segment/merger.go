package segment

import (
	"math"

	"glucolens/domain/glucose"
	"glucolens/domain/segmentation"
	"glucolens/internal/config"
)

// Merger reconciles the per-detector candidates into a final set of
// segment boundaries and builds the segments over the raw trace.
type Merger struct {
	cfg config.AnalysisConfig
}

// NewMerger creates a merger with the given configuration.
func NewMerger(cfg config.AnalysisConfig) *Merger {
	return &Merger{cfg: cfg}
}

// Comprehensive merges candidates from all detectors: sort, deduplicate,
// then greedily keep points at least MergeToleranceHours apart, dropping
// anything outside the open trace interval.
func (m *Merger) Comprehensive(candidates []float64, lastHour float64) []float64 {
	var kept []float64
	for _, p := range sortedUnique(candidates) {
		if len(kept) == 0 || p-kept[len(kept)-1] >= m.cfg.MergeToleranceHours {
			kept = append(kept, p)
		}
	}
	var interior []float64
	for _, p := range kept {
		if p > 0 && p < lastHour {
			interior = append(interior, p)
		}
	}
	return interior
}

// Boundaries frames the comprehensive points with the trace start and end.
// With no surviving points the trace is split at its midpoint so downstream
// consumers always see at least two segments.
func (m *Merger) Boundaries(comprehensive []float64, lastHour float64) []float64 {
	if len(comprehensive) == 0 {
		return []float64{0, lastHour / 2, lastHour}
	}
	out := make([]float64, 0, len(comprehensive)+2)
	out = append(out, 0)
	out = append(out, comprehensive...)
	out = append(out, lastHour)
	return out
}

// Absorb repeatedly merges the shortest segment into its more similar
// neighbor until every segment spans at least MinSegmentHours or only two
// segments remain. Similarity weighs mean, CV, and time-in-range of the
// raw samples on each side.
func (m *Merger) Absorb(hours, values, bounds []float64) []float64 {
	bounds = append([]float64(nil), bounds...)
	for len(bounds)-1 > 2 {
		segs := m.Build(hours, values, bounds)
		shortest := 0
		for i := 1; i < len(segs); i++ {
			if segs[i].DurationHours() < segs[shortest].DurationHours() {
				shortest = i
			}
		}
		if segs[shortest].DurationHours() >= m.cfg.MinSegmentHours {
			break
		}
		left := math.Inf(1)
		if shortest > 0 {
			left = clinicalDistance(segs[shortest].Stats, segs[shortest-1].Stats)
		}
		right := math.Inf(1)
		if shortest < len(segs)-1 {
			right = clinicalDistance(segs[shortest].Stats, segs[shortest+1].Stats)
		}
		if left <= right {
			bounds = append(bounds[:shortest], bounds[shortest+1:]...)
		} else {
			bounds = append(bounds[:shortest+1], bounds[shortest+2:]...)
		}
	}
	return bounds
}

// clinicalDistance scores how different two segments look clinically.
// Weights scale mean shifts, CV points, and time-in-range fractions to
// comparable magnitudes.
func clinicalDistance(a, b *segmentation.SegmentStats) float64 {
	if a == nil || b == nil {
		return math.Inf(1)
	}
	return math.Abs(a.Mean-b.Mean)/2 +
		math.Abs(a.CV-b.CV)/20 +
		math.Abs(a.TimeInRange-b.TimeInRange)*2
}

// Build materializes segments over the bounds. Each segment is half-open
// except the last, which includes its end so the final sample is counted.
func (m *Merger) Build(hours, values, bounds []float64) []segmentation.Segment {
	segs := make([]segmentation.Segment, 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		inclusive := i == len(bounds)-2
		segs = append(segs, segmentation.Segment{
			Index:     i,
			StartHour: bounds[i],
			EndHour:   bounds[i+1],
			Stats:     m.segmentStats(hours, values, bounds[i], bounds[i+1], inclusive),
		})
	}
	return segs
}

// ValuesIn collects the raw values of the interval. The final segment is
// end-inclusive so the last sample is counted exactly once overall.
func ValuesIn(hours, values []float64, start, end float64, inclusive bool) []float64 {
	var seg []float64
	for i, h := range hours {
		if (h >= start && h < end) || (inclusive && h == end) {
			seg = append(seg, values[i])
		}
	}
	return seg
}

func (m *Merger) segmentStats(hours, values []float64, start, end float64, inclusive bool) *segmentation.SegmentStats {
	seg := ValuesIn(hours, values, start, end, inclusive)
	if len(seg) == 0 {
		return nil
	}
	metrics := glucose.ComputeMetrics(seg, m.cfg.TargetLow, m.cfg.TargetHigh)

	jumps := 0
	for i := 1; i < len(seg); i++ {
		if math.Abs(seg[i]-seg[i-1]) > jumpThreshold {
			jumps++
		}
	}
	jumpFrac := 0.0
	if len(seg) > 1 {
		jumpFrac = float64(jumps) / float64(len(seg)-1)
	}

	return &segmentation.SegmentStats{
		Mean:           metrics.Mean,
		CV:             metrics.CV,
		TimeInRange:    metrics.TimeInRange,
		TimeAboveRange: metrics.TimeAboveRange,
		TimeBelowRange: metrics.TimeBelowRange,
		GMI:            metrics.GMI,
		Brittleness:    brittlenessScore(metrics.CV, metrics.TimeInRange, metrics.Min, metrics.Max, jumpFrac),
		Samples:        len(seg),
	}
}
