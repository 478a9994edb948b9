package segmentation

import (
	"glucolens/domain/brittleness"
)

// WindowRecord summarizes one sliding window of the glucose trace. Windows
// are the unit the change-point detectors operate on.
type WindowRecord struct {
	CenterHour       float64 `json:"center_hour"`
	Mean             float64 `json:"mean"`
	CV               float64 `json:"cv"`
	TimeInRange      float64 `json:"time_in_range"`
	GMI              float64 `json:"gmi"`
	Min              float64 `json:"min"`
	Max              float64 `json:"max"`
	Brittleness      float64 `json:"brittleness"`
	VariabilityIndex float64 `json:"variability_index"`
	Stability        float64 `json:"stability"`
	Trend            float64 `json:"trend"`
	Chaos            float64 `json:"chaos"`
}

// CandidateSet holds the raw change-point candidates per detector, each as
// window center hours, plus the merged comprehensive list that segmentation
// is actually built from.
type CandidateSet struct {
	Statistical   []float64 `json:"statistical"`
	Clustering    []float64 `json:"clustering"`
	Gradient      []float64 `json:"gradient"`
	Phase         []float64 `json:"phase"`
	Comprehensive []float64 `json:"comprehensive"`
}

// All returns every candidate across detectors, unordered and with duplicates.
func (c CandidateSet) All() []float64 {
	out := make([]float64, 0, len(c.Statistical)+len(c.Clustering)+len(c.Gradient)+len(c.Phase))
	out = append(out, c.Statistical...)
	out = append(out, c.Clustering...)
	out = append(out, c.Gradient...)
	out = append(out, c.Phase...)
	return out
}

// SegmentStats holds the clinical statistics of one segment, recomputed
// from the raw samples rather than window averages. Nil when the segment
// contained no samples.
type SegmentStats struct {
	Mean           float64 `json:"mean"`
	CV             float64 `json:"cv"`
	TimeInRange    float64 `json:"time_in_range"`
	TimeAboveRange float64 `json:"time_above_range"`
	TimeBelowRange float64 `json:"time_below_range"`
	GMI            float64 `json:"gmi"`
	Brittleness    float64 `json:"brittleness"`
	Samples        int     `json:"samples"`
}

// Segment is one contiguous span of the trace between two boundaries.
// The final segment includes its end boundary; all others are half-open.
// Indicators are recomputed over the segment's raw samples.
type Segment struct {
	Index      int                          `json:"index"`
	StartHour  float64                      `json:"start_hour"`
	EndHour    float64                      `json:"end_hour"`
	Stats      *SegmentStats                `json:"stats,omitempty"`
	Indicators *brittleness.IndicatorVector `json:"indicators,omitempty"`
}

// DurationHours is the span of the segment in hours.
func (s Segment) DurationHours() float64 {
	return s.EndHour - s.StartHour
}

// Comparison contrasts two segments. Deltas run from segment From to
// segment To; DeltaTIR is in percentage points.
type Comparison struct {
	From             int     `json:"from"`
	To               int     `json:"to"`
	DeltaTIR         float64 `json:"delta_tir"`
	DeltaCV          float64 `json:"delta_cv"`
	DeltaMean        float64 `json:"delta_mean"`
	DeltaBrittleness float64 `json:"delta_brittleness"`
	Significant      bool    `json:"significant"`
}

// Quality scores how informative the produced segmentation is.
type Quality struct {
	CountScore      float64 `json:"count_score"`
	DifferenceScore float64 `json:"difference_score"`
	ClinicalScore   float64 `json:"clinical_score"`
	DiversityScore  float64 `json:"diversity_score"`
	Overall         float64 `json:"overall"`
	Grade           string  `json:"grade"`
}

// Result is the full segmentation output for one trace.
type Result struct {
	Windows     []WindowRecord `json:"windows"`
	Candidates  CandidateSet   `json:"candidates"`
	Boundaries  []float64      `json:"boundaries"`
	Segments    []Segment      `json:"segments"`
	Comparisons []Comparison   `json:"comparisons"`
	Quality     Quality        `json:"quality"`
}
