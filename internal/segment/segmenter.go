package segment

import (
	"glucolens/domain/segmentation"
	"glucolens/internal/chaos"
	"glucolens/internal/config"
	"glucolens/internal/logging"
)

// Segmenter runs the full segmentation pipeline: window sampling, the four
// change-point detectors, boundary merging with short-segment absorption,
// segment statistics, comparisons, and quality rating.
type Segmenter struct {
	cfg       config.AnalysisConfig
	log       *logging.Logger
	sampler   *Sampler
	merger    *Merger
	estimator *chaos.Estimator
	detectors []Detector
}

// NewSegmenter wires up the default detector set.
func NewSegmenter(cfg config.AnalysisConfig, log *logging.Logger) *Segmenter {
	return &Segmenter{
		cfg:       cfg,
		log:       log,
		sampler:   NewSampler(cfg),
		merger:    NewMerger(cfg),
		estimator: chaos.NewEstimator(cfg),
		detectors: []Detector{
			StatisticalDetector{},
			ClusterDetector{MinJump: cfg.MinClusterJump},
			GradientDetector{},
			PhaseDetector{},
		},
	}
}

// Run segments the trace given sample offsets in hours and glucose values.
func (s *Segmenter) Run(hours, values []float64) segmentation.Result {
	recs := s.sampler.Windows(hours, values)
	s.log.Debug("sampled %d windows from %d samples", len(recs), len(values))

	var candidates segmentation.CandidateSet
	for _, d := range s.detectors {
		pts := d.Detect(recs)
		s.log.Debug("detector %s proposed %d candidates", d.Name(), len(pts))
		switch d.Name() {
		case "statistical":
			candidates.Statistical = pts
		case "clustering":
			candidates.Clustering = pts
		case "gradient":
			candidates.Gradient = pts
		case "phase":
			candidates.Phase = pts
		}
	}

	lastHour := hours[len(hours)-1]
	candidates.Comprehensive = s.merger.Comprehensive(candidates.All(), lastHour)
	bounds := s.merger.Boundaries(candidates.Comprehensive, lastHour)
	bounds = s.merger.Absorb(hours, values, bounds)
	segs := s.merger.Build(hours, values, bounds)
	for i := range segs {
		if segs[i].Stats == nil {
			continue
		}
		inclusive := i == len(segs)-1
		v := s.estimator.Indicators(ValuesIn(hours, values, segs[i].StartHour, segs[i].EndHour, inclusive))
		segs[i].Indicators = &v
	}
	comps := Compare(segs, s.cfg.SignificantTIRDelta, s.cfg.SignificantCVDelta)
	quality := Rate(segs, comps)
	s.log.Info("segmentation produced %d segments (%s, %.1f)", len(segs), quality.Grade, quality.Overall)

	return segmentation.Result{
		Windows:     recs,
		Candidates:  candidates,
		Boundaries:  bounds,
		Segments:    segs,
		Comparisons: comps,
		Quality:     quality,
	}
}
