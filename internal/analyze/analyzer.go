package analyze

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"glucolens/domain/brittleness"
	"glucolens/domain/glucose"
	"glucolens/domain/segmentation"
	"glucolens/internal/chaos"
	"glucolens/internal/classify"
	"glucolens/internal/config"
	"glucolens/internal/errors"
	"glucolens/internal/logging"
	"glucolens/internal/segment"
)

// Report is the full analysis output for one CGM trace.
type Report struct {
	ID            uuid.UUID           `json:"id"`
	GeneratedAt   time.Time           `json:"generated_at"`
	Samples       int                 `json:"samples"`
	DurationHours float64             `json:"duration_hours"`
	TotalDays     int                 `json:"total_days"`
	Metrics       glucose.Metrics     `json:"metrics"`
	Brittleness   brittleness.Result  `json:"brittleness"`
	Segmentation  segmentation.Result `json:"segmentation"`
}

// Analyzer orchestrates the brittleness and segmentation branches of the
// pipeline over a validated series.
type Analyzer struct {
	cfg       config.AnalysisConfig
	log       *logging.Logger
	estimator *chaos.Estimator
	segmenter *segment.Segmenter
}

// New creates an analyzer with the given configuration.
func New(cfg config.AnalysisConfig, log *logging.Logger) *Analyzer {
	return &Analyzer{
		cfg:       cfg,
		log:       log,
		estimator: chaos.NewEstimator(cfg),
		segmenter: segment.NewSegmenter(cfg, log),
	}
}

// Run analyzes the series. The brittleness and segmentation branches are
// independent and run concurrently; both consume the same immutable
// values, so no synchronization beyond the group is needed.
func (a *Analyzer) Run(ctx context.Context, series glucose.Series) (*Report, error) {
	if series.Len() == 0 {
		return nil, errors.InsufficientData("series has no samples")
	}

	values := series.Values()
	hours := series.Hours()
	metrics := glucose.ComputeMetrics(values, a.cfg.TargetLow, a.cfg.TargetHigh)

	started := time.Now()
	var brittle brittleness.Result
	var segResult segmentation.Result

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		brittle = classify.Classify(a.estimator.Indicators(values))
		return nil
	})
	g.Go(func() error {
		segResult = a.segmenter.Run(hours, values)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "analysis failed")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "analysis canceled")
	}

	a.log.Info("analyzed %d samples in %.1fms: type %s, severity %.1f, %d segments",
		series.Len(), float64(time.Since(started).Nanoseconds())/1e6,
		brittle.Type, brittle.Severity, len(segResult.Segments))

	return &Report{
		ID:            uuid.New(),
		GeneratedAt:   time.Now().UTC(),
		Samples:       series.Len(),
		DurationHours: series.Duration().Hours(),
		TotalDays:     series.TotalDays(),
		Metrics:       metrics,
		Brittleness:   brittle,
		Segmentation:  segResult,
	}, nil
}
