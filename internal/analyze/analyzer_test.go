package analyze

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glucolens/domain/brittleness"
	"glucolens/domain/glucose"
	"glucolens/internal/config"
	"glucolens/internal/errors"
	"glucolens/internal/logging"
	"glucolens/internal/testkit"
)

func newTestAnalyzer() *Analyzer {
	return New(config.Default(), logging.NewLogger(logging.LogLevelError))
}

func TestAnalyzer_RapidSwings(t *testing.T) {
	a := newTestAnalyzer()
	series := testkit.SeriesAt5Min(testkit.RapidSwings(300, 7))

	report, err := a.Run(context.Background(), series)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, report.ID)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.Equal(t, 300, report.Samples)
	assert.InDelta(t, 299.0*5/60, report.DurationHours, 1e-9)
	assert.Equal(t, 2, report.TotalDays)

	assert.InDelta(t, 9.62, report.Metrics.Mean, 0.01)
	assert.Greater(t, report.Metrics.CV, 60.0)

	assert.Equal(t, brittleness.TypeI, report.Brittleness.Type)
	assert.Equal(t, 100.0, report.Brittleness.Severity)

	assert.GreaterOrEqual(t, len(report.Segmentation.Segments), 2)
}

func TestAnalyzer_RegimeShiftEndToEnd(t *testing.T) {
	a := newTestAnalyzer()
	series := testkit.SeriesAt5Min(testkit.RegimeShift(11))

	report, err := a.Run(context.Background(), series)
	require.NoError(t, err)

	assert.Equal(t, 4032, report.Samples)
	require.Len(t, report.Segmentation.Segments, 2)
	assert.InDelta(t, 153.42, report.Segmentation.Boundaries[1], 0.01)
	require.Len(t, report.Segmentation.Comparisons, 1)
	assert.True(t, report.Segmentation.Comparisons[0].Significant)
}

func TestAnalyzer_ShortSeriesStillReports(t *testing.T) {
	a := newTestAnalyzer()
	series := testkit.SeriesAt5Min([]float64{5.1, 5.3, 5.2, 5.4, 5.0, 5.2, 5.3, 5.1, 5.2, 5.3})

	report, err := a.Run(context.Background(), series)
	require.NoError(t, err)

	// every indicator degrades to its default, but the report is complete
	assert.Len(t, report.Brittleness.Indicators.Degraded, 7)
	assert.NotEmpty(t, report.Brittleness.Type)
	assert.Len(t, report.Segmentation.Segments, 2)
}

func TestAnalyzer_EmptySeries(t *testing.T) {
	a := newTestAnalyzer()

	_, err := a.Run(context.Background(), glucose.Series{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInsufficientData, errors.GetCode(err))
}

func TestAnalyzer_Deterministic(t *testing.T) {
	a := newTestAnalyzer()
	series := testkit.SeriesAt5Min(testkit.RegimeShift(11))

	first, err := a.Run(context.Background(), series)
	require.NoError(t, err)
	second, err := a.Run(context.Background(), series)
	require.NoError(t, err)

	// everything except the report identity must be reproducible
	assert.Equal(t, first.Brittleness, second.Brittleness)
	assert.Equal(t, first.Segmentation, second.Segmentation)
	assert.Equal(t, first.Metrics, second.Metrics)
	assert.NotEqual(t, first.ID, second.ID)
}
