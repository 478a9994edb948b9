package glucose

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glucolens/internal/errors"
)

func sampleAt(minute int, value float64) Sample {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return Sample{At: base.Add(time.Duration(minute) * time.Minute), Value: value}
}

func TestNewSeries_RejectsEmpty(t *testing.T) {
	_, err := NewSeries(nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
}

func TestNewSeries_RejectsNonPositiveValues(t *testing.T) {
	_, err := NewSeries([]Sample{sampleAt(0, 5.5), sampleAt(5, 0)})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestNewSeries_RejectsUnsortedTimestamps(t *testing.T) {
	_, err := NewSeries([]Sample{sampleAt(5, 5.5), sampleAt(0, 6.0)})
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
}

func TestNewSeries_AcceptsDuplicateTimestamps(t *testing.T) {
	series, err := NewSeries([]Sample{
		sampleAt(0, 5.5),
		sampleAt(5, 6.0),
		sampleAt(5, 6.2),
		sampleAt(10, 6.4),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, series.Len())
	assert.Equal(t, []float64{5.5, 6.0, 6.2, 6.4}, series.Values())
}

func TestSeries_HoursAndValues(t *testing.T) {
	series, err := NewSeries([]Sample{
		sampleAt(0, 5.0),
		sampleAt(30, 6.0),
		sampleAt(90, 7.0),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, series.Len())
	assert.Equal(t, []float64{5.0, 6.0, 7.0}, series.Values())
	assert.InDeltaSlice(t, []float64{0, 0.5, 1.5}, series.Hours(), 1e-12)
	assert.InDelta(t, 1.5, series.Duration().Hours(), 1e-12)
}

func TestSeries_TotalDays(t *testing.T) {
	short, err := NewSeries([]Sample{sampleAt(0, 5.0), sampleAt(90, 6.0)})
	require.NoError(t, err)
	assert.Equal(t, 1, short.TotalDays())

	week, err := NewSeries([]Sample{sampleAt(0, 5.0), sampleAt(6*24*60+1, 6.0)})
	require.NoError(t, err)
	assert.Equal(t, 7, week.TotalDays())

	assert.Equal(t, 0, Series{}.TotalDays())
}

func TestSeries_CopiesInput(t *testing.T) {
	input := []Sample{sampleAt(0, 5.0), sampleAt(5, 6.0)}
	series, err := NewSeries(input)
	require.NoError(t, err)

	input[0].Value = 99
	assert.Equal(t, 5.0, series.Values()[0])
}

func TestComputeMetrics(t *testing.T) {
	// two in range, two out
	m := ComputeMetrics([]float64{4.0, 6.0, 12.0, 2.0}, 3.9, 10.0)

	assert.InDelta(t, 6.0, m.Mean, 1e-12)
	assert.InDelta(t, 0.5, m.TimeInRange, 1e-12)
	assert.InDelta(t, 0.25, m.TimeAboveRange, 1e-12)
	assert.InDelta(t, 0.25, m.TimeBelowRange, 1e-12)
	assert.InDelta(t, 3.31+0.431*6.0, m.GMI, 1e-12)
	assert.Equal(t, 2.0, m.Min)
	assert.Equal(t, 12.0, m.Max)
	// population std dev of {4,6,12,2} is sqrt(14)
	assert.InDelta(t, 3.7416573867739413, m.StdDev, 1e-9)
	assert.InDelta(t, m.StdDev/m.Mean*100, m.CV, 1e-9)
}

func TestComputeMetrics_Empty(t *testing.T) {
	assert.Equal(t, Metrics{}, ComputeMetrics(nil, 3.9, 10.0))
}
