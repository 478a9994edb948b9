package chaos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glucolens/internal/config"
	"glucolens/internal/testkit"
)

func newTestEstimator() *Estimator {
	return NewEstimator(config.Default())
}

func TestIndicators_ShortTraceDegradesToDefaults(t *testing.T) {
	e := newTestEstimator()
	short := make([]float64, 10)
	for i := range short {
		short[i] = 5.0
	}

	v := e.Indicators(short)

	assert.Equal(t, DefaultLyapunov, v.Lyapunov)
	assert.Equal(t, DefaultApEn, v.ApEn)
	assert.Equal(t, DefaultShannon, v.ShannonEntropy)
	assert.Equal(t, DefaultHurst, v.Hurst)
	assert.Equal(t, DefaultFractalDim, v.FractalDim)
	assert.Equal(t, DefaultCorrDim, v.CorrDim)
	assert.Zero(t, v.Autocorr.FirstZeroCrossing)
	assert.Zero(t, v.Autocorr.DecayRate)
	assert.Zero(t, v.Autocorr.Periodicity)

	assert.ElementsMatch(t,
		[]string{NameLyapunov, NameApEn, NameShannon, NameHurst, NameFractal, NameCorrDim, NameAutocorr},
		v.Degraded)
}

func TestIndicators_ConstantTraceDegrades(t *testing.T) {
	e := newTestEstimator()
	flat := make([]float64, 100)
	for i := range flat {
		flat[i] = 6.0
	}

	v := e.Indicators(flat)

	// a constant trace has no spread for entropy, no variance for
	// autocorrelation, and coincident phase-space points
	assert.True(t, v.IsDegraded(NameApEn))
	assert.True(t, v.IsDegraded(NameShannon))
	assert.True(t, v.IsDegraded(NameFractal))
	assert.True(t, v.IsDegraded(NameAutocorr))
	assert.True(t, v.IsDegraded(NameLyapunov))
	assert.True(t, v.IsDegraded(NameCorrDim))
}

func TestIndicators_PeriodicTrace(t *testing.T) {
	e := newTestEstimator()
	v := e.Indicators(testkit.TriangleWave(1000))

	// an exactly periodic trace is fully predictable
	assert.InDelta(t, 0.0, v.ApEn, 1e-9)
	assert.InDelta(t, 0.5017, v.Hurst, 1e-3)
	assert.InDelta(t, 1.257, v.FractalDim, 1e-3)
	assert.InDelta(t, 3.6689, v.ShannonEntropy, 1e-3)

	// repeated pattern values collapse phase-space distances to zero
	assert.True(t, v.IsDegraded(NameLyapunov))
	assert.Equal(t, DefaultLyapunov, v.Lyapunov)
	assert.True(t, v.IsDegraded(NameCorrDim))

	// the autocorrelation recovers the 24-sample period
	assert.False(t, v.IsDegraded(NameAutocorr))
	assert.Equal(t, 6.0, v.Autocorr.FirstZeroCrossing)
	assert.Equal(t, 24.0, v.Autocorr.Periodicity)
	assert.InDelta(t, 0.3309, v.Autocorr.DecayRate, 1e-3)
}

func TestIndicators_RapidSwings(t *testing.T) {
	e := newTestEstimator()
	v := e.Indicators(testkit.RapidSwings(300, 7))

	require.Empty(t, v.Degraded)
	assert.InDelta(t, 0.0145, v.Lyapunov, 1e-3)
	assert.InDelta(t, 0.4502, v.ApEn, 1e-3)
	assert.InDelta(t, 2.4203, v.ShannonEntropy, 1e-3)
	assert.InDelta(t, 0.3805, v.Hurst, 1e-3)
	assert.InDelta(t, 2.0, v.FractalDim, 1e-9)
	assert.InDelta(t, 0.5518, v.CorrDim, 1e-3)
	assert.Equal(t, 2.0, v.Autocorr.FirstZeroCrossing)
}

func TestShannonEntropy_FlatHistogramReachesBinCapacity(t *testing.T) {
	e := newTestEstimator()
	// an even ramp fills every histogram bin equally, so the entropy
	// reaches log2(ShannonBins) and clears the chaos-score cutoff of 5
	ramp := make([]float64, 1000)
	for i := range ramp {
		ramp[i] = 3.0 + 12.0*float64(i)/999.0
	}

	h, ok := e.ShannonEntropy(ramp)
	require.True(t, ok)
	assert.InDelta(t, 5.6439, h, 1e-3)
	assert.Greater(t, h, 5.0)
}

func TestIndicators_RangeInvariants(t *testing.T) {
	e := newTestEstimator()
	traces := map[string][]float64{
		"periodic":     testkit.TriangleWave(1000),
		"rapid swings": testkit.RapidSwings(300, 7),
		"regime shift": testkit.RegimeShift(11),
	}
	for name, trace := range traces {
		v := e.Indicators(trace)
		assert.GreaterOrEqual(t, v.Lyapunov, -2.0, name)
		assert.LessOrEqual(t, v.Lyapunov, 2.0, name)
		assert.GreaterOrEqual(t, v.Hurst, 0.0, name)
		assert.LessOrEqual(t, v.Hurst, 1.0, name)
		assert.GreaterOrEqual(t, v.FractalDim, 1.0, name)
		assert.LessOrEqual(t, v.FractalDim, 2.0, name)
		assert.GreaterOrEqual(t, v.CorrDim, 0.5, name)
		assert.LessOrEqual(t, v.CorrDim, 3.0, name)
		assert.GreaterOrEqual(t, v.ShannonEntropy, 0.0, name)
	}
}

func TestIndicators_Deterministic(t *testing.T) {
	e := newTestEstimator()
	trace := testkit.RapidSwings(300, 7)
	assert.Equal(t, e.Indicators(trace), e.Indicators(trace))
}

func TestDownsample(t *testing.T) {
	vals := make([]float64, 1000)
	for i := range vals {
		vals[i] = float64(i)
	}
	ds := downsample(vals, 250)
	assert.LessOrEqual(t, len(ds), 250)
	assert.Equal(t, 0.0, ds[0])
	// order preserved
	for i := 1; i < len(ds); i++ {
		assert.Greater(t, ds[i], ds[i-1])
	}

	// short input passes through untouched
	short := []float64{1, 2, 3}
	assert.Equal(t, short, downsample(short, 250))
}

func TestEmbed(t *testing.T) {
	pts := embed([]float64{1, 2, 3, 4, 5}, 3, 1)
	require.Len(t, pts, 3)
	assert.Equal(t, []float64{1, 2, 3}, pts[0])
	assert.Equal(t, []float64{3, 4, 5}, pts[2])

	assert.Nil(t, embed([]float64{1, 2}, 3, 1))
}

func TestLogSpacedInts(t *testing.T) {
	scales := logSpacedInts(5, 250, 10)
	assert.Equal(t, 5, scales[0])
	assert.Equal(t, 250, scales[len(scales)-1])
	for i := 1; i < len(scales); i++ {
		assert.Greater(t, scales[i], scales[i-1])
	}

	assert.Equal(t, []int{5}, logSpacedInts(5, 5, 10))
}
