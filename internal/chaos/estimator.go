package chaos

import (
	"github.com/montanaflynn/stats"

	"glucolens/domain/brittleness"
	"glucolens/internal/config"
)

// Defaults reported when an estimator cannot produce a reliable value.
const (
	DefaultLyapunov   = 0.0
	DefaultApEn       = 0.1
	DefaultShannon    = 0.1
	DefaultHurst      = 0.5
	DefaultFractalDim = 1.5
	DefaultCorrDim    = 1.0
)

// Estimator names reported in IndicatorVector.Degraded.
const (
	NameLyapunov = "lyapunov"
	NameApEn     = "apen"
	NameShannon  = "shannon"
	NameHurst    = "hurst"
	NameFractal  = "fractal"
	NameCorrDim  = "corrdim"
	NameAutocorr = "autocorr"
)

// Estimator computes nonlinear-dynamics indicators from a glucose trace.
// All methods are pure functions of the input values and the configuration.
type Estimator struct {
	cfg config.AnalysisConfig
}

// NewEstimator creates an estimator with the given analysis configuration.
func NewEstimator(cfg config.AnalysisConfig) *Estimator {
	return &Estimator{cfg: cfg}
}

// Indicators runs every estimator over values and assembles the indicator
// vector. Estimators that degrade report their default value and are named
// in the Degraded list; the vector itself is always fully populated.
func (e *Estimator) Indicators(values []float64) brittleness.IndicatorVector {
	var v brittleness.IndicatorVector
	var degraded []string

	if len(values) > 0 {
		m, _ := stats.Mean(stats.Float64Data(values))
		sd, _ := stats.StdDevP(stats.Float64Data(values))
		v.MeanGlucose = m
		v.StdGlucose = sd
		if m > 0 {
			v.CV = sd / m * 100
		}
	}

	record := func(name string, ok bool) {
		if !ok {
			degraded = append(degraded, name)
		}
	}

	var ok bool
	v.Lyapunov, ok = e.Lyapunov(values)
	record(NameLyapunov, ok)
	v.ApEn, ok = e.ApEn(values)
	record(NameApEn, ok)
	v.ShannonEntropy, ok = e.ShannonEntropy(values)
	record(NameShannon, ok)
	v.Hurst, ok = e.Hurst(values)
	record(NameHurst, ok)
	v.FractalDim, ok = e.FractalDim(values)
	record(NameFractal, ok)
	v.CorrDim, ok = e.CorrDim(values)
	record(NameCorrDim, ok)
	v.Autocorr, ok = e.Autocorr(values)
	record(NameAutocorr, ok)

	v.Degraded = degraded
	return v
}
