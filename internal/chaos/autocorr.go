package chaos

import (
	"math"

	"github.com/montanaflynn/stats"

	"glucolens/domain/brittleness"
)

// Autocorr computes the autocorrelation profile up to lag n/2:
// the first lag where the autocorrelation turns negative, the exponential
// decay rate fitted to the leading positive lags, and the dominant
// periodicity (the strongest positive peak past the first zero crossing).
// Constant traces degrade to an all-zero profile.
func (e *Estimator) Autocorr(values []float64) (brittleness.AutocorrProfile, bool) {
	n := len(values)
	if n < e.cfg.MinSamples {
		return brittleness.AutocorrProfile{}, false
	}
	m, _ := stats.Mean(stats.Float64Data(values))
	variance := 0.0
	for _, v := range values {
		variance += (v - m) * (v - m)
	}
	if variance == 0 {
		return brittleness.AutocorrProfile{}, false
	}

	maxLag := n / 2
	ac := make([]float64, maxLag)
	for k := 0; k < maxLag; k++ {
		s := 0.0
		for i := 0; i < n-k; i++ {
			s += (values[i] - m) * (values[i+k] - m)
		}
		ac[k] = s / variance
	}

	fzc := 0
	for k := 1; k < len(ac); k++ {
		if ac[k] < 0 {
			fzc = k
			break
		}
	}

	decay := 0.0
	end := len(ac)
	if fzc > 0 {
		end = fzc
	}
	var lead []float64
	for _, a := range ac[1:end] {
		if a > 0 {
			lead = append(lead, a)
		}
	}
	if len(lead) >= 2 {
		lx := make([]float64, len(lead))
		ly := make([]float64, len(lead))
		for i, a := range lead {
			lx[i] = float64(i + 1)
			ly[i] = math.Log(a)
		}
		if b, ok := slope(lx, ly); ok {
			decay = -b
		}
	}

	period := 0.0
	if fzc > 0 {
		best := -1.0
		bi := 0
		for k := fzc + 1; k < len(ac); k++ {
			if ac[k] > best {
				best = ac[k]
				bi = k
			}
		}
		if best > 0 {
			period = float64(bi)
		}
	}

	return brittleness.AutocorrProfile{
		FirstZeroCrossing: float64(fzc),
		DecayRate:         decay,
		Periodicity:       period,
	}, true
}
