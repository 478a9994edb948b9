package testkit

import (
	"time"

	"glucolens/domain/glucose"
)

// Fixture traces for tests and demos. All generators are deterministic.

// fixtureStart anchors generated series at a fixed instant.
var fixtureStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// TriangleWave produces a strictly periodic triangle pattern around
// 6.5 mmol/L: a well-controlled trace with zero stochastic component.
func TriangleWave(n int) []float64 {
	const period = 24
	const amp = 0.45
	pattern := make([]float64, period)
	for k := 0; k < period; k++ {
		phase := float64(k) / period
		if phase < 0.5 {
			pattern[k] = 6.5 + (4*phase-1)*amp
		} else {
			pattern[k] = 6.5 + (3-4*phase)*amp
		}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = pattern[i%period]
	}
	return out
}

// RapidSwings produces a trace that slams between hypoglycemic and severely
// hyperglycemic plateaus every few readings, with small jitter on each
// plateau. This is the classic unstable, chaotic control pattern.
func RapidSwings(n int, seed uint64) []float64 {
	rng := NewLCG(seed)
	out := make([]float64, 0, n)
	low := true
	block := 2 + int(rng.Float()*3)
	count := 0
	for i := 0; i < n; i++ {
		base := 16.0
		if low {
			base = 3.5
		}
		out = append(out, base+(rng.Float()-0.5)*0.6)
		count++
		if count >= block {
			low = !low
			block = 2 + int(rng.Float()*3)
			count = 0
		}
	}
	return out
}

// RegimeShift produces fourteen days of 5-minute readings whose statistical
// regime flips at the midpoint: tight control around 6 mmol/L for the first
// week, then elevated and highly variable for the second.
func RegimeShift(seed uint64) []float64 {
	rng := NewLCG(seed)
	n := 14 * 24 * 12
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if i < n/2 {
			out[i] = clampLow(6.0+rng.Norm()*0.9, 3.2)
		} else {
			out[i] = clampLow(11.0+rng.Norm()*4.95, 3.2)
		}
	}
	return out
}

func clampLow(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}

// SeriesAt5Min wraps raw values into a validated series sampled every five
// minutes from a fixed start time.
func SeriesAt5Min(values []float64) glucose.Series {
	samples := make([]glucose.Sample, len(values))
	for i, v := range values {
		samples[i] = glucose.Sample{
			At:    fixtureStart.Add(time.Duration(i) * 5 * time.Minute),
			Value: v,
		}
	}
	series, err := glucose.NewSeries(samples)
	if err != nil {
		panic(err) // generators only emit valid samples
	}
	return series
}

// HoursAt5Min returns the hour offsets matching SeriesAt5Min for n samples.
func HoursAt5Min(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * 5 / 60
	}
	return out
}
