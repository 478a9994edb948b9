package glucose

import (
	"math"
	"time"

	"glucolens/internal/errors"
)

// Sample is a single CGM reading in mmol/L.
type Sample struct {
	At    time.Time `json:"at"`
	Value float64   `json:"value"`
}

// Series is a validated, time-ordered CGM trace. Construct with NewSeries;
// a zero Series is empty and safe to query.
type Series struct {
	samples []Sample
}

// NewSeries validates and wraps a slice of samples. Samples must be
// sorted in time and carry positive glucose values. Readings sharing a
// timestamp are allowed; deduplication is the caller's concern.
func NewSeries(samples []Sample) (Series, error) {
	if len(samples) == 0 {
		return Series{}, errors.ValidationError("series requires at least one sample")
	}
	for i, s := range samples {
		if s.Value <= 0 {
			return Series{}, errors.Wrapf(
				errors.InvalidInput("glucose value must be positive"),
				"sample %d has value %.3f", i, s.Value)
		}
		if i > 0 && s.At.Before(samples[i-1].At) {
			return Series{}, errors.Wrapf(
				errors.ValidationError("timestamps must be non-decreasing"),
				"sample %d at %s precedes sample %d", i, s.At.Format(time.RFC3339), i-1)
		}
	}
	out := make([]Sample, len(samples))
	copy(out, samples)
	return Series{samples: out}, nil
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.samples) }

// Start returns the timestamp of the first sample.
func (s Series) Start() time.Time {
	if len(s.samples) == 0 {
		return time.Time{}
	}
	return s.samples[0].At
}

// End returns the timestamp of the last sample.
func (s Series) End() time.Time {
	if len(s.samples) == 0 {
		return time.Time{}
	}
	return s.samples[len(s.samples)-1].At
}

// Duration is the elapsed time from the first sample to the last.
func (s Series) Duration() time.Duration {
	if len(s.samples) < 2 {
		return 0
	}
	return s.End().Sub(s.Start())
}

// TotalDays is the monitoring period rounded up to whole days. A non-empty
// series always covers at least one day.
func (s Series) TotalDays() int {
	if len(s.samples) == 0 {
		return 0
	}
	days := int(math.Ceil(s.Duration().Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// Samples returns a copy of the underlying samples.
func (s Series) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Values returns the glucose values in order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.samples))
	for i, smp := range s.samples {
		out[i] = smp.Value
	}
	return out
}

// Hours returns each sample's offset from the series start in fractional hours.
func (s Series) Hours() []float64 {
	out := make([]float64, len(s.samples))
	if len(s.samples) == 0 {
		return out
	}
	start := s.samples[0].At
	for i, smp := range s.samples {
		out[i] = smp.At.Sub(start).Hours()
	}
	return out
}
