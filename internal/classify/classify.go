package classify

import (
	"math"

	"glucolens/domain/brittleness"
	"glucolens/domain/core"
)

// Scores reduces the indicator vector to the four decision axes.
func Scores(v brittleness.IndicatorVector) brittleness.DecisionScores {
	var s brittleness.DecisionScores

	switch {
	case v.Lyapunov > 0.01:
		s.Chaos += 3
	case v.Lyapunov > 0:
		s.Chaos += 2
	}
	switch {
	case v.ApEn > 0.8:
		s.Chaos += 2
	case v.ApEn > 0.4:
		s.Chaos++
	}
	if v.ShannonEntropy > 5 {
		s.Chaos++
	}
	if v.Lyapunov < -0.005 {
		s.Chaos--
	}

	switch {
	case v.Hurst < 0.35:
		s.Memory = -3
	case v.Hurst < 0.45:
		s.Memory = -2
	case v.Hurst > 0.65:
		s.Memory = 3
	case v.Hurst > 0.55:
		s.Memory = 2
	}

	switch {
	case v.CV > 60:
		s.Variability = 4
	case v.CV > 50:
		s.Variability = 3
	case v.CV > 35:
		s.Variability = 2
	case v.CV > 20:
		s.Variability = 1
	}

	switch {
	case v.FractalDim > 1.5:
		s.Frequency = 2
	case v.FractalDim > 1.2:
		s.Frequency = 1
	}

	return s
}

// Classify walks the decision tree over the axis scores and produces the
// brittleness type with a severity score in [0, 100]. Rules are evaluated
// in priority order; the first match wins.
func Classify(v brittleness.IndicatorVector) brittleness.Result {
	s := Scores(v)

	var typ brittleness.Type
	var base float64
	absMem := s.Memory
	if absMem < 0 {
		absMem = -absMem
	}

	switch {
	case s.Chaos >= 4 && s.Variability >= 3:
		typ, base = brittleness.TypeI, 90
	case s.Memory <= -2 && s.Variability >= 1:
		typ, base = brittleness.TypeIV, 65
		if s.Memory <= -3 {
			base = 75
		}
	case s.Chaos >= 2 && s.Variability >= 2 && absMem <= 1:
		typ, base = brittleness.TypeIII, 70
	case s.Frequency >= 2 || (s.Variability >= 2 && v.Hurst >= 0.55 && v.Hurst <= 0.65):
		if s.Chaos >= 1 || s.Memory <= -1 {
			typ, base = brittleness.TypeV, 55
		} else {
			typ, base = brittleness.TypeII, 60
		}
	case v.Lyapunov < -0.01 && s.Variability >= 1 && s.Frequency >= 1:
		typ, base = brittleness.TypeV, 45
	case s.Variability == 0 && s.Chaos <= 1 && absMem <= 1:
		typ, base = brittleness.TypeStable, 25
	case s.Variability >= 2:
		typ, base = brittleness.TypeIII, 70
	default:
		typ, base = brittleness.TypeII, 60
	}

	severity := base +
		math.Min(20, v.CV/3) +
		math.Min(15, v.ApEn*30) +
		math.Min(15, math.Abs(v.Lyapunov)*500) +
		math.Abs(v.Hurst-0.5)*20
	severity = core.Clamp(severity, 0, 100)

	return brittleness.Result{
		Type:          typ,
		Severity:      severity,
		SeverityLabel: brittleness.SeverityLabel(severity),
		Scores:        s,
		Indicators:    v,
	}
}
