package brittleness

// Type labels the brittleness phenotype of a glucose trace.
type Type string

const (
	TypeI      Type = "I"      // chaotic with extreme variability
	TypeII     Type = "II"     // moderate, structurally driven
	TypeIII    Type = "III"    // high-variability without strong memory signal
	TypeIV     Type = "IV"     // anti-persistent, overcorrecting control
	TypeV      Type = "V"      // geometric complexity dominated
	TypeStable Type = "Stable" // low variability, no chaos signal
)

// AutocorrProfile captures the shape of the autocorrelation function.
type AutocorrProfile struct {
	FirstZeroCrossing float64 `json:"first_zero_crossing"`
	DecayRate         float64 `json:"decay_rate"`
	Periodicity       float64 `json:"periodicity"`
}

// IndicatorVector is the full set of nonlinear-dynamics indicators computed
// from one glucose trace, alongside the basic moments they are judged
// against. Estimators that could not produce a reliable value report their
// documented default and list themselves in Degraded.
type IndicatorVector struct {
	MeanGlucose    float64         `json:"mean_glucose"`
	StdGlucose     float64         `json:"std_glucose"`
	CV             float64         `json:"cv_percent"`
	Lyapunov       float64         `json:"lyapunov"`
	ApEn           float64         `json:"apen"`
	ShannonEntropy float64         `json:"shannon_entropy"`
	Hurst          float64         `json:"hurst"`
	FractalDim     float64         `json:"fractal_dim"`
	CorrDim        float64         `json:"corr_dim"`
	Autocorr       AutocorrProfile `json:"autocorr"`
	Degraded       []string        `json:"degraded,omitempty"`
}

// IsDegraded reports whether the named estimator fell back to its default.
func (v IndicatorVector) IsDegraded(name string) bool {
	for _, d := range v.Degraded {
		if d == name {
			return true
		}
	}
	return false
}

// DecisionScores are the four intermediate axis scores the classifier
// derives from the indicator vector before walking the decision tree.
type DecisionScores struct {
	Chaos       int `json:"chaos"`
	Memory      int `json:"memory"`
	Variability int `json:"variability"`
	Frequency   int `json:"frequency"`
}

// Result is a complete brittleness classification.
type Result struct {
	Type          Type            `json:"type"`
	Severity      float64         `json:"severity"`
	SeverityLabel string          `json:"severity_label"`
	Scores        DecisionScores  `json:"scores"`
	Indicators    IndicatorVector `json:"indicators"`
}

// SeverityLabel maps a severity score to its clinical band.
func SeverityLabel(severity float64) string {
	switch {
	case severity >= 80:
		return "extremely severe"
	case severity >= 60:
		return "severe"
	case severity >= 40:
		return "moderate"
	case severity >= 20:
		return "mild"
	default:
		return "stable"
	}
}
