package chaos

import (
	"math"

	"github.com/montanaflynn/stats"
)

// ApEn computes approximate entropy with embedding length ApEnM and
// tolerance ApEnRFactor times the population standard deviation. Template
// counts include the self-match, following Pincus' original formulation.
func (e *Estimator) ApEn(values []float64) (float64, bool) {
	if len(values) < e.cfg.MinSamples {
		return DefaultApEn, false
	}
	vals := downsample(values, e.cfg.MaxApEnPoints)
	sd, err := stats.StdDevP(stats.Float64Data(vals))
	if err != nil || sd == 0 {
		return DefaultApEn, false
	}
	r := e.cfg.ApEnRFactor * sd
	m := e.cfg.ApEnM
	return phi(vals, m, r) - phi(vals, m+1, r), true
}

// phi is the ApEn correlation sum: the mean log fraction of templates of
// length m within tolerance r of each template.
func phi(vals []float64, m int, r float64) float64 {
	n := len(vals) - m + 1
	total := 0.0
	for i := 0; i < n; i++ {
		count := 0
		for j := 0; j < n; j++ {
			match := true
			for k := 0; k < m; k++ {
				if math.Abs(vals[i+k]-vals[j+k]) > r {
					match = false
					break
				}
			}
			if match {
				count++
			}
		}
		total += math.Log(float64(count) / float64(n))
	}
	return total / float64(n)
}

// ShannonEntropy bins values into ShannonBins equal-width bins over the
// observed range and returns the Shannon entropy of the histogram in bits.
// A flat histogram over the default 50 bins yields log2(50), about 5.64.
func (e *Estimator) ShannonEntropy(values []float64) (float64, bool) {
	if len(values) < e.cfg.MinSamples {
		return DefaultShannon, false
	}
	lo, _ := stats.Min(stats.Float64Data(values))
	hi, _ := stats.Max(stats.Float64Data(values))
	if hi <= lo {
		return DefaultShannon, false
	}
	nb := e.cfg.ShannonBins
	counts := make([]int, nb)
	for _, v := range values {
		b := int((v - lo) / (hi - lo) * float64(nb))
		if b == nb {
			b = nb - 1
		}
		counts[b]++
	}
	h := 0.0
	for _, c := range counts {
		if c > 0 {
			p := float64(c) / float64(len(values))
			h -= p * math.Log2(p)
		}
	}
	return h, true
}
