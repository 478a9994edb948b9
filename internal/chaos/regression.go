package chaos

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// logSpacedInts returns strictly increasing integers spread logarithmically
// between lo and hi (inclusive), at most count of them.
func logSpacedInts(lo, hi, count int) []int {
	if hi <= lo {
		return []int{lo}
	}
	out := make([]int, 0, count)
	ratio := float64(hi) / float64(lo)
	for i := 0; i < count; i++ {
		v := float64(lo) * math.Pow(ratio, float64(i)/float64(count-1))
		iv := int(math.Round(v))
		if len(out) == 0 || iv > out[len(out)-1] {
			out = append(out, iv)
		}
	}
	return out
}

// slope fits y = a + b*x by ordinary least squares and returns b.
// The second return is false when the fit is degenerate.
func slope(xs, ys []float64) (float64, bool) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return 0, false
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return 0, false
	}
	return beta, true
}
