package chaos

import "math"

// downsample reduces values to at most maxPoints by taking every k-th
// sample, preserving temporal order.
func downsample(values []float64, maxPoints int) []float64 {
	if len(values) <= maxPoints {
		return values
	}
	stride := (len(values) + maxPoints - 1) / maxPoints
	out := make([]float64, 0, maxPoints)
	for i := 0; i < len(values); i += stride {
		out = append(out, values[i])
	}
	return out
}

// embed reconstructs a phase space by the method of delays: each point is
// [x(i), x(i+lag), ..., x(i+(dim-1)*lag)].
func embed(values []float64, dim, lag int) [][]float64 {
	n := len(values) - (dim-1)*lag
	if n <= 1 {
		return nil
	}
	pts := make([][]float64, n)
	for i := 0; i < n; i++ {
		p := make([]float64, dim)
		for j := 0; j < dim; j++ {
			p[j] = values[i+j*lag]
		}
		pts[i] = p
	}
	return pts
}

// pairDistances returns the euclidean distance of every unordered point pair.
func pairDistances(pts [][]float64) []float64 {
	out := make([]float64, 0, len(pts)*(len(pts)-1)/2)
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			s := 0.0
			for k := range pts[i] {
				d := pts[i][k] - pts[j][k]
				s += d * d
			}
			out = append(out, math.Sqrt(s))
		}
	}
	return out
}
