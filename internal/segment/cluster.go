package segment

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"glucolens/domain/segmentation"
)

// ClusterDetector groups windows in standardized feature space with k-means
// for every k from 2 through 4 and flags positions where the cluster label
// changes between adjacent windows, unioned across all k. Label changes with
// a small feature-space jump are noise and are ignored.
type ClusterDetector struct {
	// MinJump is the minimum standardized euclidean distance between
	// adjacent windows for a label change to count.
	MinJump float64
}

func (ClusterDetector) Name() string { return "clustering" }

// Feature columns and their variance floors. A column whose population
// standard deviation is below its floor carries no signal for this trace
// and is dropped before standardization.
var clusterFeatures = []struct {
	value func(segmentation.WindowRecord) float64
	floor float64
}{
	{func(r segmentation.WindowRecord) float64 { return r.Mean }, 0.3},
	{func(r segmentation.WindowRecord) float64 { return r.CV }, 3.0},
	{func(r segmentation.WindowRecord) float64 { return r.TimeInRange }, 0.03},
	{func(r segmentation.WindowRecord) float64 { return r.Brittleness }, 5.0},
}

func (d ClusterDetector) Detect(recs []segmentation.WindowRecord) []float64 {
	if len(recs) < minWindows {
		return nil
	}

	var keep []func(segmentation.WindowRecord) float64
	for _, f := range clusterFeatures {
		col := make([]float64, len(recs))
		for i, r := range recs {
			col[i] = f.value(r)
		}
		sd, _ := stats.StdDevP(stats.Float64Data(col))
		if sd >= f.floor {
			keep = append(keep, f.value)
		}
	}
	if len(keep) == 0 {
		return nil
	}

	z := standardize(recs, keep)
	maxK := 4
	if len(z)-1 < maxK {
		maxK = len(z) - 1
	}
	hit := make(map[float64]struct{})
	for k := 2; k <= maxK; k++ {
		labels := lloyd(z, k)
		for i := 1; i < len(z); i++ {
			if labels[i] != labels[i-1] && euclid(z[i], z[i-1]) >= d.MinJump {
				hit[recs[i].CenterHour] = struct{}{}
			}
		}
	}

	out := make([]float64, 0, len(hit))
	for h := range hit {
		out = append(out, h)
	}
	sort.Float64s(out)
	return out
}

// standardize builds the z-scored feature matrix over the retained columns.
func standardize(recs []segmentation.WindowRecord, keep []func(segmentation.WindowRecord) float64) [][]float64 {
	n := len(recs)
	cols := len(keep)
	x := make([][]float64, n)
	for i, r := range recs {
		x[i] = make([]float64, cols)
		for j, f := range keep {
			x[i][j] = f(r)
		}
	}
	for j := 0; j < cols; j++ {
		col := make([]float64, n)
		for i := range x {
			col[i] = x[i][j]
		}
		mu, _ := stats.Mean(stats.Float64Data(col))
		sd, _ := stats.StdDevP(stats.Float64Data(col))
		for i := range x {
			if sd > 0 {
				x[i][j] = (x[i][j] - mu) / sd
			} else {
				x[i][j] = 0
			}
		}
	}
	return x
}

// lloyd runs k-means with centroids seeded from the rows sorted by the
// first feature, spread evenly across the sorted order. Seeding is
// deterministic so repeated runs agree.
func lloyd(z [][]float64, k int) []int {
	n := len(z)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return z[order[a]][0] < z[order[b]][0] })

	dims := len(z[0])
	cent := make([][]float64, k)
	for j := 0; j < k; j++ {
		idx := int(math.Round(float64(j) * float64(n-1) / float64(k-1)))
		cent[j] = append([]float64(nil), z[order[idx]]...)
	}

	labels := make([]int, n)
	for iter := 0; iter < 50; iter++ {
		changed := false
		for i := range z {
			bestJ, bestD := 0, math.Inf(1)
			for j := 0; j < k; j++ {
				d := sqDist(z[i], cent[j])
				if d < bestD {
					bestD = d
					bestJ = j
				}
			}
			if labels[i] != bestJ {
				labels[i] = bestJ
				changed = true
			}
		}
		for j := 0; j < k; j++ {
			sum := make([]float64, dims)
			count := 0
			for i := range z {
				if labels[i] == j {
					for q := range sum {
						sum[q] += z[i][q]
					}
					count++
				}
			}
			if count > 0 {
				for q := range sum {
					cent[j][q] = sum[q] / float64(count)
				}
			}
		}
		if !changed {
			break
		}
	}
	return labels
}

func sqDist(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func euclid(a, b []float64) float64 {
	return math.Sqrt(sqDist(a, b))
}
