package segment

import (
	"sort"

	"glucolens/domain/segmentation"
)

// minWindows is the minimum number of window records a detector needs;
// below this every detector returns no candidates.
const minWindows = 6

// Detector proposes change-point candidates, expressed as window center
// hours, from a sequence of window records.
type Detector interface {
	Name() string
	Detect(recs []segmentation.WindowRecord) []float64
}

// candidate pairs a window index with the strength of its signal.
type candidate struct {
	index    int
	strength float64
}

// collapseRuns reduces runs of consecutive window indices to the single
// strongest index of each run. Input must be sorted by index.
func collapseRuns(cands []candidate) []int {
	if len(cands) == 0 {
		return nil
	}
	var out []int
	last := cands[0].index
	best := cands[0]
	for _, c := range cands[1:] {
		if c.index == last+1 {
			if c.strength > best.strength {
				best = c
			}
		} else {
			out = append(out, best.index)
			best = c
		}
		last = c.index
	}
	out = append(out, best.index)
	return out
}

// sortedUnique returns hrs sorted ascending with duplicates removed.
func sortedUnique(hrs []float64) []float64 {
	if len(hrs) == 0 {
		return nil
	}
	out := append([]float64(nil), hrs...)
	sort.Float64s(out)
	dedup := out[:1]
	for _, h := range out[1:] {
		if h != dedup[len(dedup)-1] {
			dedup = append(dedup, h)
		}
	}
	return dedup
}
