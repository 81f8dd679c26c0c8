package scale

import (
	"fmt"
	"slices"
	"sort"
)

// Threshold maps a continuous value to one of len(boundaries)+1 outputs.
// Values below boundaries[0] map to outputs[0]; a value equal to boundary i
// maps to outputs[i+1].
type Threshold struct {
	boundaries []float64
	outputs    []string
}

// NewThreshold validates that boundaries are ascending and that there is
// exactly one more output than there are boundaries.
func NewThreshold(boundaries []float64, outputs []string) (Threshold, error) {
	if len(outputs) != len(boundaries)+1 {
		return Threshold{}, fmt.Errorf("threshold scale: %d boundaries need %d outputs, got %d",
			len(boundaries), len(boundaries)+1, len(outputs))
	}
	if !slices.IsSorted(boundaries) {
		return Threshold{}, fmt.Errorf("threshold scale: boundaries are not ascending")
	}
	return Threshold{
		boundaries: slices.Clone(boundaries),
		outputs:    slices.Clone(outputs),
	}, nil
}

// Index returns the bucket index for v.
func (t Threshold) Index(v float64) int {
	return sort.Search(len(t.boundaries), func(i int) bool {
		return t.boundaries[i] > v
	})
}

// Output returns the output for the bucket containing v.
func (t Threshold) Output(v float64) string {
	return t.outputs[t.Index(v)]
}

// Boundaries returns a copy of the cut points.
func (t Threshold) Boundaries() []float64 { return slices.Clone(t.boundaries) }

// Outputs returns a copy of the bucket outputs, lowest bucket first.
func (t Threshold) Outputs() []string { return slices.Clone(t.outputs) }

// Buckets returns the number of buckets.
func (t Threshold) Buckets() int { return len(t.outputs) }

// EqualWidthBoundaries splits [lo, hi) into n equal-width buckets and returns
// the n-1 interior cut points. It returns nil when the range is empty or n < 2.
func EqualWidthBoundaries(lo, hi float64, n int) []float64 {
	if n < 2 || !(hi > lo) {
		return nil
	}
	step := (hi - lo) / float64(n)
	cuts := make([]float64, n-1)
	for i := range cuts {
		cuts[i] = lo + float64(i+1)*step
	}
	return cuts
}
