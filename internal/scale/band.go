package scale

import (
	"slices"
)

// Band maps a discrete integer domain onto contiguous, equal-width intervals
// of [r0, r1). Bands have no inner or outer padding.
type Band struct {
	domain    []int
	index     map[int]int
	r0, r1    float64
	bandwidth float64
}

// NewBand builds a band scale over the distinct values of domain, sorted
// ascending. The input slice is not modified.
func NewBand(domain []int, r0, r1 float64) Band {
	d := slices.Clone(domain)
	slices.Sort(d)
	d = slices.Compact(d)

	index := make(map[int]int, len(d))
	for i, v := range d {
		index[v] = i
	}

	var bw float64
	if len(d) > 0 {
		bw = (r1 - r0) / float64(len(d))
	}
	return Band{domain: d, index: index, r0: r0, r1: r1, bandwidth: bw}
}

// Position returns the start of the band for v. ok is false when v is not in
// the domain.
func (b Band) Position(v int) (float64, bool) {
	i, ok := b.index[v]
	if !ok {
		return 0, false
	}
	return b.r0 + float64(i)*b.bandwidth, true
}

// Bandwidth returns the width shared by every band.
func (b Band) Bandwidth() float64 { return b.bandwidth }

// Domain returns a copy of the sorted, distinct domain.
func (b Band) Domain() []int { return slices.Clone(b.domain) }

// Range returns the pixel extent the bands cover.
func (b Band) Range() (float64, float64) { return b.r0, b.r1 }

// Len returns the number of bands.
func (b Band) Len() int { return len(b.domain) }
