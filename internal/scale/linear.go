package scale

import (
	"math"
	"strconv"
)

// Linear is a continuous map from [d0, d1] to [r0, r1]. It extrapolates
// outside the domain.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear builds a linear scale.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Scale maps v into the range. A collapsed domain maps everything to the
// middle of the range.
func (l Linear) Scale(v float64) float64 {
	if l.d0 == l.d1 {
		return l.r0 + (l.r1-l.r0)/2
	}
	t := (v - l.d0) / (l.d1 - l.d0)
	return l.r0 + t*(l.r1-l.r0)
}

// Domain returns the input extent.
func (l Linear) Domain() (float64, float64) { return l.d0, l.d1 }

// Range returns the output extent.
func (l Linear) Range() (float64, float64) { return l.r0, l.r1 }

// Ticks returns roughly count human-friendly values inside the domain.
func (l Linear) Ticks(count int) []float64 {
	return Ticks(l.d0, l.d1, count)
}

// FormatFixed renders v with the given number of decimals.
func FormatFixed(v float64, decimals int) string {
	// avoid "-0.0" for values that round to zero
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == 0 && math.Signbit(f) {
		return s[1:]
	}
	return s
}
