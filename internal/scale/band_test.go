package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBand_ContiguousEqualWidth(t *testing.T) {
	years := []int{2003, 2001, 2002, 2001, 2000, 2003}
	b := NewBand(years, 80, 1160)

	require.Equal(t, []int{2000, 2001, 2002, 2003}, b.Domain())
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, 270.0, b.Bandwidth())

	prevEnd := 80.0
	for _, y := range b.Domain() {
		x, ok := b.Position(y)
		require.True(t, ok)
		assert.Equal(t, prevEnd, x, "band for %d must start where the previous ended", y)
		prevEnd = x + b.Bandwidth()
	}
	assert.Equal(t, 1160.0, prevEnd)
}

func TestBand_MonthsInIndexOrder(t *testing.T) {
	b := NewBand([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, 80, 520)

	assert.Equal(t, 440.0/12, b.Bandwidth())
	top, ok := b.Position(0)
	require.True(t, ok)
	assert.Equal(t, 80.0, top)

	for m := 1; m < 12; m++ {
		prev, _ := b.Position(m - 1)
		cur, _ := b.Position(m)
		assert.Greater(t, cur, prev)
	}
}

func TestBand_UnknownValue(t *testing.T) {
	b := NewBand([]int{1, 2}, 0, 10)
	_, ok := b.Position(3)
	assert.False(t, ok)
	_, ok = b.Position(-1)
	assert.False(t, ok)
}

func TestBand_DoesNotMutateInput(t *testing.T) {
	in := []int{3, 1, 2}
	NewBand(in, 0, 3)
	assert.Equal(t, []int{3, 1, 2}, in)
}

func TestBand_EmptyDomain(t *testing.T) {
	b := NewBand(nil, 0, 100)
	assert.Zero(t, b.Bandwidth())
	assert.Zero(t, b.Len())
	r0, r1 := b.Range()
	assert.Equal(t, 0.0, r0)
	assert.Equal(t, 100.0, r1)
}
