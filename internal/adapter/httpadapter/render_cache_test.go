package httpadapter

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

func TestRenderCache_GetOrRender(t *testing.T) {
	m := observability.NewMetricsForTesting()
	c := newRenderCache(4, m)

	calls := 0
	render := func() ([]byte, error) {
		calls++
		return []byte("<svg/>"), nil
	}

	for range 3 {
		v, err := c.getOrRender("svg:1200", render)
		require.NoError(t, err)
		assert.Equal(t, "<svg/>", string(v))
	}

	assert.Equal(t, 1, calls, "should only render once")
	assert.InDelta(t, 1, testutil.ToFloat64(m.RenderCache.WithLabelValues("miss")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.RenderCache.WithLabelValues("hit")), 0)
}

func TestRenderCache_ErrorsNotCached(t *testing.T) {
	c := newRenderCache(4, observability.NewMetricsForTesting())

	_, err := c.getOrRender("svg:600", func() ([]byte, error) { return nil, errors.New("boom") })
	require.Error(t, err)
	assert.Equal(t, 0, c.len())
}

func TestRenderCache_BasicGetPut(t *testing.T) {
	c := newRenderCache(3, observability.NewMetricsForTesting())

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", string(v))

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestRenderCache_Eviction(t *testing.T) {
	c := newRenderCache(2, observability.NewMetricsForTesting())

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))
	c.put("c", []byte("C")) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	v, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "B", string(v))

	v, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", string(v))
}

func TestRenderCache_AccessPromotesEntry(t *testing.T) {
	c := newRenderCache(2, observability.NewMetricsForTesting())

	c.put("a", []byte("A"))
	c.put("b", []byte("B"))

	c.get("a")

	// "b" is now least recently used
	c.put("c", []byte("C"))

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestRenderCache_UpdateExisting(t *testing.T) {
	c := newRenderCache(2, observability.NewMetricsForTesting())

	c.put("a", []byte("A1"))
	c.put("a", []byte("A2"))

	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", string(v))
	assert.Equal(t, 1, c.len())
}
