package httpadapter

import (
	"sync"

	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

// renderCache keeps serialized chart documents keyed by format and width.
// The chart is immutable once built, so entries never go stale; the LRU bound
// only caps memory when clients ask for many distinct widths.
type renderCache struct {
	maxEntries int
	metrics    *observability.Metrics

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry // most recently used
	tail    *entry // least recently used
}

type entry struct {
	key   string
	value []byte
	prev  *entry
	next  *entry
}

func newRenderCache(maxEntries int, metrics *observability.Metrics) *renderCache {
	return &renderCache{
		maxEntries: maxEntries,
		metrics:    metrics,
		entries:    make(map[string]*entry),
	}
}

// getOrRender returns the cached document for key, calling render on a miss.
// Render errors are not cached.
func (c *renderCache) getOrRender(key string, render func() ([]byte, error)) ([]byte, error) {
	if v, ok := c.get(key); ok {
		c.metrics.RenderCache.WithLabelValues("hit").Inc()
		return v, nil
	}
	c.metrics.RenderCache.WithLabelValues("miss").Inc()

	v, err := render()
	if err != nil {
		return nil, err
	}
	c.put(key, v)
	return v, nil
}

func (c *renderCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *renderCache) put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *renderCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *renderCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *renderCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *renderCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *renderCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
