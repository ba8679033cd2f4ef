package cache

import (
	"container/list"
	"sync"

	"github.com/matzehuels/fractiongen/pkg/grid"
)

// MemCache is a bounded LRU cache of grids.
type MemCache struct {
	mu      sync.Mutex
	size    int
	order   *list.List               // front is most recently used
	entries map[string]*list.Element // values are *memEntry
	hits    int
	misses  int
}

type memEntry struct {
	key  string
	grid *grid.Grid
}

// NewMemCache creates a cache holding up to size grids. A size below 1 is
// treated as 1.
func NewMemCache(size int) *MemCache {
	return &MemCache{
		size:    max(size, 1),
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

// Get retrieves a grid and marks it recently used.
func (c *MemCache) Get(key string) (*grid.Grid, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.order.MoveToFront(el)
	return el.Value.(*memEntry).grid, true
}

// Set stores a grid, evicting the least recently used entry when full.
func (c *MemCache) Set(key string, g *grid.Grid) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*memEntry).grid = g
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&memEntry{key: key, grid: g})
	for c.order.Len() > c.size {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*memEntry).key)
	}
}

// Len returns the number of cached grids.
func (c *MemCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns the hit and miss counts since creation.
func (c *MemCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Ensure MemCache implements Cache.
var _ Cache = (*MemCache)(nil)
