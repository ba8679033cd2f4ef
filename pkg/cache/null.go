package cache

import "github.com/matzehuels/fractiongen/pkg/grid"

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always returns a cache miss.
func (NullCache) Get(string) (*grid.Grid, bool) {
	return nil, false
}

// Set does nothing.
func (NullCache) Set(string, *grid.Grid) {}

// Len is always zero.
func (NullCache) Len() int {
	return 0
}

// Ensure NullCache implements Cache.
var _ Cache = NullCache{}
