// Package cache keeps decoded glyph grids in memory.
//
// Generation draws from the same pool files over and over; a cache spares
// the decode on repeat picks. Two implementations are provided:
//
//   - MemCache: bounded in-memory cache, least recently used entries evicted first
//   - NullCache: never stores anything, used when caching is disabled
//
// Cached grids are shared. Callers must Clone a grid before modifying it.
package cache

import "github.com/matzehuels/fractiongen/pkg/grid"

// Cache stores decoded grids keyed by file path.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the grid stored under key and whether it was found.
	Get(key string) (*grid.Grid, bool)

	// Set stores g under key, possibly evicting other entries.
	Set(key string, g *grid.Grid)

	// Len returns the number of stored entries.
	Len() int
}

// New returns a MemCache holding up to size grids, or a NullCache when size
// is not positive.
func New(size int) Cache {
	if size <= 0 {
		return NewNullCache()
	}
	return NewMemCache(size)
}
