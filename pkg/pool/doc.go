// Package pool provides access to on-disk glyph pools.
//
// A pool directory holds one subdirectory per digit class ("0" through "9"),
// each with any number of single-glyph grayscale images. Bar glyphs live in a
// separate directory, by default "one_as_fraction_bar" inside the digit pool.
//
//	digits/processed/
//	├── 0/
//	├── 1/
//	├── ...
//	├── 9/
//	└── one_as_fraction_bar/
//
// The Source interface hides how glyphs are chosen and loaded so the layout
// engine and the generator never enumerate directories themselves. DirSource
// reads pools from disk; MemSource serves in-memory grids for tests and
// embedded fixtures.
//
// The package also prepares pools: TrimPool crops every raw digit image to its
// ink, and ExtractBars selects upright "1" strokes for the bar pool.
package pool
