// Package grid provides the single-channel intensity grid used throughout fractiongen.
//
// A Grid is a row-major array of 8-bit intensities with no padding between
// rows. Every operation that produces a grid allocates a new one; results never
// share pixel memory with their inputs, so a composed canvas can be encoded and
// discarded without affecting the glyphs it was built from.
//
// # Usage
//
//	g := grid.New(28, 28)
//	g.Set(3, 5, 255)
//
//	crop, err := g.CropColumns(2, 20)
//	bar := g.Transpose()
//
//	canvas := grid.New(40, 60)
//	if err := canvas.Blit(crop, 0, 10); err != nil {
//	    // placement does not fit
//	}
package grid

import (
	"fmt"

	errs "github.com/matzehuels/fractiongen/pkg/errors"
)

// Grid is a grayscale image stored as Height rows of Width bytes.
type Grid struct {
	Width  int
	Height int
	Pix    []uint8
}

// New returns a zero-filled grid. Negative dimensions are treated as zero.
func New(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// FromRows builds a grid from a slice of equally long rows.
// It is mostly useful for fixtures and tests.
func FromRows(rows [][]uint8) (*Grid, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	w := len(rows[0])
	g := New(w, len(rows))
	for y, row := range rows {
		if len(row) != w {
			return nil, errs.New(errs.ErrCodeInvalidInput, "row %d has %d columns, want %d", y, len(row), w)
		}
		copy(g.Row(y), row)
	}
	return g, nil
}

// Empty reports whether the grid has no pixels.
func (g *Grid) Empty() bool {
	return g == nil || g.Width == 0 || g.Height == 0
}

// At returns the intensity at column x, row y.
func (g *Grid) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

// Set stores v at column x, row y.
func (g *Grid) Set(x, y int, v uint8) {
	g.Pix[y*g.Width+x] = v
}

// Row returns row y. The slice aliases the grid.
func (g *Grid) Row(y int) []uint8 {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// Rows returns a copy of the grid as a slice of rows.
func (g *Grid) Rows() [][]uint8 {
	out := make([][]uint8, g.Height)
	for y := range g.Height {
		out[y] = append([]uint8(nil), g.Row(y)...)
	}
	return out
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	return &Grid{
		Width:  g.Width,
		Height: g.Height,
		Pix:    append([]uint8(nil), g.Pix...),
	}
}

// Equal reports whether g and o have the same size and pixels.
func (g *Grid) Equal(o *Grid) bool {
	if g.Width != o.Width || g.Height != o.Height {
		return false
	}
	for i := range g.Pix {
		if g.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// String returns a short description such as "grid 15x20".
func (g *Grid) String() string {
	return fmt.Sprintf("grid %dx%d", g.Width, g.Height)
}

// CropColumns returns a new grid holding columns [left, right) of every row.
func (g *Grid) CropColumns(left, right int) (*Grid, error) {
	if left < 0 || right > g.Width || left > right {
		return nil, errs.New(errs.ErrCodeInvalidInput, "column span [%d, %d) outside width %d", left, right, g.Width)
	}
	out := New(right-left, g.Height)
	for y := range g.Height {
		copy(out.Row(y), g.Row(y)[left:right])
	}
	return out, nil
}

// Transpose returns a new grid with rows and columns swapped.
func (g *Grid) Transpose() *Grid {
	out := New(g.Height, g.Width)
	for y := range g.Height {
		for x, v := range g.Row(y) {
			out.Pix[x*out.Width+y] = v
		}
	}
	return out
}

// Invert returns a new grid with every intensity v replaced by 255-v.
func (g *Grid) Invert() *Grid {
	out := g.Clone()
	for i, v := range out.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}

// Fits reports whether a w×h region placed at (row, col) lies inside g.
func (g *Grid) Fits(row, col, w, h int) bool {
	return row >= 0 && col >= 0 && row+h <= g.Height && col+w <= g.Width
}

// Blit overwrites the region of g starting at (row, col) with src.
// Pixels are copied, never blended. The placement is checked before any pixel
// is written; a placement that does not fit returns LAYOUT_OVERFLOW and leaves g
// untouched.
func (g *Grid) Blit(src *Grid, row, col int) error {
	if !g.Fits(row, col, src.Width, src.Height) {
		return errs.New(errs.ErrCodeLayoutOverflow,
			"%s at row %d col %d exceeds canvas %dx%d", src, row, col, g.Width, g.Height)
	}
	for y := range src.Height {
		copy(g.Row(row + y)[col:col+src.Width], src.Row(y))
	}
	return nil
}
