package glyph

import (
	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/grid"
)

const (
	// InkThreshold is the intensity above which a pixel is drawn ink.
	InkThreshold = 100

	// EdgeThreshold is the intensity above which a pixel next to the ink
	// boundary is kept as part of a soft edge.
	EdgeThreshold = 20
)

// Bounds is the half-open column span [Left, Right) holding a glyph's ink.
type Bounds struct {
	Left  int
	Right int
}

// Width returns Right - Left.
func (b Bounds) Width() int {
	return b.Right - b.Left
}

// FindBounds scans every row of g for ink and returns the union of the
// per-row spans, each widened by one column on either side whose neighbour
// exceeds EdgeThreshold. Rows without ink are ignored. A grid with no ink at
// all returns MALFORMED_GLYPH.
func FindBounds(g *grid.Grid) (Bounds, error) {
	b := Bounds{Left: g.Width, Right: 0}

	for y := range g.Height {
		row := g.Row(y)
		first, last := inkSpan(row)
		if first < 0 {
			continue
		}

		left := first
		if first > 0 && row[first-1] > EdgeThreshold {
			left = first - 1
		}
		right := last + 1
		if right < len(row) && row[right] > EdgeThreshold {
			right++
		}

		b.Left = min(b.Left, left)
		b.Right = max(b.Right, right)
	}

	if b.Left >= b.Right {
		return Bounds{}, errs.New(errs.ErrCodeMalformedGlyph,
			"no pixel above %d in %s", InkThreshold, g)
	}
	return b, nil
}

// inkSpan returns the first and last index of row above InkThreshold,
// or -1, -1 when there is none.
func inkSpan(row []uint8) (first, last int) {
	first, last = -1, -1
	for x, v := range row {
		if v > InkThreshold {
			if first < 0 {
				first = x
			}
			last = x
		}
	}
	return first, last
}

// Trim crops g horizontally to FindBounds(g). The vertical extent is kept.
func Trim(g *grid.Grid) (*grid.Grid, error) {
	b, err := FindBounds(g)
	if err != nil {
		return nil, err
	}
	return g.CropColumns(b.Left, b.Right)
}
