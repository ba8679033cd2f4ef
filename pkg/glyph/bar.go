package glyph

import (
	xdraw "golang.org/x/image/draw"

	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/grid"
)

// DefaultBarMaxWidth is the width below which a trimmed "1" counts as an
// upright stroke usable as a fraction bar.
const DefaultBarMaxWidth = 5

// ScaleBar resamples a vertical bar to targetWidth rows and transposes it.
// The result is targetWidth wide and as tall as the bar was wide.
func ScaleBar(bar *grid.Grid, targetWidth int) (*grid.Grid, error) {
	if bar.Empty() {
		return nil, errs.New(errs.ErrCodeMalformedGlyph, "bar glyph is empty")
	}
	if targetWidth <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "bar target width %d must be positive", targetWidth)
	}

	src := bar.Gray()
	dst := grid.New(bar.Width, targetWidth).Gray()
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	return grid.FromImage(dst).Transpose(), nil
}

// IsUprightBar reports whether a trimmed glyph is narrow enough to serve as a
// fraction bar.
func IsUprightBar(g *grid.Grid, maxWidth int) bool {
	return !g.Empty() && g.Width < maxWidth
}
