// Package layout composes trimmed digit glyphs and a bar glyph into fraction images.
//
// Three variants are supported, selected by how many digits the numerator and
// denominator have:
//
//	Simple         a/b    one digit over one digit
//	ComplexSingle  a/bc   one digit over two digits
//	ComplexDouble  ab/cd  two digits over two digits
//
// Composition happens in two steps. NewPlan computes the canvas size and the
// offset of every component; Plan.Validate rejects any placement that would
// fall outside the canvas; Plan.Render copies each component into a fresh
// zero-filled canvas. Compose runs all three.
//
// # Geometry
//
// Single-glyph rows are centered at floor((W-w)/2). In two-digit rows the left
// digit ends at W/2-gap and the right digit starts at W/2+gap, so the two never
// share a column for gap >= 0. The complex variants widen the canvas to
// WidthMargin times the widest row and resample the bar to that width; the
// simple variant uses the bar as stored and adds no margin.
package layout

import (
	"fmt"

	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/glyph"
	"github.com/matzehuels/fractiongen/pkg/grid"
)

// WidthMargin is the canvas inflation applied to the complex variants.
const WidthMargin = 1.4

// Variant is one of the supported fraction shapes.
type Variant string

// Supported variants.
const (
	Simple        Variant = "simple"
	ComplexSingle Variant = "complex-single"
	ComplexDouble Variant = "complex-double"
)

// Variants lists every supported variant.
var Variants = []Variant{Simple, ComplexSingle, ComplexDouble}

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", errs.New(errs.ErrCodeInvalidVariant,
		"invalid variant: %q (must be one of: simple, complex-single, complex-double)", s)
}

// VariantFor returns the variant for a numerator and denominator digit count.
func VariantFor(numDigits, denDigits int) (Variant, error) {
	switch {
	case numDigits == 1 && denDigits == 1:
		return Simple, nil
	case numDigits == 1 && denDigits == 2:
		return ComplexSingle, nil
	case numDigits == 2 && denDigits == 2:
		return ComplexDouble, nil
	}
	return "", errs.New(errs.ErrCodeInvalidVariant,
		"no layout for %d-digit numerator over %d-digit denominator", numDigits, denDigits)
}

// Digits returns the numerator and denominator digit counts of v.
func (v Variant) Digits() (num, den int) {
	switch v {
	case ComplexSingle:
		return 1, 2
	case ComplexDouble:
		return 2, 2
	default:
		return 1, 1
	}
}

// Components are the glyph grids of one fraction. Digit grids are expected to
// be trimmed already. Bar is the vertical bar glyph as stored in the pool.
type Components struct {
	Numerator   []*grid.Grid
	Denominator []*grid.Grid
	Bar         *grid.Grid
}

// Placement positions one component on the canvas.
type Placement struct {
	Name string
	Row  int
	Col  int
	Grid *grid.Grid
}

// Plan is a computed layout: canvas size plus component placements.
type Plan struct {
	Variant    Variant
	Width      int
	Height     int
	Placements []Placement
}

// Compose lays out c as variant v and renders the canvas.
func Compose(v Variant, c Components, gap int) (*grid.Grid, error) {
	p, err := NewPlan(v, c, gap)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p.Render()
}

// NewPlan computes the canvas size and component offsets for v.
// It does not check that placements fit; call Validate for that.
func NewPlan(v Variant, c Components, gap int) (*Plan, error) {
	num, den := v.Digits()
	if len(c.Numerator) != num || len(c.Denominator) != den {
		return nil, errs.New(errs.ErrCodeInvalidInput, "%s needs %d/%d digit glyphs, got %d/%d",
			v, num, den, len(c.Numerator), len(c.Denominator))
	}
	if c.Bar.Empty() {
		return nil, errs.New(errs.ErrCodeMalformedGlyph, "bar glyph is empty")
	}
	for _, g := range append(append([]*grid.Grid{}, c.Numerator...), c.Denominator...) {
		if g.Empty() {
			return nil, errs.New(errs.ErrCodeMalformedGlyph, "digit glyph is empty")
		}
	}
	if gap < 0 {
		return nil, errs.New(errs.ErrCodeLayoutOverflow, "gap %d would overlap paired digits", gap)
	}

	switch v {
	case Simple:
		return planSimple(c), nil
	case ComplexSingle, ComplexDouble:
		return planComplex(v, c, gap)
	}
	return nil, errs.New(errs.ErrCodeInvalidVariant, "invalid variant: %q", v)
}

// planSimple stacks numerator, transposed bar and denominator, all centered.
func planSimple(c Components) *Plan {
	nume, deno := c.Numerator[0], c.Denominator[0]
	bar := c.Bar.Transpose()

	p := &Plan{
		Variant: Simple,
		Width:   max(nume.Width, bar.Width, deno.Width),
		Height:  nume.Height + bar.Height + deno.Height,
	}
	p.center("numerator", nume, 0)
	p.center("bar", bar, nume.Height)
	p.center("denominator", deno, nume.Height+bar.Height)
	return p
}

// planComplex handles both two-digit variants. The numerator row is centered
// when it has one digit and split around the center line when it has two.
func planComplex(v Variant, c Components, gap int) (*Plan, error) {
	numRow := rowWidth(c.Numerator)
	denRow := rowWidth(c.Denominator)
	width := int(float64(max(numRow, denRow)) * WidthMargin)

	bar, err := glyph.ScaleBar(c.Bar, width)
	if err != nil {
		return nil, err
	}

	numHeight := rowHeight(c.Numerator)
	p := &Plan{
		Variant: v,
		Width:   width,
		Height:  numHeight + bar.Height + rowHeight(c.Denominator),
	}

	if len(c.Numerator) == 1 {
		p.center("numerator", c.Numerator[0], 0)
	} else {
		p.split("numerator", c.Numerator[0], c.Numerator[1], 0, gap)
	}
	p.center("bar", bar, numHeight)
	p.split("denominator", c.Denominator[0], c.Denominator[1], numHeight+bar.Height, gap)
	return p, nil
}

// center places g horizontally centered at row.
func (p *Plan) center(name string, g *grid.Grid, row int) {
	p.Placements = append(p.Placements, Placement{
		Name: name,
		Row:  row,
		Col:  floorDiv(p.Width-g.Width, 2),
		Grid: g,
	})
}

// split places a to the left and b to the right of the center line, each gap
// pixels away from it.
func (p *Plan) split(name string, a, b *grid.Grid, row, gap int) {
	half := p.Width / 2
	p.Placements = append(p.Placements,
		Placement{Name: name + " left", Row: row, Col: half - a.Width - gap, Grid: a},
		Placement{Name: name + " right", Row: row, Col: half + gap, Grid: b},
	)
}

// Validate checks every placement against the canvas and against the other
// placements. It returns LAYOUT_OVERFLOW for the first offender.
func (p *Plan) Validate() error {
	canvas := grid.Grid{Width: p.Width, Height: p.Height}
	for i, pl := range p.Placements {
		if !canvas.Fits(pl.Row, pl.Col, pl.Grid.Width, pl.Grid.Height) {
			return errs.New(errs.ErrCodeLayoutOverflow,
				"%s (%dx%d) at row %d col %d exceeds %s canvas %dx%d",
				pl.Name, pl.Grid.Width, pl.Grid.Height, pl.Row, pl.Col, p.Variant, p.Width, p.Height)
		}
		for _, other := range p.Placements[:i] {
			if pl.overlaps(other) {
				return errs.New(errs.ErrCodeLayoutOverflow, "%s overlaps %s", pl.Name, other.Name)
			}
		}
	}
	return nil
}

// Render blits every placement onto a fresh canvas.
func (p *Plan) Render() (*grid.Grid, error) {
	canvas := grid.New(p.Width, p.Height)
	for _, pl := range p.Placements {
		if err := canvas.Blit(pl.Grid, pl.Row, pl.Col); err != nil {
			return nil, fmt.Errorf("render %s: %w", pl.Name, err)
		}
	}
	return canvas, nil
}

func (pl Placement) overlaps(o Placement) bool {
	return pl.Col < o.Col+o.Grid.Width && o.Col < pl.Col+pl.Grid.Width &&
		pl.Row < o.Row+o.Grid.Height && o.Row < pl.Row+pl.Grid.Height
}

func rowWidth(gs []*grid.Grid) int {
	w := 0
	for _, g := range gs {
		w += g.Width
	}
	return w
}

func rowHeight(gs []*grid.Grid) int {
	h := 0
	for _, g := range gs {
		h = max(h, g.Height)
	}
	return h
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
