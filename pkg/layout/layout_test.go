package layout

import (
	"testing"

	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/grid"
)

// filled returns a w×h grid with every pixel set to v.
func filled(w, h int, v uint8) *grid.Grid {
	g := grid.New(w, h)
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

// colSpan returns the first and last column of row y holding v, or -1, -1.
func colSpan(g *grid.Grid, y int, v uint8) (int, int) {
	first, last := -1, -1
	for x, p := range g.Row(y) {
		if p == v {
			if first < 0 {
				first = x
			}
			last = x
		}
	}
	return first, last
}

func TestVariantFor(t *testing.T) {
	tests := []struct {
		num, den int
		want     Variant
		wantErr  bool
	}{
		{1, 1, Simple, false},
		{1, 2, ComplexSingle, false},
		{2, 2, ComplexDouble, false},
		{2, 1, "", true},
		{0, 1, "", true},
		{3, 2, "", true},
	}

	for _, tt := range tests {
		got, err := VariantFor(tt.num, tt.den)
		if (err != nil) != tt.wantErr {
			t.Errorf("VariantFor(%d, %d) error = %v, wantErr %v", tt.num, tt.den, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("VariantFor(%d, %d) = %q, want %q", tt.num, tt.den, got, tt.want)
		}
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range Variants {
		if got, err := ParseVariant(string(v)); err != nil || got != v {
			t.Errorf("ParseVariant(%q) = %q, %v", v, got, err)
		}
	}
	if _, err := ParseVariant("mixed"); !errs.Is(err, errs.ErrCodeInvalidVariant) {
		t.Errorf("ParseVariant(mixed) error = %v, want INVALID_VARIANT", err)
	}
}

func TestSimpleCanvasSizing(t *testing.T) {
	c := Components{
		Numerator:   []*grid.Grid{filled(15, 20, 200)},
		Denominator: []*grid.Grid{filled(12, 18, 150)},
		Bar:         filled(4, 15, 255), // vertical: transposes to 15 wide, 4 tall
	}

	p, err := NewPlan(Simple, c, 0)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if p.Height != 42 {
		t.Errorf("Height = %d, want 42", p.Height)
	}
	if p.Width != 15 {
		t.Errorf("Width = %d, want 15", p.Width)
	}

	// Width-12 denominator centered in width 15 lands at column 1
	deno := p.Placements[2]
	if deno.Col != 1 || deno.Row != 24 {
		t.Errorf("denominator at row %d col %d, want row 24 col 1", deno.Row, deno.Col)
	}
}

func TestSimpleCompose(t *testing.T) {
	c := Components{
		Numerator:   []*grid.Grid{filled(6, 5, 200)},
		Denominator: []*grid.Grid{filled(4, 6, 150)},
		Bar:         filled(2, 10, 255),
	}
	out, err := Compose(Simple, c, 0)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if out.Width != 10 || out.Height != 5+2+6 {
		t.Fatalf("canvas = %dx%d, want 10x13", out.Width, out.Height)
	}

	if first, last := colSpan(out, 0, 200); first != 2 || last != 7 {
		t.Errorf("numerator spans %d..%d, want 2..7", first, last)
	}
	if first, last := colSpan(out, 5, 255); first != 0 || last != 9 {
		t.Errorf("bar spans %d..%d, want 0..9", first, last)
	}
	if first, last := colSpan(out, 12, 150); first != 3 || last != 6 {
		t.Errorf("denominator spans %d..%d, want 3..6", first, last)
	}
	// Background stays zero
	if out.At(0, 0) != 0 || out.At(9, 12) != 0 {
		t.Error("background pixels should be zero")
	}
}

func TestSimpleWiderDigitThanBar(t *testing.T) {
	c := Components{
		Numerator:   []*grid.Grid{filled(20, 5, 200)},
		Denominator: []*grid.Grid{filled(9, 5, 150)},
		Bar:         filled(2, 8, 255),
	}
	p, err := NewPlan(Simple, c, 0)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if p.Width != 20 {
		t.Errorf("Width = %d, want 20 (no margin for simple)", p.Width)
	}
	if bar := p.Placements[1]; bar.Col != 6 {
		t.Errorf("bar col = %d, want floor((20-8)/2) = 6", bar.Col)
	}
	if deno := p.Placements[2]; deno.Col != 5 {
		t.Errorf("denominator col = %d, want floor((20-9)/2) = 5", deno.Col)
	}
}

func TestComplexSinglePlan(t *testing.T) {
	c := Components{
		Numerator:   []*grid.Grid{filled(10, 20, 200)},
		Denominator: []*grid.Grid{filled(12, 18, 150), filled(8, 22, 100)},
		Bar:         filled(3, 28, 255),
	}

	p, err := NewPlan(ComplexSingle, c, 1)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	// int(1.4 * max(10, 12+8)) = 28
	if p.Width != 28 {
		t.Errorf("Width = %d, want 28", p.Width)
	}
	// 20 + 3 (bar thickness) + max(18, 22)
	if p.Height != 45 {
		t.Errorf("Height = %d, want 45", p.Height)
	}

	byName := map[string]Placement{}
	for _, pl := range p.Placements {
		byName[pl.Name] = pl
	}
	if pl := byName["numerator"]; pl.Col != 9 || pl.Row != 0 {
		t.Errorf("numerator at row %d col %d, want row 0 col 9", pl.Row, pl.Col)
	}
	if pl := byName["bar"]; pl.Col != 0 || pl.Row != 20 || pl.Grid.Width != 28 || pl.Grid.Height != 3 {
		t.Errorf("bar at row %d col %d size %s, want row 20 col 0 size 28x3", pl.Row, pl.Col, pl.Grid)
	}
	if pl := byName["denominator left"]; pl.Col != 14-12-1 || pl.Row != 23 {
		t.Errorf("denominator left at row %d col %d, want row 23 col 1", pl.Row, pl.Col)
	}
	if pl := byName["denominator right"]; pl.Col != 15 || pl.Row != 23 {
		t.Errorf("denominator right at row %d col %d, want row 23 col 15", pl.Row, pl.Col)
	}

	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	out, err := p.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.Width != 28 || out.Height != 45 {
		t.Errorf("canvas = %s, want 28x45", out)
	}
}

func TestComplexDoublePlan(t *testing.T) {
	c := Components{
		Numerator:   []*grid.Grid{filled(9, 20, 201), filled(11, 21, 202)},
		Denominator: []*grid.Grid{filled(10, 19, 203), filled(12, 18, 204)},
		Bar:         filled(4, 28, 255),
	}

	out, err := Compose(ComplexDouble, c, 2)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	// int(1.4 * max(20, 22)) = 30
	if out.Width != 30 {
		t.Errorf("Width = %d, want 30", out.Width)
	}
	// max(20, 21) + 4 + max(19, 18)
	if out.Height != 44 {
		t.Errorf("Height = %d, want 44", out.Height)
	}

	// Numerator left digit ends at 15-2, right digit starts at 15+2
	if first, last := colSpan(out, 0, 201); first != 4 || last != 12 {
		t.Errorf("numerator left spans %d..%d, want 4..12", first, last)
	}
	if first, last := colSpan(out, 0, 202); first != 17 || last != 27 {
		t.Errorf("numerator right spans %d..%d, want 17..27", first, last)
	}
	if first, last := colSpan(out, 25, 203); first != 3 || last != 12 {
		t.Errorf("denominator left spans %d..%d, want 3..12", first, last)
	}
	if first, last := colSpan(out, 25, 204); first != 17 || last != 28 {
		t.Errorf("denominator right spans %d..%d, want 17..28", first, last)
	}
}

func TestComplexNoOverlap(t *testing.T) {
	for gap := 0; gap <= 3; gap++ {
		for aw := 1; aw <= 14; aw++ {
			for bw := 1; bw <= 14; bw++ {
				c := Components{
					Numerator:   []*grid.Grid{filled(aw, 10, 200), filled(bw, 10, 200)},
					Denominator: []*grid.Grid{filled(bw, 10, 200), filled(aw, 10, 200)},
					Bar:         filled(2, 20, 255),
				}
				p, err := NewPlan(ComplexDouble, c, gap)
				if err != nil {
					t.Fatalf("gap=%d aw=%d bw=%d: NewPlan: %v", gap, aw, bw, err)
				}
				err = p.Validate()
				if err != nil {
					if !errs.Is(err, errs.ErrCodeLayoutOverflow) {
						t.Fatalf("gap=%d aw=%d bw=%d: Validate error = %v, want LAYOUT_OVERFLOW", gap, aw, bw, err)
					}
					continue
				}
				left, right := p.Placements[0], p.Placements[1]
				if left.Col+left.Grid.Width > right.Col {
					t.Errorf("gap=%d aw=%d bw=%d: left digit ends at %d past right start %d",
						gap, aw, bw, left.Col+left.Grid.Width, right.Col)
				}
			}
		}
	}
}

func TestLayoutOverflow(t *testing.T) {
	tests := []struct {
		name string
		v    Variant
		c    Components
		gap  int
	}{
		{
			name: "gap larger than margin",
			v:    ComplexSingle,
			c: Components{
				Numerator:   []*grid.Grid{filled(5, 10, 200)},
				Denominator: []*grid.Grid{filled(10, 10, 200), filled(10, 10, 200)},
				Bar:         filled(2, 20, 255),
			},
			gap: 8,
		},
		{
			name: "negative gap",
			v:    ComplexDouble,
			c: Components{
				Numerator:   []*grid.Grid{filled(5, 10, 200), filled(5, 10, 200)},
				Denominator: []*grid.Grid{filled(5, 10, 200), filled(5, 10, 200)},
				Bar:         filled(2, 20, 255),
			},
			gap: -1,
		},
		{
			name: "lopsided pair",
			v:    ComplexDouble,
			c: Components{
				Numerator:   []*grid.Grid{filled(30, 10, 200), filled(1, 10, 200)},
				Denominator: []*grid.Grid{filled(5, 10, 200), filled(5, 10, 200)},
				Bar:         filled(2, 20, 255),
			},
			gap: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Compose(tt.v, tt.c, tt.gap)
			if !errs.Is(err, errs.ErrCodeLayoutOverflow) {
				t.Fatalf("Compose error = %v, want LAYOUT_OVERFLOW", err)
			}
			if out != nil {
				t.Error("Compose should not return a canvas on overflow")
			}
		})
	}
}

func TestNewPlanComponentCount(t *testing.T) {
	c := Components{
		Numerator:   []*grid.Grid{filled(5, 10, 200)},
		Denominator: []*grid.Grid{filled(5, 10, 200)},
		Bar:         filled(2, 20, 255),
	}
	if _, err := NewPlan(ComplexDouble, c, 1); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("NewPlan(wrong count) error = %v, want INVALID_INPUT", err)
	}

	c.Bar = grid.New(0, 0)
	if _, err := NewPlan(Simple, c, 1); !errs.Is(err, errs.ErrCodeMalformedGlyph) {
		t.Errorf("NewPlan(empty bar) error = %v, want MALFORMED_GLYPH", err)
	}
}

func TestComposeDoesNotAliasInputs(t *testing.T) {
	nume := filled(4, 4, 200)
	c := Components{
		Numerator:   []*grid.Grid{nume},
		Denominator: []*grid.Grid{filled(4, 4, 150)},
		Bar:         filled(1, 4, 255),
	}
	out, err := Compose(Simple, c, 0)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	out.Set(0, 0, 1)
	if nume.At(0, 0) != 200 {
		t.Error("canvas aliases the numerator glyph")
	}
}
