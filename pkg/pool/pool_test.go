package pool

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/fractiongen/pkg/cache"
	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/glyph"
	"github.com/matzehuels/fractiongen/pkg/grid"
	"github.com/matzehuels/fractiongen/pkg/imageio"
)

// stroke returns a w×h grid with an ink column block of width ink centered in it.
func stroke(w, h, ink int) *grid.Grid {
	g := grid.New(w, h)
	start := (w - ink) / 2
	for y := 1; y < h-1; y++ {
		for x := start; x < start+ink; x++ {
			g.Set(x, y, 230)
		}
	}
	return g
}

func writePNG(t *testing.T, path string, g *grid.Grid) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := imageio.Save(path, g, imageio.FormatPNG, 0); err != nil {
		t.Fatalf("Save(%s): %v", path, err)
	}
}

func TestDirSourcePick(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "4", "a.png"), stroke(10, 12, 4))
	writePNG(t, filepath.Join(dir, "4", "b.png"), stroke(10, 12, 6))
	writePNG(t, filepath.Join(dir, DefaultBarDirName, "bar.png"), stroke(3, 20, 1))
	if err := os.WriteFile(filepath.Join(dir, "4", "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	src := NewDirSource(dir, "")
	ctx := context.Background()

	n, err := src.Count(ctx, 4)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count(4) = %d, want 2 (text file ignored)", n)
	}

	g, err := src.Pick(ctx, 4, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if g.Class != 4 || g.Grid.Width != 10 || g.Grid.Height != 12 {
		t.Errorf("Pick(4) = class %s %s", g.Class, g.Grid)
	}
	if filepath.Dir(g.Path) != filepath.Join(dir, "4") {
		t.Errorf("Pick(4) path = %s", g.Path)
	}

	bar, err := src.Pick(ctx, glyph.ClassBar, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("Pick(bar): %v", err)
	}
	if bar.Grid.Width != 3 || bar.Grid.Height != 20 {
		t.Errorf("Pick(bar) = %s, want 3x20", bar.Grid)
	}
}

func TestDirSourceDeterministic(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		writePNG(t, filepath.Join(dir, "9", name+".png"), stroke(8, 8, 2))
	}
	src := NewDirSource(dir, "")
	ctx := context.Background()

	pick := func(seed uint64) []string {
		rng := rand.New(rand.NewPCG(seed, 0))
		var paths []string
		for range 10 {
			g, err := src.Pick(ctx, 9, rng)
			if err != nil {
				t.Fatalf("Pick: %v", err)
			}
			paths = append(paths, g.Path)
		}
		return paths
	}

	a, b := pick(7), pick(7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pick %d differs for equal seeds: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestDirSourceCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "7", "only.png")
	writePNG(t, path, stroke(8, 10, 2))

	mem := cache.NewMemCache(8)
	src := NewDirSource(dir, "").WithCache(mem)
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(3, 3))

	first, err := src.Pick(ctx, 7, rng)
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if mem.Len() != 1 {
		t.Fatalf("cache Len() = %d after first pick, want 1", mem.Len())
	}

	// The cached grid serves picks after the file is gone.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	second, err := src.Pick(ctx, 7, rng)
	if err != nil {
		t.Fatalf("cached Pick: %v", err)
	}
	if !second.Grid.Equal(first.Grid) {
		t.Error("cached pick differs from the decoded file")
	}

	// Picks are copies of the cached grid.
	second.Grid.Set(0, 0, 255)
	third, _ := src.Pick(ctx, 7, rng)
	if third.Grid.At(0, 0) == 255 {
		t.Error("modifying a picked grid changed the cache")
	}

	hits, misses := mem.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("cache Stats() = %d hits, %d misses; want 2, 1", hits, misses)
	}
}

func TestDirSourceErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "2"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "3"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "3", "broken.png"), []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	src := NewDirSource(dir, filepath.Join(dir, "bars"))
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(1, 1))

	tests := []struct {
		name  string
		class glyph.Class
		code  errs.Code
	}{
		{"empty pool", 2, errs.ErrCodeEmptyPool},
		{"corrupt file", 3, errs.ErrCodeSourceRead},
		{"missing class dir", 5, errs.ErrCodeSourceRead},
		{"missing bar dir", glyph.ClassBar, errs.ErrCodeSourceRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := src.Pick(ctx, tt.class, rng)
			if !errs.Is(err, tt.code) {
				t.Fatalf("Pick(%s) error = %v, want %s", tt.class, err, tt.code)
			}
			if tt.code == errs.ErrCodeSourceRead && tt.class == 3 && g.Path == "" {
				t.Error("failed Pick should still report the chosen path")
			}
		})
	}
}

func TestMemSource(t *testing.T) {
	src := NewMemSource().Add(1, stroke(5, 5, 1))
	rng := rand.New(rand.NewPCG(3, 3))

	g, err := src.Pick(context.Background(), 1, rng)
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	g.Grid.Set(0, 0, 99)
	if src.Glyphs[1][0].At(0, 0) != 0 {
		t.Error("MemSource.Pick should return a copy")
	}

	if _, err := src.Pick(context.Background(), 8, rng); !errs.Is(err, errs.ErrCodeEmptyPool) {
		t.Errorf("Pick(empty class) error = %v, want EMPTY_POOL", err)
	}
}

func TestTrimPool(t *testing.T) {
	raw, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(raw, "4", "a.png"), stroke(28, 28, 6))
	writePNG(t, filepath.Join(raw, "4", "blank.png"), grid.New(28, 28))
	writePNG(t, filepath.Join(raw, "7", "b.png"), stroke(28, 28, 10))

	stats, err := TrimPool(context.Background(), raw, out, PrepOptions{})
	if err != nil {
		t.Fatalf("TrimPool: %v", err)
	}
	if stats.Written != 2 {
		t.Errorf("Written = %d, want 2", stats.Written)
	}
	if stats.Skipped() != 1 || !errs.Is(stats.Failures[0].Err, errs.ErrCodeMalformedGlyph) {
		t.Errorf("Failures = %+v, want one MALFORMED_GLYPH", stats.Failures)
	}

	g, err := imageio.Load(filepath.Join(out, "4", "a.png"))
	if err != nil {
		t.Fatalf("Load trimmed: %v", err)
	}
	if g.Width != 6 || g.Height != 28 {
		t.Errorf("trimmed glyph = %s, want 6x28", g)
	}
	if _, err := os.Stat(filepath.Join(out, "4", "blank.png")); !os.IsNotExist(err) {
		t.Error("blank glyph should not be written")
	}
}

func TestTrimPoolCancelled(t *testing.T) {
	raw := t.TempDir()
	writePNG(t, filepath.Join(raw, "0", "a.png"), stroke(28, 28, 6))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := TrimPool(ctx, raw, t.TempDir(), PrepOptions{}); err != context.Canceled {
		t.Errorf("TrimPool(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestExtractBars(t *testing.T) {
	ones, bars := t.TempDir(), filepath.Join(t.TempDir(), "bars")
	writePNG(t, filepath.Join(ones, "upright.png"), stroke(3, 28, 3))
	writePNG(t, filepath.Join(ones, "slanted.png"), stroke(9, 28, 9))
	if err := os.WriteFile(filepath.Join(ones, "broken.png"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	stats, err := ExtractBars(context.Background(), ones, bars, PrepOptions{})
	if err != nil {
		t.Fatalf("ExtractBars: %v", err)
	}
	if stats.Written != 1 || stats.Filtered != 1 || stats.Skipped() != 1 {
		t.Errorf("stats = %+v, want 1 written, 1 filtered, 1 skipped", stats)
	}

	want, _ := os.ReadFile(filepath.Join(ones, "upright.png"))
	got, err := os.ReadFile(filepath.Join(bars, "upright.png"))
	if err != nil {
		t.Fatalf("bar not copied: %v", err)
	}
	if string(got) != string(want) {
		t.Error("bar should be copied byte for byte")
	}
}
