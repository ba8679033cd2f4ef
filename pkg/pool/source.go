package pool

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/fractiongen/pkg/cache"
	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/glyph"
	"github.com/matzehuels/fractiongen/pkg/grid"
	"github.com/matzehuels/fractiongen/pkg/imageio"
	"github.com/matzehuels/fractiongen/pkg/observability"
)

// DefaultBarDirName is the bar pool directory inside a processed digit pool.
const DefaultBarDirName = "one_as_fraction_bar"

// Source picks one glyph of a class. Implementations must be safe for
// concurrent use; all randomness comes from rng.
type Source interface {
	Pick(ctx context.Context, class glyph.Class, rng *rand.Rand) (glyph.Glyph, error)
}

// DirSource reads glyphs from a class-per-directory pool on disk.
// Directory listings are read once per class and cached; decoded grids are
// kept in Cache.
type DirSource struct {
	GlyphDir string
	BarDir   string
	Cache    cache.Cache

	mu       sync.Mutex
	listings map[glyph.Class][]string
}

// NewDirSource creates a source over glyphDir. If barDir is empty the bar pool
// is glyphDir/one_as_fraction_bar.
func NewDirSource(glyphDir, barDir string) *DirSource {
	if barDir == "" {
		barDir = filepath.Join(glyphDir, DefaultBarDirName)
	}
	return &DirSource{
		GlyphDir: glyphDir,
		BarDir:   barDir,
		Cache:    cache.NewNullCache(),
		listings: make(map[glyph.Class][]string),
	}
}

// WithCache sets the decoded-grid cache and returns s.
func (s *DirSource) WithCache(c cache.Cache) *DirSource {
	if c == nil {
		c = cache.NewNullCache()
	}
	s.Cache = c
	return s
}

// Dir returns the directory holding class.
func (s *DirSource) Dir(class glyph.Class) string {
	if class == glyph.ClassBar {
		return s.BarDir
	}
	return filepath.Join(s.GlyphDir, class.String())
}

// Pick chooses a file of class uniformly at random and decodes it.
func (s *DirSource) Pick(ctx context.Context, class glyph.Class, rng *rand.Rand) (glyph.Glyph, error) {
	files, err := s.list(ctx, class)
	if err != nil {
		return glyph.Glyph{}, err
	}

	path := files[rng.IntN(len(files))]
	observability.Pool().OnPick(ctx, class.String(), path)

	if g, ok := s.Cache.Get(path); ok {
		return glyph.Glyph{Class: class, Path: path, Grid: g.Clone()}, nil
	}
	g, err := imageio.Load(path)
	if err != nil {
		observability.Pool().OnReadError(ctx, path, err)
		return glyph.Glyph{Class: class, Path: path}, err
	}
	s.Cache.Set(path, g)
	return glyph.Glyph{Class: class, Path: path, Grid: g.Clone()}, nil
}

// Count returns the number of image files in the pool of class.
func (s *DirSource) Count(ctx context.Context, class glyph.Class) (int, error) {
	files, err := s.list(ctx, class)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

func (s *DirSource) list(ctx context.Context, class glyph.Class) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if files, ok := s.listings[class]; ok {
		return files, nil
	}

	files, err := ListImages(s.Dir(class))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeSourceRead, err, "list %s pool", class)
	}
	if len(files) == 0 {
		return nil, errs.New(errs.ErrCodeEmptyPool, "no images in %s pool %s", class, s.Dir(class))
	}
	observability.Pool().OnList(ctx, class.String(), len(files))

	s.listings[class] = files
	return files, nil
}

// ListImages returns the image files directly inside dir, in name order.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !imageio.IsImage(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// MemSource serves glyphs from memory. Picked grids are copies.
type MemSource struct {
	Glyphs map[glyph.Class][]*grid.Grid
}

// NewMemSource creates an empty in-memory source.
func NewMemSource() *MemSource {
	return &MemSource{Glyphs: make(map[glyph.Class][]*grid.Grid)}
}

// Add appends grids to the pool of class.
func (s *MemSource) Add(class glyph.Class, gs ...*grid.Grid) *MemSource {
	s.Glyphs[class] = append(s.Glyphs[class], gs...)
	return s
}

// Pick chooses a grid of class uniformly at random.
func (s *MemSource) Pick(_ context.Context, class glyph.Class, rng *rand.Rand) (glyph.Glyph, error) {
	gs := s.Glyphs[class]
	if len(gs) == 0 {
		return glyph.Glyph{}, errs.New(errs.ErrCodeEmptyPool, "no glyphs for class %s", class)
	}
	i := rng.IntN(len(gs))
	return glyph.Glyph{
		Class: class,
		Path:  fmt.Sprintf("mem:%s/%d", class, i),
		Grid:  gs[i].Clone(),
	}, nil
}

// Ensure both sources implement Source.
var (
	_ Source = (*DirSource)(nil)
	_ Source = (*MemSource)(nil)
)
