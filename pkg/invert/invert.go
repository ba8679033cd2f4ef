// Package invert mirrors an image tree with every pixel value inverted.
//
// Generated samples are light ink on a dark background. Some consumers expect
// dark ink on white paper; Tree converts a whole dataset in one pass while
// keeping its directory layout and file names.
package invert

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/imageio"
)

// Extensions lists the file extensions Tree converts. Other files are skipped.
var Extensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Options configures Tree.
type Options struct {
	// Workers is the number of files converted concurrently. Zero means 1.
	Workers int

	// Quality is the JPEG quality for converted .jpg files. Zero selects
	// imageio.DefaultQuality.
	Quality int

	// Logger receives per-file diagnostics. Nil discards them.
	Logger *log.Logger
}

// FileError records a file that could not be converted.
type FileError struct {
	Path string
	Err  error
}

// Stats summarizes a Tree run.
type Stats struct {
	Written  int
	Ignored  int // files without a convertible extension
	Failures []FileError
}

// Tree writes an inverted copy of every .jpg, .jpeg and .png file under inDir
// to the same relative path under outDir, creating directories as needed.
// The output format follows the file extension. Per-file failures are
// collected in Stats; only a missing inDir, a walk error or cancellation are
// returned as errors.
func Tree(ctx context.Context, inDir, outDir string, opts Options) (Stats, error) {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := errs.ValidateDir("input", inDir); err != nil {
		return Stats{}, err
	}
	if err := errs.ValidateDir("output", outDir); err != nil {
		return Stats{}, err
	}
	if info, err := os.Stat(inDir); err != nil || !info.IsDir() {
		if err == nil {
			err = fs.ErrInvalid
		}
		return Stats{}, errs.Wrap(errs.ErrCodeSourceRead, err, "input %s is not a directory", inDir)
	}

	var (
		stats Stats
		mu    sync.Mutex
		g     errgroup.Group
	)
	g.SetLimit(opts.Workers)

	walkErr := filepath.WalkDir(inDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !Extensions[strings.ToLower(filepath.Ext(path))] {
			mu.Lock()
			stats.Ignored++
			mu.Unlock()
			return nil
		}

		rel, err := filepath.Rel(inDir, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(outDir, rel)

		g.Go(func() error {
			err := File(path, dst, opts.Quality)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				opts.Logger.Error("invert failed", "path", path, "code", errs.CodeOf(err), "err", errs.UserMessage(err))
				stats.Failures = append(stats.Failures, FileError{Path: path, Err: err})
				return nil
			}
			opts.Logger.Debug("inverted", "path", rel)
			stats.Written++
			return nil
		})
		return nil
	})
	_ = g.Wait()

	if walkErr != nil {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		return stats, errs.Wrap(errs.ErrCodeSourceRead, walkErr, "walk %s", inDir)
	}
	return stats, nil
}

// File writes an inverted copy of src to dst, creating dst's directory.
func File(src, dst string, quality int) error {
	format, err := imageio.FormatFromPath(dst)
	if err != nil {
		return err
	}
	g, err := imageio.Load(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errs.Wrap(errs.ErrCodeWriteFailed, err, "create %s", filepath.Dir(dst))
	}
	return imageio.Save(dst, g.Invert(), format, quality)
}
