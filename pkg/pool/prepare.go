package pool

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/glyph"
	"github.com/matzehuels/fractiongen/pkg/imageio"
)

// PrepOptions configures pool preparation.
type PrepOptions struct {
	// MaxBarWidth is the exclusive width limit for ExtractBars.
	// Zero selects glyph.DefaultBarMaxWidth.
	MaxBarWidth int

	// Logger receives per-file diagnostics. Nil discards them.
	Logger *log.Logger
}

func (o *PrepOptions) setDefaults() {
	if o.MaxBarWidth == 0 {
		o.MaxBarWidth = glyph.DefaultBarMaxWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// FileError records a file that preparation skipped.
type FileError struct {
	Path string
	Err  error
}

// PrepStats summarizes a preparation run.
type PrepStats struct {
	Written  int
	Filtered int // readable glyphs not selected (ExtractBars only)
	Failures []FileError
}

// Skipped returns the number of files that failed.
func (s PrepStats) Skipped() int {
	return len(s.Failures)
}

// TrimPool trims every digit image under rawDir/<digit>/ and writes the result
// to outDir/<digit>/ under the same file name. Files whose extension cannot be
// encoded are written as PNG. Blank, unreadable and unwritable files are
// recorded in the stats and skipped; missing class directories are logged.
// Only cancellation and an unusable outDir stop the run.
func TrimPool(ctx context.Context, rawDir, outDir string, opts PrepOptions) (PrepStats, error) {
	opts.setDefaults()
	var stats PrepStats

	for _, class := range glyph.Digits {
		srcDir := filepath.Join(rawDir, class.String())
		files, err := ListImages(srcDir)
		if err != nil {
			opts.Logger.Warn("skipping digit class", "class", class, "dir", srcDir, "err", err)
			continue
		}

		dstDir := filepath.Join(outDir, class.String())
		if err := os.MkdirAll(dstDir, 0755); err != nil {
			return stats, errs.Wrap(errs.ErrCodeWriteFailed, err, "create %s", dstDir)
		}

		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			if err := trimFile(path, dstDir); err != nil {
				opts.Logger.Error("trim failed", "path", path, "code", errs.CodeOf(err), "err", errs.UserMessage(err))
				stats.Failures = append(stats.Failures, FileError{Path: path, Err: err})
				continue
			}
			stats.Written++
		}
		opts.Logger.Debug("trimmed class", "class", class, "files", len(files))
	}
	return stats, nil
}

// trimQuality is the JPEG quality for trimmed glyphs.
const trimQuality = 100

func trimFile(path, dstDir string) error {
	g, err := imageio.Load(path)
	if err != nil {
		return err
	}
	trimmed, err := glyph.Trim(g)
	if err != nil {
		return errs.Wrap(errs.GetCode(err), err, "trim %s", path)
	}

	name := filepath.Base(path)
	format, err := imageio.FormatFromPath(name)
	if err != nil {
		format = imageio.FormatPNG
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
	}
	return imageio.Save(filepath.Join(dstDir, name), trimmed, format, trimQuality)
}

// ExtractBars copies the glyphs in digitDir narrower than opts.MaxBarWidth
// into barDir unchanged. digitDir is normally the trimmed pool of the digit 1,
// where upright strokes are the narrowest glyphs.
func ExtractBars(ctx context.Context, digitDir, barDir string, opts PrepOptions) (PrepStats, error) {
	opts.setDefaults()
	var stats PrepStats

	files, err := ListImages(digitDir)
	if err != nil {
		return stats, errs.Wrap(errs.ErrCodeSourceRead, err, "list %s", digitDir)
	}
	if err := os.MkdirAll(barDir, 0755); err != nil {
		return stats, errs.Wrap(errs.ErrCodeWriteFailed, err, "create %s", barDir)
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		g, err := imageio.Load(path)
		if err != nil {
			opts.Logger.Error("read failed", "path", path, "err", errs.UserMessage(err))
			stats.Failures = append(stats.Failures, FileError{Path: path, Err: err})
			continue
		}
		if !glyph.IsUprightBar(g, opts.MaxBarWidth) {
			stats.Filtered++
			continue
		}
		if err := copyFile(path, filepath.Join(barDir, filepath.Base(path))); err != nil {
			stats.Failures = append(stats.Failures, FileError{Path: path, Err: err})
			continue
		}
		stats.Written++
	}
	opts.Logger.Debug("extracted bars", "selected", stats.Written, "filtered", stats.Filtered)
	return stats, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return errs.Wrap(errs.ErrCodeSourceRead, err, "read %s", src)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return errs.Wrap(errs.ErrCodeWriteFailed, err, "write %s", dst)
	}
	return nil
}
