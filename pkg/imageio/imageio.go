// Package imageio reads and writes grayscale raster files as grids.
//
// Decoding accepts every format registered with the standard image package:
// PNG, JPEG and GIF from the standard library plus BMP, TIFF and WebP from
// golang.org/x/image. Encoding supports PNG and JPEG.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/grid"
)

// Output formats.
const (
	FormatJPEG = "jpg"
	FormatPNG  = "png"
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 75

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJPEG: true,
	FormatPNG:  true,
}

// imageExts is the set of file extensions treated as images when walking pools.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// ValidateFormat checks that an output format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: jpg, png)", format)
	}
	return nil
}

// NormalizeFormat maps "jpeg" to "jpg" and lowercases the name.
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	if f == "jpeg" {
		return FormatJPEG
	}
	return f
}

// FormatFromPath derives the output format from a file extension.
func FormatFromPath(path string) (string, error) {
	f := NormalizeFormat(filepath.Ext(path))
	if err := ValidateFormat(f); err != nil {
		return "", err
	}
	return f, nil
}

// IsImage reports whether path has a decodable image extension.
func IsImage(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// Load decodes the image at path into a grid.
// Failures are reported as SOURCE_READ.
func Load(path string) (*grid.Grid, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeSourceRead, err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	g, err := Decode(f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeSourceRead, err, "decode %s", path)
	}
	return g, nil
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*grid.Grid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return grid.FromImage(img), nil
}

// Encode writes g to w in the given format. Quality only applies to JPEG;
// values outside 1..100 are clamped and 0 selects DefaultQuality.
func Encode(w io.Writer, g *grid.Grid, format string, quality int) error {
	img := g.Gray()
	switch NormalizeFormat(format) {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("image: encode PNG: %w", err)
		}
	case FormatJPEG:
		if quality == 0 {
			quality = DefaultQuality
		}
		quality = min(max(quality, 1), 100)
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("image: encode JPEG: %w", err)
		}
	default:
		return ValidateFormat(format)
	}
	return nil
}

// Save encodes g and writes it to path. The file is only created once
// encoding has succeeded. Failures are reported as WRITE_FAILED.
func Save(path string, g *grid.Grid, format string, quality int) error {
	var buf bytes.Buffer
	if err := Encode(&buf, g, format, quality); err != nil {
		return errs.Wrap(errs.ErrCodeWriteFailed, err, "encode %s", path)
	}
	if err := os.WriteFile(filepath.Clean(path), buf.Bytes(), 0644); err != nil {
		return errs.Wrap(errs.ErrCodeWriteFailed, err, "write %s", path)
	}
	return nil
}
