// Package pkg provides the core libraries for fractiongen synthetic fraction
// generation.
//
// # Overview
//
// fractiongen assembles images of handwritten fractions out of pools of
// individually scanned digits and fraction bars. The result is a labelled
// training set for recognizers: every file name carries the fraction it
// shows. The pkg directory is organized into three areas:
//
//  1. Imaging - pixel grids, glyph trimming and fraction layout
//  2. Pools - glyph sources, preparation and caching
//  3. Orchestration - the batch pipeline, job files and tree inversion
//
// # Architecture
//
// The typical data flow through fractiongen:
//
//	Raw digit scans
//	         ↓
//	    [pool] package (trim into glyph pools, extract bars)
//	         ↓
//	    [pool.Source] (pick one glyph per digit and bar)
//	         ↓
//	    [glyph] + [layout] packages (trim, compose the canvas)
//	         ↓
//	    PNG/JPG output named <num>_over_<den>_id_<n>
//
// # Quick Start
//
// Generate twenty images of 4/92 from a prepared pool:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/fractiongen/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil)
//	report, err := runner.Generate(context.Background(), pipeline.Options{
//	    Numerator:   "4",
//	    Denominator: "92",
//	    Count:       20,
//	    GlyphDir:    "digits/processed",
//	    OutputDir:   "fractions",
//	})
//	if err != nil {
//	    return err
//	}
//	for code, n := range report.FailuresByCode() {
//	    fmt.Println(code, n)
//	}
//
// # Main Packages
//
// ## Imaging
//
// [grid] - Grayscale pixel grid with cropping, blitting, inversion and
// conversion to and from image.Image.
//
// [glyph] - Glyph classes (digits 0-9 and the bar), ink bounds, trimming and
// bar scaling.
//
// [layout] - Fraction variants (simple, complex single, complex double) and
// the placement plans that compose glyphs onto a canvas.
//
// [imageio] - Image decoding (PNG, JPEG, GIF, BMP, TIFF, WebP) and encoding
// to PNG or JPEG.
//
// ## Pools
//
// [pool] - Glyph sources backed by class directories or memory, plus the
// trim and bar extraction steps that prepare a pool from raw scans.
//
// [cache] - Bounded in-memory cache of decoded glyphs shared across samples.
//
// ## Orchestration
//
// [pipeline] - Batch generation (pick → trim → compose → write) used by the
// CLI and job files. Per-sample failures are collected into a Report.
//
// [config] - TOML job files listing several fractions with shared defaults.
//
// [invert] - Inverts every image under a directory tree into a mirror tree.
//
// [errors] - Error codes and user-facing messages shared by all packages.
//
// [observability] - Hooks for progress reporting on batches and preparation.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/layout/...      # Specific package
//	go test ./internal/cli/...    # Command line
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/fractiongen/pkg/grid
// [glyph]: https://pkg.go.dev/github.com/matzehuels/fractiongen/pkg/glyph
// [layout]: https://pkg.go.dev/github.com/matzehuels/fractiongen/pkg/layout
// [imageio]: https://pkg.go.dev/github.com/matzehuels/fractiongen/pkg/imageio
// [pool]: https://pkg.go.dev/github.com/matzehuels/fractiongen/pkg/pool
// [pool.Source]: https://pkg.go.dev/github.com/matzehuels/fractiongen/pkg/pool#Source
// [cache]: https://pkg.go.dev/github.com/matzehuels/fractiongen/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/fractiongen/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/fractiongen/pkg/config
// [invert]: https://pkg.go.dev/github.com/matzehuels/fractiongen/pkg/invert
// [errors]: https://pkg.go.dev/github.com/matzehuels/fractiongen/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/fractiongen/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/fractiongen/pkg/buildinfo
package pkg
