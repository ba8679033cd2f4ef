// Package pipeline generates fraction datasets.
//
// This package implements the batch loop that turns glyph pools into fraction
// images. It is shared by the generate command and by job files, so both get
// the same defaults, validation and failure handling.
//
// # Architecture
//
// Each sample runs four stages:
//
//  1. Pick: draw one glyph per slot (digits and bar) from a pool.Source
//  2. Trim: crop every digit glyph to its ink with glyph.Trim
//  3. Compose: lay the fraction out with layout.Compose
//  4. Write: encode the canvas into the output directory
//
// A failure in any stage is recorded in that sample's SampleResult and the
// batch moves on. Only invalid options, an unusable output directory or
// cancellation end a run early.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	report, err := runner.Generate(ctx, pipeline.Options{
//	    Numerator:   "4",
//	    Denominator: "92",
//	    Gap:         1,
//	    Count:       20,
//	    GlyphDir:    "./digits/processed",
//	    OutputDir:   "./fractions",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Succeeded(), "written")
package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/glyph"
	"github.com/matzehuels/fractiongen/pkg/imageio"
	"github.com/matzehuels/fractiongen/pkg/layout"
	"github.com/matzehuels/fractiongen/pkg/pool"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Job Files
// =============================================================================

const (
	// DefaultCount is the number of samples generated per job.
	DefaultCount = 10

	// DefaultGap is the spacing in pixels between paired digits and the center line.
	DefaultGap = 1

	// DefaultFormat is the output image format.
	DefaultFormat = imageio.FormatJPEG

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultWorkers is the number of samples generated concurrently.
	DefaultWorkers = 1

	// DefaultCacheSize is the number of decoded glyphs kept in memory by
	// directory pools. A negative CacheSize disables the cache.
	DefaultCacheSize = 4096
)

// =============================================================================
// Options - Generation Configuration
// =============================================================================

// Options contains all configuration for one generation job.
type Options struct {
	// Operands
	Numerator   string `json:"numerator" toml:"numerator"`
	Denominator string `json:"denominator" toml:"denominator"`
	Variant     string `json:"variant,omitempty" toml:"variant"` // optional; must match the digit counts

	// Layout
	Gap int `json:"gap" toml:"gap"`

	// Batch
	Count   int    `json:"count" toml:"count"`
	Seed    uint64 `json:"seed,omitempty" toml:"seed"`
	Workers int    `json:"workers,omitempty" toml:"workers"`

	// Input and output
	GlyphDir  string `json:"glyph_dir" toml:"glyphs"`
	BarDir    string `json:"bar_dir,omitempty" toml:"bars"`
	OutputDir string `json:"output_dir" toml:"output"`
	Format    string `json:"format,omitempty" toml:"format"`
	Quality   int    `json:"quality,omitempty" toml:"quality"`
	CacheSize int    `json:"cache_size,omitempty" toml:"cache_size"`

	// Runtime options (not serialized)
	Logger   *log.Logger        `json:"-" toml:"-"`
	Source   pool.Source        `json:"-" toml:"-"` // overrides GlyphDir and BarDir
	OnSample func(SampleResult) `json:"-" toml:"-"` // called once per finished sample, never concurrently

	// resolved by ValidateAndSetDefaults
	variant    layout.Variant
	numClasses []glyph.Class
	denClasses []glyph.Class
	validated  bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	if err := errs.ValidateDigits("numerator", o.Numerator); err != nil {
		return err
	}
	if err := errs.ValidateDigits("denominator", o.Denominator); err != nil {
		return err
	}

	v, err := layout.VariantFor(len(o.Numerator), len(o.Denominator))
	if err != nil {
		return err
	}
	if o.Variant != "" {
		explicit, err := layout.ParseVariant(o.Variant)
		if err != nil {
			return err
		}
		if explicit != v {
			return errs.New(errs.ErrCodeInvalidVariant,
				"variant %s does not match %s/%s (want %s)", explicit, o.Numerator, o.Denominator, v)
		}
	}

	if o.Count < 1 {
		return errs.New(errs.ErrCodeInvalidInput, "count must be at least 1, got %d", o.Count)
	}
	if o.Gap < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "gap must not be negative, got %d", o.Gap)
	}
	if o.Workers < 1 {
		return errs.New(errs.ErrCodeInvalidInput, "workers must be at least 1, got %d", o.Workers)
	}
	if o.Quality < 0 || o.Quality > 100 {
		return errs.New(errs.ErrCodeInvalidInput, "quality must be within 0..100, got %d", o.Quality)
	}

	o.Format = imageio.NormalizeFormat(o.Format)
	if err := imageio.ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := errs.ValidateDir("output", o.OutputDir); err != nil {
		return err
	}
	if o.Source == nil {
		if err := errs.ValidateDir("glyph", o.GlyphDir); err != nil {
			return err
		}
	}

	// Digits were validated above, so parsing cannot fail
	o.numClasses, _ = glyph.ParseDigits(o.Numerator)
	o.denClasses, _ = glyph.ParseDigits(o.Denominator)
	o.variant = v
	o.Variant = string(v)
	o.validated = true
	return nil
}

// SetDefaults fills zero-valued fields with package defaults.
// Gap has no zero default: 0 is a valid spacing, so callers that want
// DefaultGap must set it.
func (o *Options) SetDefaults() {
	if o.Count == 0 {
		o.Count = DefaultCount
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.CacheSize == 0 {
		o.CacheSize = DefaultCacheSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ResolvedVariant returns the layout variant after validation.
func (o *Options) ResolvedVariant() layout.Variant {
	return o.variant
}

// Label returns the fraction as text, e.g. "4/92".
func (o *Options) Label() string {
	return o.Numerator + "/" + o.Denominator
}

// FileName returns the output name of sample index, e.g. "4_over_92_id_3.jpg".
func FileName(numerator, denominator string, index int, format string) string {
	return fmt.Sprintf("%s_over_%s_id_%d.%s", numerator, denominator, index, format)
}
