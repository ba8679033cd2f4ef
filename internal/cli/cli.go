// Package cli implements the fractiongen command-line interface.
//
// This package provides commands for generating synthetic handwritten
// fraction images from digit glyph pools, preparing those pools from raw
// digit images, and inverting finished datasets. The CLI is built using cobra
// and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Compose fraction images for one fraction or a TOML job file
//   - prepare trim: Crop raw digit images to their ink
//   - prepare bars: Select upright "1" strokes as fraction bars
//   - invert: Mirror a dataset with inverted pixel values
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fractiongen/pkg/buildinfo"
	"github.com/matzehuels/fractiongen/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "fractiongen"

	// defaultGlyphDir is the processed digit pool used when --glyphs is not given.
	defaultGlyphDir = "digits/processed"

	// defaultOutputDir is the dataset directory used when --out is not given.
	defaultOutputDir = "fractions"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Fractiongen composes handwritten fraction images from digit glyphs",
		Long: `Fractiongen is a CLI tool for building synthetic datasets of handwritten fractions.

It draws digit glyphs and fraction bars from on-disk pools, crops each digit to
its ink, and lays numerator, bar and denominator out on a grayscale canvas that
is written as an image file named after the fraction and sample index.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.prepareCommand())
	root.AddCommand(c.invertCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}
