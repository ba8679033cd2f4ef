package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fractiongen/pkg/glyph"
	"github.com/matzehuels/fractiongen/pkg/pool"
)

// prepareCommand creates the prepare command group for building glyph pools.
func (c *CLI) prepareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Build glyph pools from raw digit images",
		Long: `Build glyph pools from raw digit images.

A pool has one directory per digit (0-9) holding light-on-dark grayscale
images. 'prepare trim' crops a raw pool to the digits' ink; 'prepare bars'
selects the narrow upright strokes of the digit 1 as fraction bars.`,
	}

	cmd.AddCommand(c.prepareTrimCommand())
	cmd.AddCommand(c.prepareBarsCommand())

	return cmd
}

// prepareTrimCommand creates the "prepare trim" subcommand.
func (c *CLI) prepareTrimCommand() *cobra.Command {
	var raw, out string

	cmd := &cobra.Command{
		Use:     "trim",
		Short:   "Crop every digit image to its ink",
		Example: "  fractiongen prepare trim --raw digits/raw --out digits/processed",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTrim(cmd.Context(), raw, out)
		},
	}

	cmd.Flags().StringVar(&raw, "raw", "digits/raw", "raw digit pool")
	cmd.Flags().StringVarP(&out, "out", "o", defaultGlyphDir, "processed digit pool")

	return cmd
}

// runTrim trims the raw pool and reports the counts.
func (c *CLI) runTrim(ctx context.Context, raw, out string) error {
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Trimming digit glyphs...")
	spinner.Start()

	stats, err := pool.TrimPool(ctx, raw, out, pool.PrepOptions{Logger: c.Logger})
	if err != nil {
		spinner.StopWithError("Trim failed")
		return err
	}
	spinner.StopWithSuccess("Trimmed %d glyphs", stats.Written)
	printDir(out)
	printPrepFailures(stats)
	prog.done("trimmed pool", "written", stats.Written, "skipped", stats.Skipped())
	return nil
}

// prepareBarsCommand creates the "prepare bars" subcommand.
func (c *CLI) prepareBarsCommand() *cobra.Command {
	var digits, out string
	var maxWidth int

	cmd := &cobra.Command{
		Use:   "bars",
		Short: "Select upright 1 strokes as fraction bars",
		Long: `Select upright "1" strokes as fraction bars.

Every trimmed glyph in --digits narrower than --max-width pixels is copied
unchanged into --out. Run 'prepare trim' first so widths reflect the ink.`,
		Example: "  fractiongen prepare bars --digits digits/processed/1 --out digits/processed/one_as_fraction_bar",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBars(cmd.Context(), digits, out, maxWidth)
		},
	}

	cmd.Flags().StringVar(&digits, "digits", filepath.Join(defaultGlyphDir, "1"), "trimmed glyphs of the digit 1")
	cmd.Flags().StringVarP(&out, "out", "o", filepath.Join(defaultGlyphDir, pool.DefaultBarDirName), "fraction bar pool")
	cmd.Flags().IntVar(&maxWidth, "max-width", glyph.DefaultBarMaxWidth, "exclusive width limit in pixels")

	return cmd
}

// runBars extracts the bar pool and reports the counts.
func (c *CLI) runBars(ctx context.Context, digits, out string, maxWidth int) error {
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Selecting fraction bars...")
	spinner.Start()

	stats, err := pool.ExtractBars(ctx, digits, out, pool.PrepOptions{MaxBarWidth: maxWidth, Logger: c.Logger})
	if err != nil {
		spinner.StopWithError("Bar extraction failed")
		return err
	}
	if stats.Written == 0 {
		spinner.Stop()
		printWarning("No glyph narrower than %d px in %s", maxWidth, digits)
	} else {
		spinner.StopWithSuccess("Selected %d bars", stats.Written)
		printDir(out)
	}
	printDetail("%d glyphs too wide", stats.Filtered)
	printPrepFailures(stats)
	prog.done("extracted bars", "selected", stats.Written, "filtered", stats.Filtered, "skipped", stats.Skipped())
	return nil
}

// printPrepFailures lists the files a preparation run skipped.
func printPrepFailures(stats pool.PrepStats) {
	if stats.Skipped() == 0 {
		return
	}
	printWarning("%d files skipped", stats.Skipped())
	for _, f := range stats.Failures {
		printDetail("%s", f.Path)
	}
}
