package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fractiongen/pkg/invert"
)

// invertCommand creates the invert command for color-inverting a dataset.
func (c *CLI) invertCommand() *cobra.Command {
	var (
		in, out string
		opts    invert.Options
	)

	cmd := &cobra.Command{
		Use:   "invert",
		Short: "Write a dark-on-light copy of a dataset",
		Long: `Write a dark-on-light copy of a dataset.

Every .jpg, .jpeg and .png file under --in is written to the same relative path
under --out with each pixel replaced by 255 minus its value. Other files are
ignored. Unreadable files are reported and skipped.`,
		Example: "  fractiongen invert --in fractions --out fractions_inverted",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInvert(cmd.Context(), in, out, opts)
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", defaultOutputDir, "dataset to invert")
	cmd.Flags().StringVarP(&out, "out", "o", defaultOutputDir+"_inverted", "output directory")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 1, "files converted concurrently")
	cmd.Flags().IntVar(&opts.Quality, "quality", 0, "JPEG quality 1-100 (default 75)")

	return cmd
}

// runInvert inverts the tree and reports the counts.
func (c *CLI) runInvert(ctx context.Context, in, out string, opts invert.Options) error {
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Inverting "+in+"...")
	spinner.Start()

	opts.Logger = c.Logger
	stats, err := invert.Tree(ctx, in, out, opts)
	if err != nil {
		spinner.StopWithError("Invert failed after %d files", stats.Written)
		return err
	}
	spinner.StopWithSuccess("Inverted %d images", stats.Written)
	printDir(out)
	if stats.Ignored > 0 {
		printDetail("%d non-image files ignored", stats.Ignored)
	}
	if n := len(stats.Failures); n > 0 {
		printWarning("%d files skipped", n)
		for _, f := range stats.Failures {
			printDetail("%s", f.Path)
		}
	}
	prog.done("inverted tree", "written", stats.Written, "skipped", len(stats.Failures))
	return nil
}
