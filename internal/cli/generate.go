package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fractiongen/pkg/config"
	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/pipeline"
)

// generateFlags holds the command-line flags for the generate command.
type generateFlags struct {
	opts   pipeline.Options
	config string // TOML job file; replaces -n/-d
	tui    bool   // interactive progress view
}

// generateCommand creates the generate command for composing fraction images.
func (c *CLI) generateCommand() *cobra.Command {
	flags := generateFlags{
		opts: pipeline.Options{
			Gap:       pipeline.DefaultGap,
			Count:     pipeline.DefaultCount,
			Seed:      pipeline.DefaultSeed,
			Workers:   pipeline.DefaultWorkers,
			Format:    pipeline.DefaultFormat,
			GlyphDir:  defaultGlyphDir,
			OutputDir: defaultOutputDir,
		},
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compose handwritten fraction images",
		Long: `Compose handwritten fraction images from digit glyph pools.

Each sample draws one glyph per digit and one fraction bar at random, crops the
digits to their ink and lays them out as a simple (a/b), complex-single (a/bc)
or complex-double (ab/cd) fraction. Files are named
<numerator>_over_<denominator>_id_<index>.<format>.

A sample that cannot be built (unreadable glyph, blank glyph, layout overflow)
is logged and skipped; the batch continues.

With --config, jobs are read from a TOML file instead of -n/-d. Flags given
explicitly on the command line override the file's top-level settings.`,
		Example: `  fractiongen generate -n 4 -d 92 --gap 1 --count 20
  fractiongen generate -n 3 -d 7 --glyphs digits/processed --out data --format png --workers 4
  fractiongen generate --config jobs.toml --tui`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := c.generateJobs(cmd, &flags)
			if err != nil {
				return err
			}
			if flags.tui {
				return c.runGenerateTUI(cmd.Context(), jobs)
			}
			return c.runGenerate(cmd.Context(), jobs)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.opts.Numerator, "numerator", "n", "", "numerator digits (1 or 2)")
	f.StringVarP(&flags.opts.Denominator, "denominator", "d", "", "denominator digits (1 or 2)")
	f.StringVar(&flags.opts.Variant, "variant", "", "layout variant: simple, complex-single, complex-double (default: inferred)")
	f.IntVar(&flags.opts.Gap, "gap", flags.opts.Gap, "pixels between paired digits and the center line")
	f.IntVarP(&flags.opts.Count, "count", "c", flags.opts.Count, "samples to generate")
	f.StringVar(&flags.opts.GlyphDir, "glyphs", flags.opts.GlyphDir, "processed digit pool (one directory per digit)")
	f.StringVar(&flags.opts.BarDir, "bars", "", "fraction bar pool (default: <glyphs>/one_as_fraction_bar)")
	f.StringVarP(&flags.opts.OutputDir, "out", "o", flags.opts.OutputDir, "output directory")
	f.StringVarP(&flags.opts.Format, "format", "f", flags.opts.Format, "output format: jpg, png")
	f.IntVar(&flags.opts.Quality, "quality", 0, "JPEG quality 1-100 (default 75)")
	f.Uint64Var(&flags.opts.Seed, "seed", flags.opts.Seed, "random seed")
	f.IntVarP(&flags.opts.Workers, "workers", "w", flags.opts.Workers, "samples generated concurrently")
	f.IntVar(&flags.opts.CacheSize, "cache-size", pipeline.DefaultCacheSize, "decoded glyphs kept in memory (negative disables)")
	f.StringVar(&flags.config, "config", "", "TOML job file")
	f.BoolVar(&flags.tui, "tui", false, "show interactive progress")

	cmd.MarkFlagsMutuallyExclusive("config", "numerator")
	cmd.MarkFlagsMutuallyExclusive("config", "denominator")
	cmd.MarkFlagsRequiredTogether("numerator", "denominator")

	return cmd
}

// generateJobs builds the validated job list from flags or the job file.
func (c *CLI) generateJobs(cmd *cobra.Command, flags *generateFlags) ([]pipeline.Options, error) {
	var jobs []pipeline.Options
	if flags.config != "" {
		file, err := config.Load(flags.config)
		if err != nil {
			return nil, err
		}
		overrideFromFlags(cmd, file, flags.opts)
		if jobs, err = file.Options(); err != nil {
			return nil, err
		}
		if !flags.tui {
			printInfo("%d jobs from %s", len(jobs), flags.config)
		}
	} else {
		if !cmd.Flags().Changed("numerator") {
			return nil, errs.New(errs.ErrCodeInvalidInput, "either -n/-d or --config is required")
		}
		jobs = []pipeline.Options{flags.opts}
	}

	logger := c.Logger
	if flags.tui {
		// The progress view owns the terminal; failures are shown there.
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	for i := range jobs {
		jobs[i].Logger = logger
		if err := jobs[i].ValidateAndSetDefaults(); err != nil {
			return nil, err
		}
	}
	return jobs, nil
}

// overrideFromFlags copies explicitly set flags over the job file's top-level settings.
func overrideFromFlags(cmd *cobra.Command, file *config.File, opts pipeline.Options) {
	changed := cmd.Flags().Changed
	if changed("glyphs") {
		file.Glyphs = opts.GlyphDir
		for i := range file.Jobs {
			file.Jobs[i].Glyphs = ""
		}
	}
	if changed("bars") {
		file.Bars = opts.BarDir
		for i := range file.Jobs {
			file.Jobs[i].Bars = ""
		}
	}
	if changed("out") {
		file.Output = opts.OutputDir
		for i := range file.Jobs {
			file.Jobs[i].Output = ""
		}
	}
	if changed("format") {
		file.Format = opts.Format
		for i := range file.Jobs {
			file.Jobs[i].Format = ""
		}
	}
	if changed("quality") {
		file.Quality = opts.Quality
	}
	if changed("seed") {
		file.Seed = opts.Seed
		for i := range file.Jobs {
			file.Jobs[i].Seed = nil
		}
	}
	if changed("workers") {
		file.Workers = opts.Workers
	}
	if changed("cache-size") {
		file.CacheSize = opts.CacheSize
	}
	if changed("count") {
		file.Count = opts.Count
		for i := range file.Jobs {
			file.Jobs[i].Count = 0
		}
	}
	if changed("gap") {
		gap := opts.Gap
		file.Gap = &gap
		for i := range file.Jobs {
			file.Jobs[i].Gap = nil
		}
	}
}

// runGenerate runs jobs one after another with log output.
func (c *CLI) runGenerate(ctx context.Context, jobs []pipeline.Options) error {
	runner := c.newRunner()
	prog := newProgress(c.Logger)

	var reports []*pipeline.Report
	for _, job := range jobs {
		report, err := runner.Generate(ctx, job)
		if report != nil {
			reports = append(reports, report)
			printReport(report)
		}
		if err != nil {
			return err
		}
	}

	if len(reports) > 1 {
		printNewline()
		printSummary(reports)
	}
	prog.done("batch finished", "jobs", len(reports), "written", totalWritten(reports))
	return batchError(reports)
}

// runGenerateTUI runs jobs in the background and shows their progress.
func (c *CLI) runGenerateTUI(ctx context.Context, jobs []pipeline.Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(jobs, cancel), tea.WithOutput(os.Stderr))
	runner := c.newRunner()

	go func() {
		var err error
		for i, job := range jobs {
			if ctx.Err() != nil {
				break
			}
			p.Send(jobStartMsg{job: i})
			job.OnSample = func(res pipeline.SampleResult) {
				p.Send(sampleMsg{job: i, result: res})
			}
			var report *pipeline.Report
			report, err = runner.Generate(ctx, job)
			p.Send(jobDoneMsg{job: i, report: report})
			if err != nil {
				break
			}
		}
		p.Send(batchDoneMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress view: %w", err)
	}

	m, ok := final.(ProgressModel)
	if !ok {
		return ctx.Err()
	}
	for _, r := range m.Reports {
		printReport(r)
	}
	if len(m.Reports) > 1 {
		printNewline()
		printSummary(m.Reports)
	}
	if m.Aborted {
		return context.Canceled
	}
	if m.Err != nil {
		return m.Err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return batchError(m.Reports)
}

func totalWritten(reports []*pipeline.Report) int {
	n := 0
	for _, r := range reports {
		n += r.Succeeded()
	}
	return n
}

// batchError fails the command when samples were attempted but none was written.
func batchError(reports []*pipeline.Report) error {
	attempted := 0
	for _, r := range reports {
		attempted += r.Attempted()
	}
	if attempted > 0 && totalWritten(reports) == 0 {
		return errs.New(errs.ErrCodeWriteFailed, "no samples written (%d failed)", attempted)
	}
	return nil
}
