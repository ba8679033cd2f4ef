package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/fractiongen/pkg/cache"
	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/glyph"
	"github.com/matzehuels/fractiongen/pkg/grid"
	"github.com/matzehuels/fractiongen/pkg/imageio"
	"github.com/matzehuels/fractiongen/pkg/layout"
	"github.com/matzehuels/fractiongen/pkg/observability"
	"github.com/matzehuels/fractiongen/pkg/pool"
)

// Runner executes generation jobs.
//
// The Runner is stateless except for the logger - it doesn't store job
// results. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Generate runs one job and returns its report.
//
// Samples are independent: each uses its own random stream seeded from
// (opts.Seed, index), so the same options produce the same files regardless of
// opts.Workers. Per-sample failures are recorded in the report and never
// returned as the error. When ctx is cancelled no further samples start; the
// partial report is returned together with ctx.Err().
func (r *Runner) Generate(ctx context.Context, opts Options) (*Report, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	source := opts.Source
	if source == nil {
		source = pool.NewDirSource(opts.GlyphDir, opts.BarDir).WithCache(cache.New(opts.CacheSize))
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, errs.Wrap(errs.ErrCodeWriteFailed, err, "create output directory %s", opts.OutputDir)
	}

	report := &Report{
		RunID:       uuid.NewString(),
		Variant:     opts.variant,
		Numerator:   opts.Numerator,
		Denominator: opts.Denominator,
		OutputDir:   opts.OutputDir,
		Requested:   opts.Count,
	}
	logger := opts.Logger.With("run", report.RunID[:8], "fraction", opts.Label())

	start := time.Now()
	observability.Generation().OnBatchStart(ctx, report.RunID, string(opts.variant), opts.Count)
	logger.Info("generating samples", "variant", opts.variant, "count", opts.Count, "workers", opts.Workers)

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(opts.Workers)

	for i := range opts.Count {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res := r.sample(ctx, &opts, source, i, logger)
			observability.Generation().OnSampleComplete(ctx, report.RunID, i, string(res.Code), res.Duration)

			mu.Lock()
			defer mu.Unlock()
			report.Samples = append(report.Samples, res)
			if opts.OnSample != nil {
				opts.OnSample(res)
			}
			return nil
		})
	}
	_ = g.Wait()

	report.sortSamples()
	report.Duration = time.Since(start)
	report.Cancelled = ctx.Err() != nil
	observability.Generation().OnBatchComplete(ctx, report.RunID, report.Succeeded(), report.Failed(), report.Duration)

	logger.Info("generated samples",
		"written", report.Succeeded(),
		"failed", report.Failed(),
		"duration", report.Duration.Round(time.Millisecond))

	if report.Cancelled {
		return report, ctx.Err()
	}
	return report, nil
}

// sample draws, composes and writes sample i.
func (r *Runner) sample(ctx context.Context, opts *Options, source pool.Source, i int, logger *log.Logger) SampleResult {
	start := time.Now()
	rng := rand.New(rand.NewPCG(opts.Seed, uint64(i)))

	canvas, sources, err := r.compose(ctx, opts, source, rng)
	res := SampleResult{Index: i, Sources: sources}
	if err == nil {
		path := filepath.Join(opts.OutputDir, FileName(opts.Numerator, opts.Denominator, i, opts.Format))
		if err = imageio.Save(path, canvas, opts.Format, opts.Quality); err == nil {
			res.Path = path
		}
	}
	res.Err = err
	res.Code = errs.CodeOf(err)
	res.Duration = time.Since(start)

	switch {
	case err == nil:
		logger.Debug("wrote sample", "index", i, "path", res.Path)
	case res.Code == errs.ErrCodeLayoutOverflow:
		logger.Error("layout overflow, check gap against glyph widths",
			"index", i, "gap", opts.Gap, "sources", sources, "err", errs.UserMessage(err))
	default:
		logger.Warn("sample failed", "index", i, "code", res.Code, "sources", sources, "err", err)
	}
	return res
}

// compose picks and trims the digit glyphs, picks the bar and lays them out.
// It returns the paths drawn so far even on failure.
func (r *Runner) compose(ctx context.Context, opts *Options, source pool.Source, rng *rand.Rand) (*grid.Grid, []string, error) {
	var sources []string

	pickDigits := func(classes []glyph.Class) ([]*grid.Grid, error) {
		out := make([]*grid.Grid, 0, len(classes))
		for _, c := range classes {
			g, err := source.Pick(ctx, c, rng)
			if g.Path != "" {
				sources = append(sources, g.Path)
			}
			if err != nil {
				return nil, err
			}
			trimmed, err := glyph.Trim(g.Grid)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeMalformedGlyph, err, "trim %s", g.Path)
			}
			out = append(out, trimmed)
		}
		return out, nil
	}

	nume, err := pickDigits(opts.numClasses)
	if err != nil {
		return nil, sources, err
	}
	deno, err := pickDigits(opts.denClasses)
	if err != nil {
		return nil, sources, err
	}

	bar, err := source.Pick(ctx, glyph.ClassBar, rng)
	if bar.Path != "" {
		sources = append(sources, bar.Path)
	}
	if err != nil {
		return nil, sources, err
	}

	canvas, err := layout.Compose(opts.variant, layout.Components{
		Numerator:   nume,
		Denominator: deno,
		Bar:         bar.Grid,
	}, opts.Gap)
	return canvas, sources, err
}

// applyLogger uses the runner's logger if opts has none of its own.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
