// Package config loads TOML job files.
//
// A job file sets shared defaults at the top level and lists one [[job]]
// table per fraction:
//
//	glyphs  = "digits/processed"
//	output  = "fractions"
//	format  = "jpg"
//	seed    = 42
//	workers = 4
//	gap     = 1
//
//	[[job]]
//	numerator   = "4"
//	denominator = "92"
//	count       = 20
//
//	[[job]]
//	numerator   = "41"
//	denominator = "92"
//	gap         = 2
//	output      = "fractions/complex"
//
// Relative paths are resolved against the directory holding the file.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/pipeline"
)

// File is a parsed job file.
type File struct {
	Glyphs  string `toml:"glyphs"`
	Bars    string `toml:"bars"`
	Output  string `toml:"output"`
	Format  string `toml:"format"`
	Quality int    `toml:"quality"`
	Seed    uint64 `toml:"seed"`
	Workers int    `toml:"workers"`
	Gap     *int   `toml:"gap"`
	Count   int    `toml:"count"`

	// CacheSize bounds the decoded glyphs kept in memory; negative disables it.
	CacheSize int `toml:"cache_size"`

	Jobs []Job `toml:"job"`
}

// Job is one [[job]] table. Empty fields inherit the file defaults.
type Job struct {
	Numerator   string  `toml:"numerator"`
	Denominator string  `toml:"denominator"`
	Variant     string  `toml:"variant"`
	Gap         *int    `toml:"gap"`
	Count       int     `toml:"count"`
	Seed        *uint64 `toml:"seed"`
	Glyphs      string  `toml:"glyphs"`
	Bars        string  `toml:"bars"`
	Output      string  `toml:"output"`
	Format      string  `toml:"format"`
}

// Load reads and parses the job file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeSourceRead, err, "read config %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errs.Wrap(errs.GetCode(err), err, "config %s", path)
	}
	f.resolvePaths(filepath.Dir(path))
	return f, nil
}

// Parse decodes a job file. Unknown keys are rejected so that typos do not
// silently fall back to defaults.
func Parse(data []byte) (*File, error) {
	var f File
	meta, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errs.New(errs.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if len(f.Jobs) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no [[job]] tables")
	}
	return &f, nil
}

// Options returns the pipeline options of every job in file order, with file
// defaults applied. Each entry is checked with ValidateAndSetDefaults on a
// copy, so the returned options are still unvalidated and accept a logger and
// source from the caller.
func (f *File) Options() ([]pipeline.Options, error) {
	out := make([]pipeline.Options, 0, len(f.Jobs))
	for i, job := range f.Jobs {
		opts := f.merge(job)

		check := opts
		if err := check.ValidateAndSetDefaults(); err != nil {
			return nil, errs.Wrap(errs.GetCode(err), err, "job %d (%s/%s)", i+1, job.Numerator, job.Denominator)
		}
		out = append(out, opts)
	}
	return out, nil
}

func (f *File) merge(job Job) pipeline.Options {
	opts := pipeline.Options{
		Numerator:   job.Numerator,
		Denominator: job.Denominator,
		Variant:     job.Variant,
		Gap:         pipeline.DefaultGap,
		Count:       firstNonZero(job.Count, f.Count),
		Seed:        f.Seed,
		Workers:     f.Workers,
		GlyphDir:    firstNonEmpty(job.Glyphs, f.Glyphs),
		BarDir:      firstNonEmpty(job.Bars, f.Bars),
		OutputDir:   firstNonEmpty(job.Output, f.Output),
		Format:      firstNonEmpty(job.Format, f.Format),
		Quality:     f.Quality,
		CacheSize:   f.CacheSize,
	}
	switch {
	case job.Gap != nil:
		opts.Gap = *job.Gap
	case f.Gap != nil:
		opts.Gap = *f.Gap
	}
	if job.Seed != nil {
		opts.Seed = *job.Seed
	}
	return opts
}

func (f *File) resolvePaths(base string) {
	resolve := func(p *string) {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	resolve(&f.Glyphs)
	resolve(&f.Bars)
	resolve(&f.Output)
	for i := range f.Jobs {
		resolve(&f.Jobs[i].Glyphs)
		resolve(&f.Jobs[i].Bars)
		resolve(&f.Jobs[i].Output)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
