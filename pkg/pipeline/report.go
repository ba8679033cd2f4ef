package pipeline

import (
	"sort"
	"time"

	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/layout"
)

// SampleResult is the outcome of one sample.
type SampleResult struct {
	Index    int
	Path     string    // written file; empty on failure
	Sources  []string  // glyph files drawn for the sample, in slot order
	Code     errs.Code // empty on success
	Err      error
	Duration time.Duration
}

// OK reports whether the sample was written.
func (s SampleResult) OK() bool {
	return s.Err == nil
}

// Report summarizes a generation run.
type Report struct {
	RunID       string
	Variant     layout.Variant
	Numerator   string
	Denominator string
	OutputDir   string

	// Requested is the configured sample count. Fewer samples are attempted
	// only when the run was cancelled.
	Requested int

	// Samples holds one result per attempted sample, ordered by index.
	Samples []SampleResult

	Duration  time.Duration
	Cancelled bool
}

// Attempted returns the number of samples that ran.
func (r *Report) Attempted() int {
	return len(r.Samples)
}

// Succeeded returns the number of samples written.
func (r *Report) Succeeded() int {
	n := 0
	for _, s := range r.Samples {
		if s.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of samples that failed.
func (r *Report) Failed() int {
	return r.Attempted() - r.Succeeded()
}

// Failures returns the failed samples, ordered by index.
func (r *Report) Failures() []SampleResult {
	var out []SampleResult
	for _, s := range r.Samples {
		if !s.OK() {
			out = append(out, s)
		}
	}
	return out
}

// FailuresByCode counts failed samples per reason code.
func (r *Report) FailuresByCode() map[errs.Code]int {
	out := make(map[errs.Code]int)
	for _, s := range r.Samples {
		if !s.OK() {
			out[s.Code]++
		}
	}
	return out
}

// Paths returns the written files, ordered by sample index.
func (r *Report) Paths() []string {
	var out []string
	for _, s := range r.Samples {
		if s.OK() {
			out = append(out, s.Path)
		}
	}
	return out
}

func (r *Report) sortSamples() {
	sort.Slice(r.Samples, func(i, j int) bool {
		return r.Samples[i].Index < r.Samples[j].Index
	})
}
