package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/layout"
	"github.com/matzehuels/fractiongen/pkg/pipeline"
)

// captureStdout redirects status output to a buffer for the rest of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func testReport(num, den string, variant layout.Variant, codes ...errs.Code) *pipeline.Report {
	r := &pipeline.Report{
		Variant:     variant,
		Numerator:   num,
		Denominator: den,
		OutputDir:   "fractions",
		Requested:   len(codes),
		Duration:    1500 * time.Millisecond,
	}
	for i, code := range codes {
		s := pipeline.SampleResult{Index: i, Code: code}
		if code != "" {
			s.Err = errs.New(code, "sample %d", i)
		} else {
			s.Path = pipeline.FileName(num, den, i, "jpg")
		}
		r.Samples = append(r.Samples, s)
	}
	return r
}

func TestPrintReport(t *testing.T) {
	tests := []struct {
		name   string
		report *pipeline.Report
		want   []string
	}{
		{
			name:   "all written",
			report: testReport("4", "9", layout.Simple, "", "", ""),
			want:   []string{"4/9: 3 samples (simple)", "fractions"},
		},
		{
			name:   "partial",
			report: testReport("41", "92", layout.ComplexDouble, "", errs.ErrCodeLayoutOverflow, errs.ErrCodeSourceRead),
			want:   []string{"1 written, 2 failed", "LAYOUT_OVERFLOW × 1", "SOURCE_READ × 1", "--gap"},
		},
		{
			name:   "all failed",
			report: testReport("4", "92", layout.ComplexSingle, errs.ErrCodeEmptyPool),
			want:   []string{"all 1 samples failed", "EMPTY_POOL × 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStdout(t)
			printReport(tt.report)
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("printReport() output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestPrintReportCancelled(t *testing.T) {
	out := captureStdout(t)
	r := testReport("4", "9", layout.Simple, "", "")
	r.Requested = 10
	r.Cancelled = true
	printReport(r)

	if !strings.Contains(out.String(), "cancelled after 2 of 10") {
		t.Errorf("printReport() = %q", out.String())
	}
}

func TestSummaryTable(t *testing.T) {
	got := summaryTable([]*pipeline.Report{
		testReport("4", "9", layout.Simple, "", ""),
		testReport("41", "92", layout.ComplexDouble, "", errs.ErrCodeLayoutOverflow),
	})

	for _, want := range []string{"Fraction", "Variant", "4/9", "41/92", "complex-double", "2 jobs", "3 written", "1 failed"} {
		if !strings.Contains(got, want) {
			t.Errorf("summaryTable() missing %q:\n%s", want, got)
		}
	}
}

func TestPrintSummaryEmpty(t *testing.T) {
	out := captureStdout(t)
	printSummary(nil)
	if out.Len() != 0 {
		t.Errorf("printSummary(nil) wrote %q", out.String())
	}
}
