package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failure counts.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// stdout is where status output goes. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, "  "+StyleDim.Render(msg))
}

// printDir prints an output directory line.
func printDir(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Fprintln(stdout)
}

// =============================================================================
// Reports
// =============================================================================

// printReport prints the outcome of one generation job.
func printReport(r *pipeline.Report) {
	label := r.Numerator + "/" + r.Denominator
	switch {
	case r.Cancelled:
		printWarning("%s cancelled after %d of %d samples", label, r.Attempted(), r.Requested)
	case r.Failed() == 0:
		printSuccess("%s: %d samples (%s)", label, r.Succeeded(), r.Variant)
	case r.Succeeded() == 0:
		printError("%s: all %d samples failed (%s)", label, r.Failed(), r.Variant)
	default:
		printWarning("%s: %d written, %d failed (%s)", label, r.Succeeded(), r.Failed(), r.Variant)
	}
	printDir(r.OutputDir)

	byCode := r.FailuresByCode()
	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)
	for _, code := range codes {
		printDetail("%s × %d", code, byCode[errs.Code(code)])
	}
	if byCode[errs.ErrCodeLayoutOverflow] > 0 {
		printDetail("lower --gap or use wider glyphs to avoid LAYOUT_OVERFLOW")
	}
}

// summaryTable renders one row per job report.
func summaryTable(reports []*pipeline.Report) string {
	rows := make([][]string, 0, len(reports))
	var written, failed int
	for _, r := range reports {
		rows = append(rows, []string{
			r.Numerator + "/" + r.Denominator,
			string(r.Variant),
			strconv.Itoa(r.Succeeded()),
			strconv.Itoa(r.Failed()),
			r.Duration.Round(time.Millisecond).String(),
			r.OutputDir,
		})
		written += r.Succeeded()
		failed += r.Failed()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Fraction", "Variant", "Written", "Failed", "Time", "Output").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			switch col {
			case 2:
				return styleCell.Foreground(colorGreen)
			case 3:
				if row >= 0 && row < len(reports) && reports[row].Failed() > 0 {
					return styleCell.Foreground(colorRed)
				}
				return styleCell.Foreground(colorDim)
			case 4, 5:
				return styleCell.Foreground(colorGray)
			}
			return styleCell
		})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d jobs · %d written · %d failed", len(reports), written, failed)))
	return b.String()
}

// printSummary prints the batch table for a multi-job run.
func printSummary(reports []*pipeline.Report) {
	if len(reports) == 0 {
		return
	}
	fmt.Fprintln(stdout, StyleTitle.Render("Summary"))
	fmt.Fprintln(stdout, summaryTable(reports))
}
