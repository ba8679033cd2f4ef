package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/fractiongen/pkg/pipeline"
)

// Progress styles
var (
	barFilledStyle = lipgloss.NewStyle().Foreground(colorGreen)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
	jobActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	jobDoneStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	jobQueuedStyle = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	progressWidth = 30 // cells in the progress bar
	maxRecent     = 5  // failures listed under the jobs
)

// =============================================================================
// Messages
// =============================================================================

// jobStartMsg announces that job starts running.
type jobStartMsg struct{ job int }

// sampleMsg carries one finished sample of job.
type sampleMsg struct {
	job    int
	result pipeline.SampleResult
}

// jobDoneMsg carries the report of a finished job.
type jobDoneMsg struct {
	job    int
	report *pipeline.Report
}

// batchDoneMsg ends the program once every job has run.
type batchDoneMsg struct{ err error }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// =============================================================================
// ProgressModel - Live generation progress
// =============================================================================

// jobView is the display state of one job.
type jobView struct {
	label     string
	variant   string
	total     int
	written   int
	failed    int
	started   bool
	finished  bool
	cancelled bool
}

func (j jobView) attempted() int { return j.written + j.failed }

// ProgressModel is the bubbletea model that shows per-job progress bars
// while generation runs in the background.
type ProgressModel struct {
	Jobs    []jobView
	Recent  []string // latest failure lines
	Reports []*pipeline.Report
	Err     error
	Aborted bool // user pressed q or ctrl+c

	frame  int
	done   bool
	cancel func()
}

// NewProgressModel creates a model for jobs. cancel is called when the user
// quits before the batch finishes.
func NewProgressModel(jobs []pipeline.Options, cancel func()) ProgressModel {
	views := make([]jobView, len(jobs))
	for i, j := range jobs {
		views[i] = jobView{label: j.Label(), variant: string(j.ResolvedVariant()), total: j.Count}
	}
	return ProgressModel{Jobs: views, cancel: cancel}
}

func (m ProgressModel) Init() tea.Cmd {
	return tick()
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.done {
				m.Aborted = true
				if m.cancel != nil {
					m.cancel()
				}
			}
			return m, nil
		}
	case tickMsg:
		if m.done {
			return m, nil
		}
		m.frame++
		return m, tick()
	case jobStartMsg:
		m.Jobs[msg.job].started = true
	case sampleMsg:
		j := &m.Jobs[msg.job]
		if msg.result.OK() {
			j.written++
		} else {
			j.failed++
			line := fmt.Sprintf("%s #%d %s", j.label, msg.result.Index, msg.result.Code)
			m.Recent = append(m.Recent, line)
			if len(m.Recent) > maxRecent {
				m.Recent = m.Recent[len(m.Recent)-maxRecent:]
			}
		}
	case jobDoneMsg:
		j := &m.Jobs[msg.job]
		j.finished = true
		if msg.report != nil {
			j.cancelled = msg.report.Cancelled
			m.Reports = append(m.Reports, msg.report)
		}
	case batchDoneMsg:
		m.Err = msg.err
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Generating fractions"))
	b.WriteString("\n")
	if m.Aborted && !m.done {
		b.WriteString(StyleWarning.Render("stopping after running samples finish..."))
	} else {
		b.WriteString(StyleDim.Render("q quit"))
	}
	b.WriteString("\n\n")

	for _, j := range m.Jobs {
		b.WriteString(m.jobLine(j))
		b.WriteString("\n")
	}

	if len(m.Recent) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("recent failures"))
		b.WriteString("\n")
		for _, line := range m.Recent {
			b.WriteString("  " + StyleError.Render(line) + "\n")
		}
	}
	return b.String()
}

func (m ProgressModel) jobLine(j jobView) string {
	icon := " "
	style := jobQueuedStyle
	switch {
	case j.finished && j.cancelled:
		icon, style = styleIconWarning.Render(iconWarning), jobDoneStyle
	case j.finished && j.written == 0 && j.failed > 0:
		icon, style = styleIconError.Render(iconError), jobDoneStyle
	case j.finished:
		icon, style = styleIconSuccess.Render(iconSuccess), jobDoneStyle
	case j.started:
		icon = styleIconSpinner.Render(spinnerFrames[m.frame%len(spinnerFrames)])
		style = jobActiveStyle
	}

	counts := StyleNumber.Render(fmt.Sprintf("%d/%d", j.attempted(), j.total))
	if j.failed > 0 {
		counts += " " + StyleError.Render(fmt.Sprintf("%d failed", j.failed))
	}
	return fmt.Sprintf("%s %s %s %s %s",
		icon,
		style.Render(fmt.Sprintf("%-6s", j.label)),
		StyleDim.Render(fmt.Sprintf("%-15s", j.variant)),
		progressBar(j.attempted(), j.total, progressWidth),
		counts)
}

// progressBar renders done/total as a bar of width cells.
func progressBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = min(width, done*width/total)
	}
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}
