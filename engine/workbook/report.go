package workbook

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(4)
	reportStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// StepResult is the outcome of one step. Value is nil when the step failed
// to produce one.
type StepResult struct {
	Index   int
	Label   string
	Passed  bool
	Value   *Value
	Err     error
	Message string
}

// Report collects the step results of one workbook run.
type Report struct {
	ID        uuid.UUID
	Workbook  string
	Path      string
	StartedAt time.Time
	Elapsed   time.Duration
	Tolerance float64
	Steps     []StepResult
}

func (r *Report) Passed() int {
	n := 0
	for _, s := range r.Steps {
		if s.Passed {
			n++
		}
	}
	return n
}

func (r *Report) Failed() int {
	return len(r.Steps) - r.Passed()
}

// OK reports whether every step passed.
func (r *Report) OK() bool {
	return r.Failed() == 0
}

// Summary is a single plain line describing the run.
func (r *Report) Summary() string {
	return fmt.Sprintf("%s: %d/%d steps passed in %s (run %s)",
		r.Workbook, r.Passed(), len(r.Steps), r.Elapsed.Round(time.Microsecond), r.ID)
}

// Render formats the report for a terminal.
func (r *Report) Render() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(r.Workbook))
	sb.WriteString(" ")
	sb.WriteString(dimStyle.Render(r.ID.String()))
	sb.WriteString("\n")

	for _, s := range r.Steps {
		if s.Passed {
			sb.WriteString(passStyle.Render("✔ " + s.Label))
		} else {
			sb.WriteString(failStyle.Render("✘ " + s.Label))
		}
		if s.Message != "" {
			sb.WriteString(" ")
			sb.WriteString(dimStyle.Render(s.Message))
		}
		sb.WriteString("\n")
		if s.Value != nil {
			sb.WriteString(valueStyle.Render(strings.TrimRight(s.Value.String(), "\n")))
			sb.WriteString("\n")
		}
	}

	status := passStyle
	if !r.OK() {
		status = failStyle
	}
	sb.WriteString(status.Render(fmt.Sprintf("%d passed, %d failed", r.Passed(), r.Failed())))
	sb.WriteString(dimStyle.Render(fmt.Sprintf(" in %s", r.Elapsed.Round(time.Microsecond))))

	return reportStyle.Render(sb.String())
}
