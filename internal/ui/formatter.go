package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"teabag/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out (stdout when nil)
func NewFormatter(out io.Writer) *Formatter {
	if out == nil {
		out = os.Stdout
	}
	return &Formatter{out: out}
}

// PrintSummary displays the statistics of a stored run
func (f *Formatter) PrintSummary(output *domain.RunOutput) {
	meta := output.Meta

	fmt.Fprint(f.out, "\n")
	color.New(color.FgCyan).Fprintln(f.out, "Teabag run statistics")

	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Suite", "Failures", "Duration", "URL"})
	for _, s := range output.Suites {
		failures := color.GreenString("%d", s.Failures)
		if s.Failures > 0 {
			failures = color.RedString("%d", s.Failures)
		}
		t.AppendRow(table.Row{s.Suite, failures, s.Duration.Round(time.Millisecond), s.URL})
	}
	t.AppendFooter(table.Row{
		fmt.Sprintf("%d suite(s)", meta.TotalSuites),
		meta.TotalFailures,
		fmt.Sprintf("%.2fs", meta.DurationSeconds),
		meta.Timestamp,
	})
	t.Render()

	// Print summary line
	fmt.Fprintln(f.out)
	if meta.TotalFailures == 0 {
		color.New(color.FgGreen).Fprintln(f.out, "✓ All suites passed!")
	} else {
		color.New(color.FgRed).Fprintf(f.out, "✗ %d suite(s) failed with %d failure(s)\n", meta.FailedSuites, meta.TotalFailures)
	}
}

// PrintSuiteList lists suites, or every spec of every suite when withSpecs is set
func (f *Formatter) PrintSuiteList(suites []string, specs map[string][]domain.SpecFile, withSpecs bool) {
	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetStyle(table.StyleLight)

	if !withSpecs {
		t.AppendHeader(table.Row{"Suite", "Specs", "Path"})
		for _, name := range suites {
			t.AppendRow(table.Row{name, len(specs[name]), "/teabag/" + name})
		}
		t.Render()
		return
	}

	t.AppendHeader(table.Row{"Suite", "Spec"})
	total := 0
	for _, name := range suites {
		for _, spec := range specs[name] {
			t.AppendRow(table.Row{name, spec.Path})
			total++
		}
	}
	t.AppendFooter(table.Row{"Total", total})
	t.Render()
}
