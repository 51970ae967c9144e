package ui

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"teabag/internal/domain"
)

// Viewer displays run results in an interactive TUI
type Viewer interface {
	View(results *domain.RunOutput) error
}

// ResultsViewer shows the suites of the last run with a details pane.
type ResultsViewer struct{}

// NewResultsViewer creates a new ResultsViewer
func NewResultsViewer() *ResultsViewer {
	return &ResultsViewer{}
}

// listItemText renders one suite row of the list
func listItemText(index int, s domain.SuiteResult) string {
	if s.Failures == 0 {
		return fmt.Sprintf("[green]✓ [yellow]%d.[white] %s", index+1, s.Suite)
	}
	return fmt.Sprintf("[red]✗ [yellow]%d.[white] %s [red](%d)", index+1, s.Suite, s.Failures)
}

// detailsText renders the details pane for one suite
func detailsText(meta domain.RunMeta, s domain.SuiteResult) string {
	status := "[green]passed"
	if s.Failures > 0 {
		status = fmt.Sprintf("[red]%d failure(s)", s.Failures)
	}
	return fmt.Sprintf("[yellow]Suite:[white] %s\n[yellow]Status:[white] %s[white]\n[yellow]Duration:[white] %s\n[yellow]URL:[white] %s\n\n[gray]run %s via %s at %s",
		s.Suite, status, s.Duration.Round(time.Millisecond), s.URL, meta.RunID, meta.Driver, meta.Timestamp)
}

// View displays run results in an interactive TUI
func (v *ResultsViewer) View(results *domain.RunOutput) error {
	if len(results.Suites) == 0 {
		color.Yellow("No suites in the last run")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, s := range results.Suites {
		list.AddItem(listItemText(i, s), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	list.SetBorder(true).SetTitle(" Suites ")

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)
	detailsView.SetBorder(true).SetTitle(" Details ")

	showDetails := func(index int) {
		if index < 0 || index >= len(results.Suites) {
			return
		}
		detailsView.SetText(detailsText(results.Meta, results.Suites[index]))
	}
	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		showDetails(index)
	})
	showDetails(0)

	footer := tview.NewTextView().
		SetDynamicColors(true).
		SetText(fmt.Sprintf("[gray]%d suite(s), %d failure(s) | ↑/↓ select | q quit",
			results.Meta.TotalSuites, results.Meta.TotalFailures))

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(tview.NewFlex().
			AddItem(list, 0, 1, true).
			AddItem(detailsView, 0, 2, false), 0, 1, true).
		AddItem(footer, 1, 0, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	return app.SetRoot(layout, true).SetFocus(list).Run()
}
