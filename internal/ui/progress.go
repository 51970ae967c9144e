package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"teabag/internal/driver"
)

// ProgressBar creates and manages progress bars
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a new progress bar over count suites
func NewProgressBar(count int, w io.Writer) *ProgressBar {
	if w == nil {
		w = os.Stderr
	}
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

func describe(passed, failed int) string {
	return color.CyanString("Running suites: ") +
		color.GreenString("[passed: %d", passed) +
		" | " +
		color.RedString("failed: %d]", failed)
}

// Update updates the progress bar with passed and failed suite counts
func (p *ProgressBar) Update(passed, failed int) {
	_ = p.bar.Set(passed + failed)
	p.bar.Describe(describe(passed, failed))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}

// ProgressDriver wraps a driver and advances a progress bar after each suite.
type ProgressDriver struct {
	next     driver.Driver
	progress *ProgressBar
	passed   int
	failed   int
}

// NewProgressDriver creates a new ProgressDriver
func NewProgressDriver(next driver.Driver) *ProgressDriver {
	return &ProgressDriver{next: next}
}

// SetProgress sets the progress bar; without one the driver only delegates
func (d *ProgressDriver) SetProgress(progress *ProgressBar) {
	d.progress = progress
}

// RunSpecs delegates to the wrapped driver and returns its result unchanged.
func (d *ProgressDriver) RunSpecs(suite, url string) (int, error) {
	failures, err := d.next.RunSpecs(suite, url)
	if err != nil {
		return failures, err
	}
	if failures == 0 {
		d.passed++
	} else {
		d.failed++
	}
	if d.progress != nil {
		d.progress.Update(d.passed, d.failed)
	}
	return failures, nil
}

// Finish completes the underlying progress bar
func (d *ProgressDriver) Finish() {
	if d.progress != nil {
		d.progress.Finish()
	}
}
