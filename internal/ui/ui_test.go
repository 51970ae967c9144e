package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"teabag/internal/domain"
)

type stubDriver struct {
	failures int
	err      error
}

func (s *stubDriver) RunSpecs(suite, url string) (int, error) {
	return s.failures, s.err
}

func TestProgressDriver_Delegates(t *testing.T) {
	var buf bytes.Buffer
	d := NewProgressDriver(&stubDriver{failures: 3})
	d.SetProgress(NewProgressBar(2, &buf))

	n, err := d.RunSpecs("default", "http://x/teabag/default?reporter=Console")
	if err != nil || n != 3 {
		t.Fatalf("expected (3, nil), got (%d, %v)", n, err)
	}
	if d.failed != 1 || d.passed != 0 {
		t.Errorf("unexpected counts passed=%d failed=%d", d.passed, d.failed)
	}

	boom := errors.New("boom")
	d.next = &stubDriver{err: boom}
	if _, err := d.RunSpecs("foo", "http://x"); err != boom {
		t.Errorf("expected driver error unchanged, got %v", err)
	}
}

func TestProgressDriver_WithoutBar(t *testing.T) {
	d := NewProgressDriver(&stubDriver{})
	if _, err := d.RunSpecs("default", "http://x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d.Finish()
	if d.passed != 1 {
		t.Errorf("expected 1 passed suite, got %d", d.passed)
	}
}

func TestFormatter_PrintSummary(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	NewFormatter(&buf).PrintSummary(&domain.RunOutput{
		Meta: domain.RunMeta{TotalSuites: 2, FailedSuites: 1, TotalFailures: 4},
		Suites: []domain.SuiteResult{
			{Suite: "default", Duration: time.Second},
			{Suite: "models", Failures: 4},
		},
	})

	// go-pretty upper-cases header and footer cells
	out := strings.ToLower(buf.String())
	for _, want := range []string{"default", "models", "2 suite(s)", "✗ 1 suite(s) failed with 4 failure(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestFormatter_PrintSuiteList(t *testing.T) {
	var buf bytes.Buffer
	specs := map[string][]domain.SpecFile{
		"default": {{Path: "spec/javascripts/a_spec.js"}, {Path: "spec/javascripts/b_spec.js"}},
	}

	NewFormatter(&buf).PrintSuiteList([]string{"default", "empty"}, specs, true)

	out := buf.String()
	if !strings.Contains(out, "spec/javascripts/b_spec.js") {
		t.Errorf("spec list missing spec:\n%s", out)
	}
	if strings.Contains(out, "empty") {
		t.Errorf("suite without specs should have no rows:\n%s", out)
	}
}

func TestListItemText(t *testing.T) {
	if got := listItemText(0, domain.SuiteResult{Suite: "default"}); !strings.Contains(got, "✓") {
		t.Errorf("passing suite should be checked: %q", got)
	}
	if got := listItemText(1, domain.SuiteResult{Suite: "foo", Failures: 2}); !strings.Contains(got, "(2)") {
		t.Errorf("failing suite should show its count: %q", got)
	}
}
