package driver

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"teabag/internal/config"
)

func TestNew(t *testing.T) {
	cfg := config.New()

	d, err := New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := d.(*ChromeDriver); !ok {
		t.Errorf("expected chrome driver by default, got %T", d)
	}

	cfg.Driver.Name = "command"
	if _, err := New(cfg, nil, nil); err == nil {
		t.Error("expected error for command driver without a command")
	}

	cfg.Driver.Command = "phantomjs"
	d, err = New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := d.(*CommandDriver); !ok {
		t.Errorf("expected command driver, got %T", d)
	}

	cfg.Driver.Name = "selenium"
	if _, err := New(cfg, nil, nil); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func newShellDriver(t *testing.T, script string) (*CommandDriver, *bytes.Buffer) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	cfg.Driver.Name = "command"
	cfg.Driver.Command = "sh"
	// the suite url arrives as $0 of the inline script
	cfg.Driver.Args = []string{"-c", script}
	cfg.Driver.Timeout = 5 * time.Second

	var out bytes.Buffer
	return NewCommandDriver(cfg, &out, nil), &out
}

func TestCommandDriver_RunSpecs(t *testing.T) {
	t.Run("reports failures from summary", func(t *testing.T) {
		d, out := newShellDriver(t, `echo "running $0 for $TEABAG_SUITE"; echo "3 examples, 2 failures"; exit 1`)

		failures, err := d.RunSpecs("default", "http://127.0.0.1:1/teabag/default?reporter=Console")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if failures != 2 {
			t.Errorf("expected 2 failures, got %d", failures)
		}
		if !strings.Contains(out.String(), "running http://127.0.0.1:1/teabag/default?reporter=Console for default") {
			t.Errorf("runner output not streamed: %q", out.String())
		}
	})

	t.Run("crash without summary is an execution error", func(t *testing.T) {
		d, _ := newShellDriver(t, `echo boom >&2; exit 3`)

		_, err := d.RunSpecs("default", "http://127.0.0.1:1/teabag/default")
		var execErr *ExecutionError
		if !errors.As(err, &execErr) {
			t.Fatalf("expected ExecutionError, got %v", err)
		}
		if execErr.Suite != "default" {
			t.Errorf("unexpected suite %q", execErr.Suite)
		}
	})

	t.Run("clean exit without summary is an execution error", func(t *testing.T) {
		d, _ := newShellDriver(t, `echo nothing`)

		if _, err := d.RunSpecs("default", "http://x"); err == nil {
			t.Error("expected error when no summary is printed")
		}
	})

	t.Run("timeout", func(t *testing.T) {
		d, _ := newShellDriver(t, `sleep 5`)
		d.config.Driver.Timeout = 50 * time.Millisecond

		_, err := d.RunSpecs("slow", "http://x")
		var execErr *ExecutionError
		if !errors.As(err, &execErr) || !strings.Contains(err.Error(), "timed out") {
			t.Fatalf("expected timeout ExecutionError, got %v", err)
		}
	})
}

func TestConfigured_SelectsOnFirstUse(t *testing.T) {
	cfg := config.New()
	d := NewConfigured(cfg, nil, nil)

	// the environment fills in the driver after construction
	cfg.Driver.Name = "selenium"

	_, err := d.RunSpecs("default", "http://x")
	var execErr *ExecutionError
	if !errors.As(err, &execErr) || !strings.Contains(err.Error(), `unknown driver "selenium"`) {
		t.Fatalf("expected unknown driver ExecutionError, got %v", err)
	}
}

func TestConsoleLine(t *testing.T) {
	tests := []struct {
		name     string
		args     []*runtime.RemoteObject
		expected string
	}{
		{"no args", nil, ""},
		{"quoted string is unquoted", []*runtime.RemoteObject{{Value: []byte(`"3 examples, 0 failures"`)}}, "3 examples, 0 failures"},
		{"numbers stay raw", []*runtime.RemoteObject{{Value: []byte(`"count:"`)}, {Value: []byte(`42`)}}, "count: 42"},
		{"description when value is empty", []*runtime.RemoteObject{{Description: "Error: boom"}}, "Error: boom"},
		{"nil args are skipped", []*runtime.RemoteObject{nil, {Value: []byte(`"ok"`)}}, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := consoleLine(tt.args); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
