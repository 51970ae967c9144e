package suite

import (
	"errors"
	"testing"

	"teabag/internal/config"
)

func newTestResolver(t *testing.T) *ConfigResolver {
	t.Helper()
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, []string{
		"spec/javascripts/foo_spec.js",
		"spec/javascripts/bar_spec.js",
		"spec/models/user_spec.js",
		"spec/models/foo_spec.js",
	})

	cfg := config.New()
	cfg.ProjectPath = tmpDir
	cfg.Suites = []config.SuiteConfig{
		config.DefaultSuite(),
		{Name: "models", Root: "spec/models", Pattern: "*_spec.js"},
		{Name: "empty", Root: "spec/nowhere", Pattern: "*_spec.js"},
	}
	return NewConfigResolver(cfg)
}

func TestConfigResolver_Suites(t *testing.T) {
	r := newTestResolver(t)

	got := r.Suites()
	want := []string{"default", "models", "empty"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suite %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestConfigResolver_ResolveSpecFor(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name      string
		selector  string
		wantSuite string
		wantPath  string
	}{
		{"exact project path", "spec/models/user_spec.js", "models", "spec/models/user_spec.js"},
		{"exact path wins over earlier suite name match", "spec/models/foo_spec.js", "models", "spec/models/foo_spec.js"},
		{"name pattern picks first suite", "*foo*", "default", "spec/javascripts/foo_spec.js"},
		{"plain name", "bar_spec", "default", "spec/javascripts/bar_spec.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := r.ResolveSpecFor(tt.selector)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if entry.Suite != tt.wantSuite || entry.Path != tt.wantPath {
				t.Errorf("expected {%s %s}, got %+v", tt.wantSuite, tt.wantPath, entry)
			}
		})
	}

	t.Run("unknown selector", func(t *testing.T) {
		_, err := r.ResolveSpecFor("spec/javascripts/missing_spec.js")
		var unresolved *UnresolvedFileError
		if !errors.As(err, &unresolved) {
			t.Fatalf("expected UnresolvedFileError, got %v", err)
		}
		if unresolved.Selector != "spec/javascripts/missing_spec.js" {
			t.Errorf("unexpected selector %q", unresolved.Selector)
		}
	})

	t.Run("blank selector", func(t *testing.T) {
		if _, err := r.ResolveSpecFor("  "); err == nil {
			t.Error("expected error for blank selector")
		}
	})
}

func TestConfigResolver_SpecFiles(t *testing.T) {
	r := newTestResolver(t)

	specs, err := r.SpecFiles("models")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	if specs[0].Path != "spec/models/foo_spec.js" || specs[0].Name != "foo_spec.js" {
		t.Errorf("unexpected first spec %+v", specs[0])
	}

	if _, err := r.SpecFiles("unknown"); err == nil {
		t.Error("expected error for unknown suite")
	}
}
