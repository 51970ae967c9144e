package suite

import (
	"fmt"
	"path/filepath"
	"strings"

	"teabag/internal/config"
	"teabag/internal/domain"
)

// Resolver maps file selectors to the suites that contain them.
type Resolver interface {
	// ResolveSpecFor returns the suite and canonical path of the spec a
	// selector names, or an *UnresolvedFileError.
	ResolveSpecFor(selector string) (domain.ResolvedEntry, error)
	// Suites returns every configured suite name in configuration order.
	Suites() []string
}

// UnresolvedFileError is returned when a selector is not part of any suite.
type UnresolvedFileError struct {
	Selector string
}

func (e *UnresolvedFileError) Error() string {
	return fmt.Sprintf("unable to resolve %q to a spec in any suite", e.Selector)
}

// ConfigResolver resolves selectors against the suites declared in config.
// The config is read on every call, so it may be loaded after construction.
type ConfigResolver struct {
	config *config.Config
}

// NewConfigResolver creates a new ConfigResolver
func NewConfigResolver(cfg *config.Config) *ConfigResolver {
	return &ConfigResolver{config: cfg}
}

// Suites returns the configured suite names in declaration order.
func (r *ConfigResolver) Suites() []string {
	return r.config.SuiteNames()
}

// SpecFiles lists the specs of one suite. A suite whose root does not exist
// yields an error.
func (r *ConfigResolver) SpecFiles(name string) ([]domain.SpecFile, error) {
	sc, ok := r.config.Suite(name)
	if !ok {
		return nil, fmt.Errorf("unknown suite %q", name)
	}

	paths, err := NewScanner(r.config.PathsToIgnore).Scan(r.config.GetSuiteRoot(sc), sc.Pattern)
	if err != nil {
		return nil, err
	}

	specs := make([]domain.SpecFile, 0, len(paths))
	for _, p := range paths {
		specs = append(specs, domain.SpecFile{
			Suite: sc.Name,
			Path:  r.relative(p),
			Name:  filepath.Base(p),
		})
	}
	return specs, nil
}

// ResolveSpecFor finds the first suite, in configuration order, holding the
// spec named by selector. Exact paths win over name patterns.
func (r *ConfigResolver) ResolveSpecFor(selector string) (domain.ResolvedEntry, error) {
	if strings.TrimSpace(selector) == "" {
		return domain.ResolvedEntry{}, &UnresolvedFileError{Selector: selector}
	}

	var all []domain.SpecFile
	for _, name := range r.Suites() {
		specs, err := r.SpecFiles(name)
		if err != nil {
			// a suite without a root simply contains nothing
			continue
		}
		all = append(all, specs...)
	}

	want := r.relative(selector)
	for _, spec := range all {
		if spec.Path == want {
			return domain.ResolvedEntry{Suite: spec.Suite, Path: spec.Path}, nil
		}
	}
	for _, spec := range all {
		if MatchName(selector, spec.Path) {
			return domain.ResolvedEntry{Suite: spec.Suite, Path: spec.Path}, nil
		}
	}

	return domain.ResolvedEntry{}, &UnresolvedFileError{Selector: selector}
}

// relative turns a path into the project-relative, slash-separated form
// the server and the filter query use.
func (r *ConfigResolver) relative(path string) string {
	if filepath.IsAbs(path) || r.config.ProjectPath != config.DefaultProjectPath {
		base, err := filepath.Abs(r.config.ProjectPath)
		abs, err2 := filepath.Abs(path)
		if err == nil && err2 == nil {
			if rel, err := filepath.Rel(base, abs); err == nil && !strings.HasPrefix(rel, "..") {
				return filepath.ToSlash(rel)
			}
		}
	}
	return filepath.ToSlash(filepath.Clean(path))
}
