// Package console orchestrates a test run: it loads the environment, starts
// the suite server, resolves requested spec files to suites and drives each
// suite page through a driver, adding up the failures.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"teabag/internal/config"
	"teabag/internal/domain"
	"teabag/internal/driver"
	"teabag/internal/environment"
	"teabag/internal/server"
	"teabag/internal/suite"
)

// Dependencies are the collaborators a Console is built from.
type Dependencies struct {
	Environment environment.Loader
	NewServer   server.Factory
	Resolver    suite.Resolver
	Driver      driver.Driver
	// Stdout receives the per-suite progress lines. Defaults to os.Stdout.
	Stdout io.Writer
}

// RunOptions adjust a single Execute call.
type RunOptions struct {
	// Suite restricts a run without files to one suite.
	Suite string
}

// Console runs suites against one server for its whole lifetime.
type Console struct {
	options  *config.Config
	server   server.Server
	resolver suite.Resolver
	driver   driver.Driver
	stdout   io.Writer

	entries []domain.ResolvedEntry
	only    string
	results []domain.SuiteResult
}

// New loads the environment, starts the server and, when files is not empty,
// resolves the files to suites. Collaborator errors are returned as-is.
func New(options *config.Config, files []string, deps Dependencies) (*Console, error) {
	c := &Console{
		options:  options,
		resolver: deps.Resolver,
		driver:   deps.Driver,
		stdout:   deps.Stdout,
	}
	if c.stdout == nil {
		c.stdout = os.Stdout
	}

	if err := deps.Environment.Load(); err != nil {
		return nil, err
	}

	c.server = deps.NewServer(options)
	if err := c.server.Start(); err != nil {
		return nil, err
	}

	if len(files) > 0 {
		if err := c.resolve(files); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Options returns the options the console was built with.
func (c *Console) Options() *config.Config {
	return c.options
}

// Execute runs every suite from Suites in order and reports whether any spec
// failed: true means failures occurred. A non-empty files replaces the files
// given to New. The first driver error stops the run.
func (c *Console) Execute(opts *RunOptions, files []string) (bool, error) {
	c.only = ""
	if opts != nil {
		c.only = opts.Suite
	}
	if len(files) > 0 {
		if err := c.resolve(files); err != nil {
			return false, err
		}
	}

	c.results = nil
	failures := 0
	for _, name := range c.Suites() {
		url := c.suiteURL(name)
		fmt.Fprintf(c.stdout, "Teabag running %s suite at %s\n", name, url)

		start := time.Now()
		n, err := c.RunSpecs(name)
		if err != nil {
			return false, err
		}
		failures += n
		c.results = append(c.results, domain.SuiteResult{
			Suite:    name,
			URL:      url,
			Failures: n,
			Duration: time.Since(start),
		})
	}
	return failures > 0, nil
}

// RunSpecs runs one suite with the console reporter and returns the
// driver's failure count unchanged.
func (c *Console) RunSpecs(suiteName string) (int, error) {
	url := c.suiteURL(suiteName)
	if strings.Contains(url, "?") {
		url += "&reporter=Console"
	} else {
		url += "?reporter=Console"
	}
	return c.driver.RunSpecs(suiteName, url)
}

// Results returns the per-suite outcomes of the last Execute.
func (c *Console) Results() []domain.SuiteResult {
	return c.results
}

// Suites returns the suites to run, in order. With files these are the
// distinct suites of the resolved entries; without, the resolver's list
// exactly as given.
func (c *Console) Suites() []string {
	if len(c.entries) == 0 {
		if c.only != "" {
			return []string{c.only}
		}
		return c.resolver.Suites()
	}

	seen := make(map[string]bool, len(c.entries))
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		if seen[e.Suite] {
			continue
		}
		seen[e.Suite] = true
		names = append(names, e.Suite)
	}
	return names
}

// Filter returns the file[] query restricting suiteName to the resolved
// files, or "" when none resolved to it.
func (c *Console) Filter(suiteName string) string {
	var pairs []string
	for _, e := range c.entries {
		if e.Suite == suiteName {
			pairs = append(pairs, "file[]="+e.Path)
		}
	}
	if len(pairs) == 0 {
		return ""
	}
	return "?" + strings.Join(pairs, "&")
}

func (c *Console) suiteURL(suiteName string) string {
	return fmt.Sprintf("%s/teabag/%s%s", c.server.URL(), suiteName, c.Filter(suiteName))
}

func (c *Console) resolve(files []string) error {
	entries := make([]domain.ResolvedEntry, 0, len(files))
	for _, f := range files {
		entry, err := c.resolver.ResolveSpecFor(f)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}
	c.entries = entries
	return nil
}
