package driver

import (
	"fmt"
	"io"
	"os"

	"teabag/internal/config"
	"teabag/internal/logging"
)

// Driver loads one suite page and reports how many specs failed.
type Driver interface {
	RunSpecs(suite, url string) (int, error)
}

// ExecutionError is returned when a suite could not be run to completion.
type ExecutionError struct {
	Suite string
	URL   string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("running suite %s at %s: %v", e.Suite, e.URL, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// New returns the driver named in the config. Spec output is written to out.
func New(cfg *config.Config, out io.Writer, logger *logging.Logger) (Driver, error) {
	if out == nil {
		out = os.Stdout
	}
	switch cfg.Driver.Name {
	case "chrome", "":
		return NewChromeDriver(cfg, out, logger), nil
	case "command":
		if cfg.Driver.Command == "" {
			return nil, fmt.Errorf("driver %q needs driver.command in %s", cfg.Driver.Name, config.DefaultConfigFile)
		}
		return NewCommandDriver(cfg, out, logger), nil
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver.Name)
	}
}

// Configured picks the concrete driver from the config on first use, so the
// config may still be filled in by the environment after construction.
type Configured struct {
	config *config.Config
	out    io.Writer
	logger *logging.Logger
	driver Driver
}

// NewConfigured creates a new Configured driver
func NewConfigured(cfg *config.Config, out io.Writer, logger *logging.Logger) *Configured {
	return &Configured{config: cfg, out: out, logger: logger}
}

// RunSpecs delegates to the configured driver.
func (c *Configured) RunSpecs(suite, url string) (int, error) {
	if c.driver == nil {
		d, err := New(c.config, c.out, c.logger)
		if err != nil {
			return 0, &ExecutionError{Suite: suite, URL: url, Err: err}
		}
		c.driver = d
	}
	return c.driver.RunSpecs(suite, url)
}
