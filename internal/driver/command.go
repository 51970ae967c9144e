package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"teabag/internal/config"
	"teabag/internal/logging"
)

// CommandDriver runs an external runner (e.g. "phantomjs run-teabag.js")
// with the suite URL appended to its arguments.
type CommandDriver struct {
	config *config.Config
	out    io.Writer
	logger *logging.Logger
}

// NewCommandDriver creates a new CommandDriver
func NewCommandDriver(cfg *config.Config, out io.Writer, logger *logging.Logger) *CommandDriver {
	return &CommandDriver{config: cfg, out: out, logger: logger}
}

// RunSpecs executes the runner for a single suite URL, streaming its output
// and reading the failure count from the reporter summary.
func (d *CommandDriver) RunSpecs(suite, url string) (int, error) {
	ctx := context.Background()
	if d.config.Driver.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.Driver.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, d.config.Driver.Args...), url)
	cmd := exec.CommandContext(ctx, d.config.Driver.Command, args...)

	// Set environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, fmt.Sprintf("TEABAG_SUITE=%s", suite))

	// Set working directory
	cmd.Dir = d.config.ProjectPath

	var output bytes.Buffer
	cmd.Stdout = io.MultiWriter(d.out, &output)
	cmd.Stderr = io.MultiWriter(d.out, &output)
	cmd.WaitDelay = time.Second

	d.logger.Printf("driver: %s %s", d.config.Driver.Command, strings.Join(args, " "))
	runErr := cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return 0, &ExecutionError{Suite: suite, URL: url, Err: fmt.Errorf("timed out after %s", d.config.Driver.Timeout)}
	}

	failures, ok := ParseFailureCount(output.String())
	if ok {
		d.logger.Printf("driver: suite %s finished with %d failure(s)", suite, failures)
		return failures, nil
	}

	// Runners exit non-zero on failures; without a summary we cannot tell
	// a failing suite from a broken runner.
	if runErr != nil {
		return 0, &ExecutionError{Suite: suite, URL: url, Err: runErr}
	}
	return 0, &ExecutionError{Suite: suite, URL: url, Err: errors.New("runner printed no result summary")}
}
