package commands

import (
	"fmt"
	"os"
	"time"

	"teabag/internal/config"
	"teabag/internal/console"
	"teabag/internal/driver"
	"teabag/internal/environment"
	"teabag/internal/logging"
	"teabag/internal/storage"
	"teabag/internal/suite"
	"teabag/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	env       environment.Loader
	resolver  *suite.ConfigResolver
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	env environment.Loader,
	resolver *suite.ConfigResolver,
	st storage.Storage,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		env:       env,
		resolver:  resolver,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(rc.config.GetLogDir())
	if err != nil {
		color.Yellow("Logging disabled: %v", err)
	}
	defer logger.Close()

	var files []string
	if len(args) > 0 {
		files = args
	}

	progress := ui.NewProgressDriver(driver.NewConfigured(rc.config, os.Stdout, logger))

	c, err := console.New(rc.config, files, console.Dependencies{
		Environment: rc.env,
		NewServer:   newServerFactory(rc.resolver, logger),
		Resolver:    rc.resolver,
		Driver:      progress,
		Stdout:      os.Stdout,
	})
	if err != nil {
		return err
	}

	if rc.config.Flags.Progress {
		total := len(c.Suites())
		if files == nil && rc.config.Flags.Suite != "" {
			total = 1
		}
		progress.SetProgress(ui.NewProgressBar(total, os.Stderr))
	}

	start := time.Now()
	failed, err := c.Execute(&console.RunOptions{Suite: rc.config.Flags.Suite}, nil)
	progress.Finish()
	if err != nil {
		return err
	}

	// Save results
	output, err := rc.storage.Save(c.Results(), time.Since(start), rc.config.Driver.Name)
	if err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}
	rc.formatter.PrintSummary(output)

	if failed {
		return ErrSpecsFailed
	}
	return nil
}
