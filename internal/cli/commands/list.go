package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"teabag/internal/config"
	"teabag/internal/domain"
	"teabag/internal/environment"
	"teabag/internal/suite"
	"teabag/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	env       environment.Loader
	resolver  *suite.ConfigResolver
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	env environment.Loader,
	resolver *suite.ConfigResolver,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		env:       env,
		resolver:  resolver,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := lc.env.Load(); err != nil {
		return err
	}

	suites := lc.resolver.Suites()
	specs := make(map[string][]domain.SpecFile, len(suites))
	for _, name := range suites {
		files, err := lc.resolver.SpecFiles(name)
		if err != nil {
			color.Yellow("Suite %s: %v", name, err)
			continue
		}
		specs[name] = files
	}

	if len(suites) == 0 {
		color.Yellow("No suites configured")
		return nil
	}

	lc.formatter.PrintSuiteList(suites, specs, lc.config.Flags.SpecFiles)
	return nil
}
