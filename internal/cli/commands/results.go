package commands

import (
	"github.com/spf13/cobra"
	"teabag/internal/config"
	"teabag/internal/environment"
	"teabag/internal/storage"
	"teabag/internal/ui"
)

// ResultsCommand handles the results command
type ResultsCommand struct {
	config  *config.Config
	env     environment.Loader
	storage storage.Storage
	viewer  ui.Viewer
}

// NewResultsCommand creates a new ResultsCommand
func NewResultsCommand(cfg *config.Config, env environment.Loader, st storage.Storage, viewer ui.Viewer) *ResultsCommand {
	return &ResultsCommand{
		config:  cfg,
		env:     env,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (rc *ResultsCommand) Execute(cmd *cobra.Command, args []string) error {
	// the output path can be moved by teabag.yml
	if err := rc.env.Load(); err != nil {
		return err
	}

	results, err := rc.storage.Load()
	if err != nil {
		return err
	}

	return rc.viewer.View(results)
}
