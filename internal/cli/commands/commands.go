package commands

import (
	"errors"
	"fmt"

	"teabag/internal/cli"
	"teabag/internal/config"
	"teabag/internal/environment"
	"teabag/internal/logging"
	"teabag/internal/server"
	"teabag/internal/storage"
	"teabag/internal/suite"
	"teabag/internal/ui"

	"github.com/spf13/cobra"
)

// ErrSpecsFailed is returned by run when any suite reported failures.
var ErrSpecsFailed = errors.New("specs failed")

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Serve   *ServeCommand
	Results *ResultsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	env := environment.NewFileLoader(cfg)
	resolver := suite.NewConfigResolver(cfg)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(nil)
	viewer := ui.NewResultsViewer()

	return &Commands{
		Run:     NewRunCommand(cfg, env, resolver, jsonStorage, formatter),
		List:    NewListCommand(cfg, env, resolver, formatter),
		Serve:   NewServeCommand(cfg, env, resolver),
		Results: NewResultsCommand(cfg, env, jsonStorage, viewer),
	}
}

// newServerFactory builds suite servers that list specs through resolver.
func newServerFactory(resolver *suite.ConfigResolver, logger *logging.Logger) server.Factory {
	return func(cfg *config.Config) server.Server {
		return server.NewHTTPServer(cfg, resolver, logger)
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Update config with flags after parsing
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.Flags = flags.ToConfigFlags()
		cfg.ApplyFlags(cfg.Flags)
		return nil
	}

	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "p", "", "Project directory containing teabag.yml")

	// Run command
	runCmd := &cobra.Command{
		Use:     "run [files...]",
		Short:   "Run javascript specs in a headless browser",
		Long:    "Start the suite server and run every suite, or only the suites containing the given spec files",
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().StringVarP(&flags.Suite, "suite", "s", "", "Run only this suite")
	runCmd.Flags().StringVarP(&flags.Driver, "driver", "d", "", "Driver to run suites with (chrome, command)")
	runCmd.Flags().IntVar(&flags.Port, "port", 0, "Port for the suite server (default: any free port)")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Timeout for a single suite (e.g. 90s)")
	runCmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar on stderr")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List configured suites",
		Long:    "Show the suites from teabag.yml and the spec files each one contains",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().BoolVarP(&flags.SpecFiles, "specs", "c", false, "List spec files instead of suites")
	rootCmd.AddCommand(listCmd)

	// Serve command
	serveCmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve suite pages for a browser",
		Long:    "Start the suite server and keep it running until interrupted",
		RunE:    c.Serve.Execute,
		PreRunE: applyFlags,
	}
	serveCmd.Flags().IntVar(&flags.Port, "port", 0, fmt.Sprintf("Port for the suite server (default %d)", config.DefaultServePort))
	rootCmd.AddCommand(serveCmd)

	// Results command
	resultsCmd := &cobra.Command{
		Use:     "results",
		Short:   "View the last run interactively",
		Long:    "Display the suites of the last stored run in an interactive viewer",
		RunE:    c.Results.Execute,
		PreRunE: applyFlags,
	}
	rootCmd.AddCommand(resultsCmd)
}
