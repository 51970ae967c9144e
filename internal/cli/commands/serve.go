package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"teabag/internal/config"
	"teabag/internal/environment"
	"teabag/internal/logging"
	"teabag/internal/server"
	"teabag/internal/suite"
)

// ServeCommand handles the serve command
type ServeCommand struct {
	config   *config.Config
	env      environment.Loader
	resolver *suite.ConfigResolver
}

// NewServeCommand creates a new ServeCommand
func NewServeCommand(cfg *config.Config, env environment.Loader, resolver *suite.ConfigResolver) *ServeCommand {
	return &ServeCommand{
		config:   cfg,
		env:      env,
		resolver: resolver,
	}
}

// Execute runs the command
func (sc *ServeCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := sc.env.Load(); err != nil {
		return err
	}

	if sc.config.Server.Port == 0 {
		sc.config.Server.Port = config.DefaultServePort
	}

	logger, err := logging.New(sc.config.GetLogDir())
	if err != nil {
		color.Yellow("Logging disabled: %v", err)
	}
	defer logger.Close()

	srv := server.NewHTTPServer(sc.config, sc.resolver, logger)
	if err := srv.Start(); err != nil {
		return err
	}

	color.Cyan("Teabag serving %d suite(s) at %s/teabag", len(sc.resolver.Suites()), srv.URL())
	for _, name := range sc.resolver.Suites() {
		color.White("  %s/teabag/%s", srv.URL(), name)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
