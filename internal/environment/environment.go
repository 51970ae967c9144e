package environment

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"teabag/internal/config"
)

// Loader prepares process-wide configuration before a run.
type Loader interface {
	Load() error
}

// FileLoader loads the project's .env and teabag.yml into a Config, then
// applies TEABAG_* environment overrides and finally the command flags.
type FileLoader struct {
	config *config.Config
}

// NewFileLoader creates a new FileLoader
func NewFileLoader(cfg *config.Config) *FileLoader {
	return &FileLoader{config: cfg}
}

// Load mutates the wrapped config in place.
func (l *FileLoader) Load() error {
	// .env file might not exist, that's okay - use environment variables
	if err := godotenv.Load(l.config.GetEnvPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", l.config.GetEnvPath(), err)
	}

	if err := l.config.LoadFile(l.config.GetConfigPath()); err != nil {
		return err
	}

	if err := l.applyEnv(); err != nil {
		return err
	}

	// flags given on the command line beat both files and env
	l.config.ApplyFlags(l.config.Flags)
	return nil
}

func (l *FileLoader) applyEnv() error {
	cfg := l.config

	if host := os.Getenv("TEABAG_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("TEABAG_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid TEABAG_PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	if driver := os.Getenv("TEABAG_DRIVER"); driver != "" {
		cfg.Driver.Name = driver
	}
	if timeout := os.Getenv("TEABAG_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid TEABAG_TIMEOUT %q: %w", timeout, err)
		}
		cfg.Driver.Timeout = d
	}
	if chrome := os.Getenv("TEABAG_CHROME_PATH"); chrome != "" {
		cfg.Driver.ChromePath = chrome
	}
	return nil
}
