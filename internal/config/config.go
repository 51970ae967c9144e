package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application. It is the options
// structure handed to the console, which passes it through untouched.
type Config struct {
	// Project settings
	ProjectPath string `yaml:"-"`

	// Output settings
	StateDir       string `yaml:"state_dir"`
	OutputJSONFile string `yaml:"output_file"`

	Server ServerConfig  `yaml:"server"`
	Driver DriverConfig  `yaml:"driver"`
	Suites []SuiteConfig `yaml:"suites"`

	// Paths to ignore when scanning
	PathsToIgnore []string `yaml:"ignore"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// ServerConfig controls where the suite server listens.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DriverConfig selects and tunes the execution backend.
type DriverConfig struct {
	Name       string        `yaml:"name"`
	Command    string        `yaml:"command"`
	Args       []string      `yaml:"args"`
	ChromePath string        `yaml:"chrome_path"`
	Timeout    time.Duration `yaml:"timeout"`
}

// SuiteConfig declares one named suite.
type SuiteConfig struct {
	Name    string `yaml:"name"`
	Root    string `yaml:"root"`
	Pattern string `yaml:"pattern"`
	Helper  string `yaml:"helper"`
}

// Flags holds command-line flags
type Flags struct {
	ProjectPath string
	Suite       string
	Driver      string
	Port        int
	Timeout     time.Duration
	Progress    bool
	SpecFiles   bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		StateDir:       DefaultStateDir,
		OutputJSONFile: DefaultOutputJSONFile,
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Driver: DriverConfig{
			Name:    DefaultDriver,
			Timeout: DefaultTimeout,
		},
		Suites: []SuiteConfig{DefaultSuite()},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// DefaultSuite returns the suite used when a project declares none.
func DefaultSuite() SuiteConfig {
	return SuiteConfig{
		Name:    DefaultSuiteName,
		Root:    DefaultSuiteRoot,
		Pattern: DefaultSpecPattern,
		Helper:  DefaultHelper,
	}
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.ApplyFlags(flags)
	return cfg
}

// ApplyFlags stores flags and lets the set ones override file and env values.
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags

	if flags.ProjectPath != "" {
		c.ProjectPath = flags.ProjectPath
	}
	if flags.Driver != "" {
		c.Driver.Name = flags.Driver
	}
	if flags.Port > 0 {
		c.Server.Port = flags.Port
	}
	if flags.Timeout > 0 {
		c.Driver.Timeout = flags.Timeout
	}
}

// LoadFile merges a YAML config file into c. A missing file is not an error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	defaultSuites := c.Suites
	c.Suites = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		c.Suites = defaultSuites
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(c.Suites) == 0 {
		c.Suites = defaultSuites
	}
	for i := range c.Suites {
		c.Suites[i].applyDefaults()
	}
	return c.Validate()
}

func (s *SuiteConfig) applyDefaults() {
	if s.Root == "" {
		s.Root = DefaultSuiteRoot
	}
	if s.Pattern == "" {
		s.Pattern = DefaultSpecPattern
	}
}

// Validate checks suite declarations for problems the resolver cannot recover from.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Suites))
	for i, s := range c.Suites {
		if s.Name == "" {
			return fmt.Errorf("suite #%d has no name", i+1)
		}
		if seen[s.Name] {
			return fmt.Errorf("suite %q declared twice", s.Name)
		}
		seen[s.Name] = true
		if _, err := filepath.Match(s.Pattern, ""); err != nil {
			return fmt.Errorf("suite %q: bad pattern %q: %w", s.Name, s.Pattern, err)
		}
	}
	return nil
}

// Suite looks up a suite declaration by name.
func (c *Config) Suite(name string) (SuiteConfig, bool) {
	for _, s := range c.Suites {
		if s.Name == name {
			return s, true
		}
	}
	return SuiteConfig{}, false
}

// SuiteNames returns the configured suite names in declaration order.
func (c *Config) SuiteNames() []string {
	names := make([]string, 0, len(c.Suites))
	for _, s := range c.Suites {
		names = append(names, s.Name)
	}
	return names
}

// GetConfigPath returns the path of the project's teabag.yml
func (c *Config) GetConfigPath() string {
	return filepath.Join(c.ProjectPath, DefaultConfigFile)
}

// GetEnvPath returns the path of the project's .env file
func (c *Config) GetEnvPath() string {
	return filepath.Join(c.ProjectPath, ".env")
}

// GetSuiteRoot returns the directory a suite's specs live in.
func (c *Config) GetSuiteRoot(s SuiteConfig) string {
	if filepath.IsAbs(s.Root) {
		return s.Root
	}
	return filepath.Join(c.ProjectPath, s.Root)
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and results always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.StateDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetLogDir returns the directory diagnostic logs are written to
func (c *Config) GetLogDir() string {
	return filepath.Join(c.ProjectPath, c.StateDir, "logs")
}

// GetListenAddr returns host:port for the suite server
func (c *Config) GetListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
