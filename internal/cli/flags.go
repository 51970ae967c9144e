package cli

import (
	"time"

	"teabag/internal/config"
)

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ProjectPath: f.ProjectPath,
		Suite:       f.Suite,
		Driver:      f.Driver,
		Port:        f.Port,
		Timeout:     f.Timeout,
		Progress:    f.Progress,
		SpecFiles:   f.SpecFiles,
	}
}
