package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultConfigFile is the project configuration file read by the environment loader
	DefaultConfigFile = "teabag.yml"
	// DefaultStateDir holds logs and stored results inside the project
	DefaultStateDir = ".teabag"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "teabag-results.json"
	// DefaultHost is the interface the suite server binds to
	DefaultHost = "127.0.0.1"
	// DefaultPort of 0 lets the OS pick a free port
	DefaultPort = 0
	// DefaultServePort is used by the serve command so bookmarks keep working
	DefaultServePort = 3500
	// DefaultDriver is the execution backend used when none is configured
	DefaultDriver = "chrome"
	// DefaultTimeout bounds a single suite run
	DefaultTimeout = 3 * time.Minute
	// DefaultSuiteName is the suite every project gets when teabag.yml declares none
	DefaultSuiteName = "default"
	// DefaultSuiteRoot is where the default suite looks for specs
	DefaultSuiteRoot = "spec/javascripts"
	// DefaultSpecPattern matches spec file names inside a suite root
	DefaultSpecPattern = "*_spec.js"
	// DefaultHelper is loaded before the specs of a suite
	DefaultHelper = "spec_helper.js"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for specs
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"tmp",
	"log",
}
