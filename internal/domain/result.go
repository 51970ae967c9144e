package domain

import "time"

// SuiteResult represents the outcome of running one suite page
type SuiteResult struct {
	Suite    string        `json:"suite"`
	URL      string        `json:"url"`
	Failures int           `json:"failures"`
	Duration time.Duration `json:"duration"`
}

// RunMeta contains metadata about a test run
type RunMeta struct {
	RunID           string  `json:"run_id"`
	TotalSuites     int     `json:"total_suites"`
	FailedSuites    int     `json:"failed_suites"`
	PassedSuites    int     `json:"passed_suites"`
	TotalFailures   int     `json:"total_failures"`
	Driver          string  `json:"driver"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete output structure for a stored run
type RunOutput struct {
	Meta   RunMeta       `json:"meta"`
	Suites []SuiteResult `json:"suites"`
}

// Failed reports whether the run had any failures.
func (o *RunOutput) Failed() bool {
	return o.Meta.TotalFailures > 0
}
