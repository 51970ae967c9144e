package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"teabag/internal/domain"
)

// Save writes suite results to the configured JSON output file and returns
// what was written.
func (s *JSONStorage) Save(results []domain.SuiteResult, duration time.Duration, driverName string) (*domain.RunOutput, error) {
	passed := 0
	failed := 0
	failures := 0
	for _, r := range results {
		failures += r.Failures
		if r.Failures == 0 {
			passed++
		} else {
			failed++
		}
	}

	output := &domain.RunOutput{
		Meta: domain.RunMeta{
			RunID:           uuid.NewString(),
			TotalSuites:     len(results),
			FailedSuites:    failed,
			PassedSuites:    passed,
			TotalFailures:   failures,
			Driver:          driverName,
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Timestamp:       s.now().Format(time.RFC3339),
		},
		Suites: results,
	}
	if output.Suites == nil {
		output.Suites = []domain.SuiteResult{}
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal results: %w", err)
	}

	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("write results: %w", err)
	}
	return output, nil
}

// Load reads the last run from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}
