package storage

import (
	"time"

	"teabag/internal/config"
	"teabag/internal/domain"
)

// Storage persists and loads run results (e.g. for the results viewer).
type Storage interface {
	Save(results []domain.SuiteResult, duration time.Duration, driverName string) (*domain.RunOutput, error)
	Load() (*domain.RunOutput, error)
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
	now func() time.Time
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg, now: time.Now}
}
