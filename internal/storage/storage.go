package storage

import (
	"wtr/internal/config"
	"wtr/internal/domain"
)

// Storage persists and loads run results (e.g. for the failures viewer and
// --failed re-runs).
type Storage interface {
	Save(report domain.RunReport, failures []domain.TestFailure) error
	Load() (*domain.RunOutput, error)
	// SaveOutput writes the full output (e.g. after resolving failures in
	// the viewer).
	SaveOutput(output *domain.RunOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
