package execution

import (
	"context"
	"time"

	"wtr/internal/domain"
)

// Executor executes suites and returns their results
type Executor interface {
	Execute(ctx context.Context, suites []domain.SuiteDescriptor) ([]domain.SuiteResult, time.Duration, error)
}

// SuiteRunner runs a single suite on a worker. Implementations: the command
// runner that execs the JS runtime per test file, and the in-process harness
// runner for Go-embedded suites.
type SuiteRunner interface {
	Run(ctx context.Context, descriptor domain.SuiteDescriptor, workerID int) domain.SuiteResult
}
