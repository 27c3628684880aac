package execution

import "wtr/internal/domain"

// Scheduler distributes suites across workers
type Scheduler interface {
	Schedule(suites []domain.SuiteDescriptor, workerCount int) [][]domain.SuiteDescriptor
}

// RoundRobinScheduler distributes suites evenly across workers
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes suites evenly across workers using round-robin
func (s *RoundRobinScheduler) Schedule(suites []domain.SuiteDescriptor, workerCount int) [][]domain.SuiteDescriptor {
	if workerCount <= 0 {
		workerCount = 1
	}

	distribution := make([][]domain.SuiteDescriptor, workerCount)
	for i := range distribution {
		distribution[i] = make([]domain.SuiteDescriptor, 0)
	}

	for i, suite := range suites {
		workerIndex := i % workerCount
		distribution[workerIndex] = append(distribution[workerIndex], suite)
	}

	return distribution
}
