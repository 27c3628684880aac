package harness

import (
	"context"
	"fmt"

	"wtr/internal/domain"
)

// Runner adapts a set of in-process suites to the execution engine's
// SuiteRunner interface. Each suite owns its mock registry, so workers share
// no mutable state.
type Runner struct {
	suites map[string]*Suite
	order  []string
}

// NewRunner creates a Runner over the given suites
func NewRunner(suites ...*Suite) *Runner {
	r := &Runner{suites: make(map[string]*Suite)}
	for _, suite := range suites {
		r.suites[suite.name] = suite
		r.order = append(r.order, suite.name)
	}
	return r
}

// Descriptors returns the descriptors of the registered suites, in
// registration order, for the worker pool.
func (r *Runner) Descriptors() []domain.SuiteDescriptor {
	descriptors := make([]domain.SuiteDescriptor, 0, len(r.order))
	for _, name := range r.order {
		descriptors = append(descriptors, r.suites[name].Descriptor())
	}
	return descriptors
}

// Run executes the suite named by the descriptor.
func (r *Runner) Run(ctx context.Context, descriptor domain.SuiteDescriptor, workerID int) domain.SuiteResult {
	suite, ok := r.suites[descriptor.Name]
	if !ok {
		return domain.SuiteResult{
			Descriptor: descriptor,
			Err:        fmt.Errorf("unknown suite %q", descriptor.Name),
		}
	}
	return suite.Run(ctx)
}
