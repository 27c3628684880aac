package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wtr/internal/domain"
	"wtr/internal/mock"
)

// CaseFunc is the body of a test case. Returning nil passes the case; a
// returned error (typically a domain.AssertionFailure) fails it. A panic in
// the body is recovered and recorded as an unhandled rejection.
type CaseFunc func(ctx context.Context, mocks *mock.Registry) error

// Case is a single test case declared on a suite
type Case struct {
	Name string
	Skip bool
	Fn   CaseFunc
}

// Suite is an in-process test suite: a named group of cases sharing one mock
// registry. Cases execute strictly one after another, in declaration order.
type Suite struct {
	name     string
	project  string
	registry *mock.Registry
	cases    []Case
}

// NewSuite creates an empty suite
func NewSuite(name, project string) *Suite {
	return &Suite{
		name:     name,
		project:  project,
		registry: mock.NewRegistry(),
	}
}

// Mocks returns the suite's mock registry, for registrations declared
// before any case runs.
func (s *Suite) Mocks() *mock.Registry {
	return s.registry
}

// AddCase declares a case. Declaration order is execution order.
func (s *Suite) AddCase(name string, fn CaseFunc) *Suite {
	s.cases = append(s.cases, Case{Name: name, Fn: fn})
	return s
}

// SkipCase declares a case that is reported as skipped without running.
func (s *Suite) SkipCase(name string) *Suite {
	s.cases = append(s.cases, Case{Name: name, Skip: true})
	return s
}

// Descriptor returns the suite's descriptor for the execution engine.
func (s *Suite) Descriptor() domain.SuiteDescriptor {
	names := make([]string, 0, len(s.cases))
	for _, c := range s.cases {
		names = append(names, c.Name)
	}
	return domain.SuiteDescriptor{
		Name:    s.name,
		Project: s.project,
		Path:    s.name,
		Cases:   names,
	}
}

// Run executes the suite's cases sequentially. Teardown (mock reset) for
// case N completes fully before setup for case N+1 begins. Cancellation
// stops before the next case and surfaces ctx.Err on the result.
func (s *Suite) Run(ctx context.Context) domain.SuiteResult {
	result := domain.SuiteResult{
		Descriptor: s.Descriptor(),
		Success:    true,
	}
	start := time.Now()

	for _, c := range s.cases {
		if err := ctx.Err(); err != nil {
			result.Err = err
			result.Success = false
			break
		}

		if c.Skip {
			result.Cases = append(result.Cases, domain.CaseResult{
				Suite:  s.name,
				Name:   c.Name,
				Status: domain.StatusSkipped,
			})
			continue
		}

		result.Cases = append(result.Cases, s.runCase(ctx, c))
	}

	for _, cr := range result.Cases {
		if cr.Status == domain.StatusFailed {
			result.Success = false
			break
		}
	}
	result.Duration = time.Since(start)
	return result
}

// runCase installs the suite's mocks, executes the body with panic recovery,
// and always resets the registry before returning.
func (s *Suite) runCase(ctx context.Context, c Case) domain.CaseResult {
	s.registry.ActivateAll()
	defer s.registry.ResetAll()

	start := time.Now()
	err := invoke(ctx, c, s.registry)
	duration := time.Since(start)

	cr := domain.CaseResult{
		Suite:    s.name,
		Name:     c.Name,
		Status:   domain.StatusPassed,
		Duration: duration,
	}
	if err != nil {
		cr.Status = domain.StatusFailed
		cr.Message = failureMessage(err)
	}
	return cr
}

// invoke runs the case body, converting panics into unhandled rejections.
func invoke(ctx context.Context, c Case, mocks *mock.Registry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.UnhandledRejection{Case: c.Name, Value: r}
		}
	}()
	return c.Fn(ctx, mocks)
}

func failureMessage(err error) string {
	var assertion *domain.AssertionFailure
	if errors.As(err, &assertion) {
		return assertion.Message
	}
	var rejection *domain.UnhandledRejection
	if errors.As(err, &rejection) {
		return rejection.Error()
	}
	var misuse *domain.MockMisuseError
	if errors.As(err, &misuse) {
		return misuse.Error()
	}
	return fmt.Sprintf("%v", err)
}
