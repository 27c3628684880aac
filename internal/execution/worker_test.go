package execution

import (
	"context"
	"errors"
	"testing"

	"wtr/internal/config"
	"wtr/internal/domain"
	"wtr/internal/harness"
	"wtr/internal/mock"
)

func passingCase(ctx context.Context, mocks *mock.Registry) error { return nil }

func buildSuites() *harness.Runner {
	auth := harness.NewSuite("auth", "api")
	auth.AddCase("logs in", passingCase)
	auth.AddCase("logs out", passingCase)

	media := harness.NewSuite("useMediaQuery", "web")
	media.AddCase("matches mobile", passingCase)
	media.AddCase("does not match desktop", func(ctx context.Context, mocks *mock.Registry) error {
		return &domain.AssertionFailure{Case: "does not match desktop", Message: "expected false"}
	})
	media.SkipCase("ssr fallback")

	return harness.NewRunner(auth, media)
}

func newPool(workers int, runner SuiteRunner) *WorkerPool {
	cfg := config.New()
	cfg.Workers = workers
	return NewWorkerPool(cfg, runner, NewRoundRobinScheduler())
}

func TestWorkerPool_Execute(t *testing.T) {
	t.Run("total case count equals sum across descriptors", func(t *testing.T) {
		suites := buildSuites()
		pool := newPool(1, suites)

		results, _, err := pool.Execute(context.Background(), suites.Descriptors())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expectedCases := 0
		for _, d := range suites.Descriptors() {
			expectedCases += len(d.Cases)
		}
		report := domain.BuildReport(results, 0, 1)
		if report.TotalCases != expectedCases {
			t.Errorf("expected %d total cases, got %d", expectedCases, report.TotalCases)
		}
		if report.Passed != 3 || report.Failed != 1 || report.Skipped != 1 {
			t.Errorf("expected {3, 1, 1}, got {%d, %d, %d}", report.Passed, report.Failed, report.Skipped)
		}
		if report.Ok() {
			t.Error("report with failures must not be ok")
		}
	})

	t.Run("empty suite list", func(t *testing.T) {
		pool := newPool(1, harness.NewRunner())
		results, duration, err := pool.Execute(context.Background(), nil)
		if results != nil || duration != 0 || err != nil {
			t.Errorf("expected empty run, got %v %v %v", results, duration, err)
		}
	})

	t.Run("parallel workers produce the same totals", func(t *testing.T) {
		suites := buildSuites()
		pool := newPool(4, suites)

		results, _, err := pool.Execute(context.Background(), suites.Descriptors())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		report := domain.BuildReport(results, 0, 4)
		if report.Passed != 3 || report.Failed != 1 || report.Skipped != 1 {
			t.Errorf("expected {3, 1, 1}, got {%d, %d, %d}", report.Passed, report.Failed, report.Skipped)
		}
	})

	t.Run("cancelled run yields no results", func(t *testing.T) {
		suites := buildSuites()
		pool := newPool(1, suites)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		results, _, err := pool.Execute(ctx, suites.Descriptors())
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if results != nil {
			t.Errorf("aborted run must not return partial results, got %d", len(results))
		}

		// Repeated cancellation is a no-op
		cancel()
		results, _, err = pool.Execute(ctx, suites.Descriptors())
		if !errors.Is(err, context.Canceled) || results != nil {
			t.Errorf("expected idempotent cancellation, got %v %v", results, err)
		}
	})

	t.Run("fail fast stops scheduling after the first failure", func(t *testing.T) {
		var ranAfterFailure bool
		failing := harness.NewSuite("failing", "web")
		failing.AddCase("boom", func(ctx context.Context, mocks *mock.Registry) error {
			return &domain.AssertionFailure{Case: "boom", Message: "boom"}
		})
		later := harness.NewSuite("later", "web")
		later.AddCase("should not run", func(ctx context.Context, mocks *mock.Registry) error {
			ranAfterFailure = true
			return nil
		})

		runner := harness.NewRunner(failing, later)
		pool := newPool(1, runner)

		results, _, err := pool.ExecuteWithOptions(context.Background(), runner.Descriptors(), true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ranAfterFailure {
			t.Error("suite scheduled after failure should not have run")
		}
		if len(results) != 1 {
			t.Errorf("expected 1 result, got %d", len(results))
		}
	})
}

func TestRoundRobinScheduler_Schedule(t *testing.T) {
	scheduler := NewRoundRobinScheduler()
	suites := []domain.SuiteDescriptor{
		{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}, {Name: "e"},
	}

	t.Run("distributes evenly", func(t *testing.T) {
		distribution := scheduler.Schedule(suites, 2)
		if len(distribution) != 2 {
			t.Fatalf("expected 2 workers, got %d", len(distribution))
		}
		if len(distribution[0]) != 3 || len(distribution[1]) != 2 {
			t.Errorf("expected 3/2 split, got %d/%d", len(distribution[0]), len(distribution[1]))
		}
	})

	t.Run("zero workers defaults to one", func(t *testing.T) {
		distribution := scheduler.Schedule(suites, 0)
		if len(distribution) != 1 || len(distribution[0]) != 5 {
			t.Errorf("expected 1 worker with all suites, got %v", distribution)
		}
	})
}
