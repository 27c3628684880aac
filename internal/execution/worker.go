package execution

import (
	"context"
	"sync"
	"time"

	"wtr/internal/config"
	"wtr/internal/domain"
	"wtr/internal/ui"
)

// WorkerPool manages a pool of workers for cross-suite execution. Suites run
// strictly sequentially inside a worker; parallelism across suites is opt-in
// through the configured worker count and workers share no mutable state.
type WorkerPool struct {
	config    *config.Config
	runner    SuiteRunner
	scheduler Scheduler
	progress  *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner SuiteRunner, scheduler Scheduler) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute runs all suites and returns their results in schedule order.
// An aborted run (ctx cancelled) returns the context error and no results.
func (wp *WorkerPool) Execute(ctx context.Context, suites []domain.SuiteDescriptor) ([]domain.SuiteResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, suites, wp.config.Flags.FailFast)
}

// ExecuteWithOptions runs suites with optional fail-fast (stop scheduling
// new suites after the first failure).
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, suites []domain.SuiteDescriptor, failFast bool) ([]domain.SuiteResult, time.Duration, error) {
	if len(suites) == 0 {
		return nil, 0, nil
	}

	workerCount := wp.config.Workers
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(suites) {
		workerCount = len(suites)
	}

	distribution := wp.scheduler.Schedule(suites, workerCount)
	perWorker := make([][]domain.SuiteResult, workerCount)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mu sync.Mutex
	var completedSuites, passedCases, failedCases int
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(workerIndex int) {
			defer wg.Done()
			workerID := workerIndex + 1

			for _, descriptor := range distribution[workerIndex] {
				if runCtx.Err() != nil {
					return
				}

				result := wp.runner.Run(runCtx, descriptor, workerID)
				perWorker[workerIndex] = append(perWorker[workerIndex], result)

				mu.Lock()
				completedSuites++
				passed, failed, _ := result.Counts()
				passedCases += passed
				failedCases += failed
				if wp.progress != nil {
					wp.progress.Update(completedSuites, passedCases, failedCases)
				}
				mu.Unlock()

				if failFast && !result.Success {
					cancel()
					return
				}
			}
		}(i)
	}
	wg.Wait()

	if ctx.Err() != nil {
		// Aborted run: no partial results are reported
		return nil, 0, ctx.Err()
	}

	if wp.progress != nil {
		wp.progress.Finish()
	}

	// Flatten in schedule order so results are deterministic for a given
	// worker count.
	var allResults []domain.SuiteResult
	for _, results := range perWorker {
		allResults = append(allResults, results...)
	}

	return allResults, time.Since(startTime), nil
}
