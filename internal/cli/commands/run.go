package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"wtr/internal/config"
	"wtr/internal/dbprep"
	"wtr/internal/discovery"
	"wtr/internal/domain"
	"wtr/internal/execution"
	"wtr/internal/parser"
	"wtr/internal/storage"
	"wtr/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	executor  *execution.WorkerPool
	parser    *parser.BunParser
	storage   storage.Storage
	formatter *ui.Formatter
	preparer  dbprep.Preparer
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	executor *execution.WorkerPool,
	bunParser *parser.BunParser,
	st storage.Storage,
	formatter *ui.Formatter,
	preparer dbprep.Preparer,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		executor:  executor,
		parser:    bunParser,
		storage:   st,
		formatter: formatter,
		preparer:  preparer,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	failed, err := rc.run(ctx)
	if err != nil {
		return err
	}
	if failed {
		return fmt.Errorf("test run finished with failures")
	}
	return nil
}

// run performs one complete discover, execute, report cycle. It returns
// whether any case failed so callers can decide the exit code; watch mode
// calls it repeatedly and ignores the failed flag.
func (rc *RunCommand) run(ctx context.Context) (failed bool, err error) {
	// Prepare worker databases if flag is set
	if rc.config.Flags.Prepare {
		if err := rc.preparer.Run(rc.config.Workers, rc.config.Flags.NoFresh); err != nil {
			return false, fmt.Errorf("database preparation failed: %w", err)
		}
		fmt.Println()
	}

	// Discover suites
	suites, err := discoverSuites(rc.config, rc.scanner, rc.filter)
	if err != nil {
		return false, err
	}

	// Restrict to the last run's failing suites if requested
	if rc.config.Flags.OnlyFailed {
		suites, err = rc.onlyFailedSuites(suites)
		if err != nil {
			return false, err
		}
	}

	if len(suites) == 0 {
		color.Yellow("No test suites to execute")
		return false, nil
	}

	// Create and set progress bar
	progressBar := ui.NewProgressBar(len(suites))
	rc.executor.SetProgress(progressBar)

	// Execute suites
	results, duration, err := rc.executor.Execute(ctx, suites)
	if err != nil {
		if ctx.Err() != nil {
			color.Yellow("\nRun aborted")
			return false, nil
		}
		return false, err
	}

	// Parse failures
	var failures []domain.TestFailure
	for _, result := range results {
		if !result.Success {
			failures = append(failures, rc.parser.ParseFailures(result)...)
		}
	}

	report := domain.BuildReport(results, duration, rc.config.Workers)
	if rc.config.Flags.Coverage {
		report.Coverage = rc.collectCoverage(results)
	}

	// Save results
	if err := rc.storage.Save(report, failures); err != nil {
		return false, fmt.Errorf("failed to save test results: %w", err)
	}

	// Print stats. An explicit --format renders the plain summary instead
	// of the stats table.
	output := &domain.RunOutput{Meta: report, Details: failures}
	if rc.config.Flags.Format != "" {
		rendered, err := rc.formatter.Render(report, rc.config.Flags.Format)
		if err != nil {
			return false, err
		}
		fmt.Println(rendered)
	} else if err := rc.formatter.PrintRunStats(output); err != nil {
		return false, err
	}

	if rc.config.Flags.OpenFailures && len(failures) > 0 {
		if err := rc.viewer.View(output); err != nil {
			return false, err
		}
	}

	return !report.Ok(), nil
}

// onlyFailedSuites keeps the suites whose file failed in the last run
func (rc *RunCommand) onlyFailedSuites(suites []domain.SuiteDescriptor) ([]domain.SuiteDescriptor, error) {
	previous, err := rc.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("no previous run results, run the full suite first: %w", err)
	}

	failedPaths := make(map[string]struct{})
	for _, failure := range previous.Details {
		failedPaths[failure.FilePath] = struct{}{}
	}

	var kept []domain.SuiteDescriptor
	for _, suite := range suites {
		if _, ok := failedPaths[suite.FilePath]; ok {
			kept = append(kept, suite)
		}
	}
	return kept, nil
}

// collectCoverage merges the per-suite coverage tables into one report,
// keeping one row per file.
func (rc *RunCommand) collectCoverage(results []domain.SuiteResult) []domain.FileCoverage {
	seen := make(map[string]bool)
	var coverage []domain.FileCoverage
	for _, result := range results {
		for _, row := range rc.parser.ParseCoverage(result.Output) {
			if seen[row.File] {
				continue
			}
			seen[row.File] = true
			coverage = append(coverage, row)
		}
	}
	return coverage
}
