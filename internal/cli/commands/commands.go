package commands

import (
	"wtr/internal/cli"
	"wtr/internal/config"
	"wtr/internal/dbprep"
	"wtr/internal/discovery"
	"wtr/internal/domain"
	"wtr/internal/execution"
	"wtr/internal/parser"
	"wtr/internal/storage"
	"wtr/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	Watch    *WatchCommand
	Coverage *CoverageCommand
	List     *ListCommand
	Failures *FailuresCommand
	Prepare  *PrepareCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	caseParser := discovery.NewParser()
	scanner := discovery.NewScanner(cfg.PathsToIgnore, caseParser)
	filter := discovery.NewFilter()
	bunParser := parser.NewBunParser()
	runner := execution.NewCommandRunner(cfg, bunParser)
	scheduler := execution.NewRoundRobinScheduler()
	executor := execution.NewWorkerPool(cfg, runner, scheduler)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	dbManager := dbprep.NewDatabaseManager(cfg)
	migrator := dbprep.NewSchemaMigrator(cfg, dbManager)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	run := NewRunCommand(cfg, scanner, filter, executor, bunParser, jsonStorage, formatter, migrator, errorViewer)

	return &Commands{
		Run:      run,
		Watch:    NewWatchCommand(cfg, run),
		Coverage: NewCoverageCommand(cfg, run),
		List:     NewListCommand(cfg, scanner, filter, formatter, jsonStorage),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
		Prepare:  NewPrepareCommand(cfg, migrator),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.ApplyFlags(flags.ToConfigFlags())
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run test suites once",
		Long:    "Discover and execute test suites in a single pass, then report results",
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	addRunFlags(runCmd, flags)
	runCmd.Flags().BoolVar(&flags.Coverage, "coverage", false, "Collect line and function coverage")
	rootCmd.AddCommand(runCmd)

	// Watch command
	watchCmd := &cobra.Command{
		Use:     "watch",
		Short:   "Re-run affected suites on file changes",
		Long:    "Run test suites and keep watching the project roots, re-running on source changes until interrupted",
		RunE:    c.Watch.Execute,
		PreRunE: applyFlags,
	}
	addRunFlags(watchCmd, flags)
	rootCmd.AddCommand(watchCmd)

	// Coverage command
	coverageCmd := &cobra.Command{
		Use:     "coverage",
		Short:   "Run test suites once with coverage",
		Long:    "Single-run execution with instrumented line and function coverage per file",
		RunE:    c.Coverage.Execute,
		PreRunE: applyFlags,
	}
	addRunFlags(coverageCmd, flags)
	rootCmd.AddCommand(coverageCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered suites",
		Long:    "Scan and list all test suites without executing them",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.Project, "project", "P", "", "Project to scan (web, api or all)")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter suites by file name pattern (supports wildcards, e.g. '*auth*')")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where suite discovery should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "cases", "c", false, "List test cases instead of suite files")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View test failures interactively",
		Long:    "Display test failures from the last run in an interactive viewer",
		RunE:    c.Failures.Execute,
		PreRunE: applyFlags,
	}
	rootCmd.AddCommand(failuresCmd)

	// Prepare command
	prepareCmd := &cobra.Command{
		Use:     "prepare",
		Short:   "Prepare per-worker test databases",
		Long:    "Create the workers' test databases and run the api project's migrations against each of them",
		RunE:    c.Prepare.Execute,
		PreRunE: applyFlags,
	}
	prepareCmd.Flags().IntVarP(&flags.Workers, "workers", "w", config.DefaultWorkers, "Number of worker databases to prepare")
	prepareCmd.Flags().BoolVar(&flags.NoFresh, "no-fresh", false, "Apply only pending migrations instead of a fresh schema")
	rootCmd.AddCommand(prepareCmd)
}

// addRunFlags registers the flags shared by run, watch and coverage
func addRunFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().IntVarP(&flags.Workers, "workers", "w", config.DefaultWorkers, "Number of parallel workers (1 runs suites sequentially)")
	cmd.Flags().StringVarP(&flags.Project, "project", "P", "", "Project to run (web, api or all)")
	cmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where suite discovery should start")
	cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter suites by file name pattern (supports wildcards, e.g. '*auth*')")
	cmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop scheduling new suites after the first failure")
	cmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only suites that failed in the last run")
	cmd.Flags().BoolVarP(&flags.Prepare, "prepare", "m", false, "Prepare worker test databases before executing")
	cmd.Flags().BoolVar(&flags.NoFresh, "no-fresh", false, "Apply only pending migrations instead of a fresh schema")
	cmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	cmd.Flags().StringVar(&flags.Format, "format", "", "Summary format: text (default stats table) or json")
}

// discoverSuites is the discovery pipeline shared by the run-family and list
// commands: scan every selected project root, then apply the name filter.
func discoverSuites(cfg *config.Config, scanner *discovery.Scanner, filter *discovery.Filter) ([]domain.SuiteDescriptor, error) {
	projects, err := cfg.SelectedProjects()
	if err != nil {
		return nil, err
	}
	// An explicit --test-path names one root; attribute it to the first
	// selected project rather than scanning it once per project.
	if cfg.Flags.TestPath != "" && len(projects) > 1 {
		projects = projects[:1]
	}

	var suites []domain.SuiteDescriptor
	for _, project := range projects {
		patterns := project.Patterns
		if len(patterns) == 0 {
			patterns = config.DefaultPatterns
		}
		found, err := scanner.Scan(cfg.GetTestPath(project), project.Name, patterns)
		if err != nil {
			return nil, err
		}
		suites = append(suites, found...)
	}

	return filter.ByName(suites, cfg.Flags.NameFilter), nil
}
