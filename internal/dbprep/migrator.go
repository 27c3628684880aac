package dbprep

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"wtr/internal/config"
	"wtr/internal/domain"
)

// SchemaMigrator implements Preparer by running the api project's migration
// script once per worker database.
type SchemaMigrator struct {
	config          *config.Config
	databaseManager *DatabaseManager
}

// NewSchemaMigrator creates a new SchemaMigrator
func NewSchemaMigrator(cfg *config.Config, dbManager *DatabaseManager) *SchemaMigrator {
	return &SchemaMigrator{
		config:          cfg,
		databaseManager: dbManager,
	}
}

// Run executes migrations in parallel for all worker databases
func (sm *SchemaMigrator) Run(workerCount int, noFresh bool) error {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║             Preparing Worker Test Databases                ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	// Check available databases
	availableWorkers, err := sm.databaseManager.CheckAndCreateDatabases(workerCount)
	if err != nil {
		return fmt.Errorf("failed to check databases: %w", err)
	}

	if len(availableWorkers) == 0 {
		return fmt.Errorf("no test databases available")
	}

	// Count migration files to determine total progress
	migrationFiles, err := sm.findMigrationFiles()
	if err != nil {
		return fmt.Errorf("failed to find migration files: %w", err)
	}

	migrationCount := len(migrationFiles)
	if migrationCount == 0 {
		migrationCount = 1
	}
	totalProgress := len(availableWorkers) * migrationCount

	color.White("Workers: %d | Migration files: %d | Total progress: %d\n\n", len(availableWorkers), len(migrationFiles), totalProgress)

	var progressMu sync.Mutex
	completedCount := 0

	bar := progressbar.NewOptions(totalProgress,
		progressbar.OptionSetDescription(
			color.CyanString("Migrating: ")+
				color.GreenString("[completed: 0/%d]", totalProgress),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	// Start workers
	var wg sync.WaitGroup
	results := make(chan domain.PrepareResult, len(availableWorkers))
	startTime := time.Now()

	for _, workerID := range availableWorkers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			results <- sm.migrateWorker(id, bar, &completedCount, &progressMu, noFresh)
		}(workerID)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var failed []domain.PrepareResult
	for result := range results {
		if !result.Success {
			failed = append(failed, result)
		}
	}

	bar.Finish()
	duration := time.Since(startTime)

	fmt.Print("\n")
	if len(failed) == 0 {
		color.Green("✓ Databases prepared for all %d workers\n", len(availableWorkers))
		color.White("Duration: %s\n", duration.Round(time.Millisecond))
		return nil
	}

	color.Red("✗ Preparation failed for %d worker(s)\n", len(failed))
	for _, result := range failed {
		color.Red("  Worker %d (DB: %s): %v\n", result.WorkerID, sm.config.GetDatabaseName(result.WorkerID), result.Error)
	}
	return fmt.Errorf("preparation failed for %d worker(s)", len(failed))
}

// findMigrationFiles discovers the api project's migration files
func (sm *SchemaMigrator) findMigrationFiles() ([]string, error) {
	api, err := sm.config.ProjectByName("api")
	if err != nil {
		return nil, err
	}

	migrationsPath := filepath.Join(sm.config.ProjectRoot(api), "db", "migrations")
	var migrationFiles []string

	err = filepath.WalkDir(migrationsPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".ts") || strings.HasSuffix(d.Name(), ".sql") {
			migrationFiles = append(migrationFiles, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	return migrationFiles, nil
}

// migrateWorker runs the migration script against one worker database with
// streaming output and progress tracking
func (sm *SchemaMigrator) migrateWorker(workerID int, bar *progressbar.ProgressBar, completedCount *int, progressMu *sync.Mutex, noFresh bool) domain.PrepareResult {
	api, err := sm.config.ProjectByName("api")
	if err != nil {
		return domain.PrepareResult{WorkerID: workerID, Error: err}
	}
	apiRoot := sm.config.ProjectRoot(api)

	// Fresh runs drop and recreate the schema before applying migrations
	script := "db:fresh"
	if noFresh {
		script = "db:migrate"
	}

	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "bun", "run", script)

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, fmt.Sprintf("DB_DATABASE=%s", sm.config.GetDatabaseName(workerID)))
	cmd.Dir = apiRoot

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return domain.PrepareResult{WorkerID: workerID, Error: fmt.Errorf("failed to create stdout pipe: %w", err)}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return domain.PrepareResult{WorkerID: workerID, Error: fmt.Errorf("failed to create stderr pipe: %w", err)}
	}

	if err := cmd.Start(); err != nil {
		return domain.PrepareResult{WorkerID: workerID, Error: fmt.Errorf("failed to start command: %w", err)}
	}

	var outputBuilder strings.Builder
	var outputMu sync.Mutex
	var scanWg sync.WaitGroup

	processLine := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}

		// Skip tool chatter that isn't migration progress
		skipPatterns := []string{"$ ", "Dropping schema", "Schema dropped", "Nothing to migrate"}
		for _, skip := range skipPatterns {
			if strings.HasPrefix(line, skip) {
				return
			}
		}

		progressMu.Lock()
		*completedCount++
		currentCount := *completedCount
		maxCount := bar.GetMax()
		progressMu.Unlock()

		bar.Set(currentCount)
		bar.Describe(color.CyanString("Migrating: ") +
			color.GreenString("[completed: %d/%d]", currentCount, maxCount))
	}

	scan := func(r interface{ Read([]byte) (int, error) }) {
		defer scanWg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := scanner.Text()
			outputMu.Lock()
			outputBuilder.WriteString(line)
			outputBuilder.WriteString("\n")
			outputMu.Unlock()
			processLine(line)
		}
	}

	scanWg.Add(2)
	go scan(stdout)
	go scan(stderr)

	err = cmd.Wait()
	scanWg.Wait()

	return domain.PrepareResult{
		WorkerID: workerID,
		Success:  err == nil,
		Output:   outputBuilder.String(),
		Error:    err,
	}
}
