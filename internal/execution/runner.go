package execution

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"wtr/internal/config"
	"wtr/internal/domain"
	"wtr/internal/parser"
)

// CommandRunner executes a single suite by invoking the project's JS test
// runner on the suite's file.
type CommandRunner struct {
	config *config.Config
	parser *parser.BunParser
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(cfg *config.Config, bunParser *parser.BunParser) *CommandRunner {
	return &CommandRunner{config: cfg, parser: bunParser}
}

// Run executes the runner binary for a single test file. Cancellation of ctx
// kills the child process.
func (r *CommandRunner) Run(ctx context.Context, descriptor domain.SuiteDescriptor, workerID int) domain.SuiteResult {
	project, err := r.config.ProjectByName(descriptor.Project)
	if err != nil {
		return domain.SuiteResult{Descriptor: descriptor, Err: err}
	}

	args := append([]string{}, project.Runner...)
	if len(args) == 0 {
		args = []string{"bun", "test"}
	}
	if r.config.Flags.Coverage {
		args = append(args, "--coverage")
	}
	args = append(args, descriptor.Path)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	// Set environment variables
	cmd.Env = os.Environ()
	if project.UsesDatabase {
		cmd.Env = append(cmd.Env, fmt.Sprintf("DB_DATABASE=%s", r.config.GetDatabaseName(workerID)))
	}

	// Set working directory
	cmd.Dir = r.config.ProjectRoot(project)

	start := time.Now()
	output, err := cmd.CombinedOutput()

	result := domain.SuiteResult{
		Descriptor: descriptor,
		Success:    err == nil,
		Output:     string(output),
		Err:        err,
		Duration:   time.Since(start),
	}
	if r.parser != nil {
		result.Cases = r.parser.ParseCases(result)
	}
	return result
}
