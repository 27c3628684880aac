package commands

import (
	"wtr/internal/config"
	"wtr/internal/discovery"
	"wtr/internal/storage"
	"wtr/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	suites, err := discoverSuites(lc.config, lc.scanner, lc.filter)
	if err != nil {
		return err
	}

	if len(suites) == 0 {
		color.Yellow("No test suites found")
		return nil
	}

	// Mark suites that failed in the last run, if results exist
	failedPaths := make(map[string]struct{})
	if previous, err := lc.storage.Load(); err == nil {
		for _, failure := range previous.Details {
			failedPaths[failure.FilePath] = struct{}{}
		}
	}

	return lc.formatter.PrintSuiteList(suites, lc.config.Flags.TestCases, failedPaths)
}
