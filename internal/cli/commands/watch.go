package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"wtr/internal/config"
	"wtr/internal/watch"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// WatchCommand handles the watch command
type WatchCommand struct {
	config *config.Config
	run    *RunCommand
}

// NewWatchCommand creates a new WatchCommand
func NewWatchCommand(cfg *config.Config, run *RunCommand) *WatchCommand {
	return &WatchCommand{
		config: cfg,
		run:    run,
	}
}

// Execute runs the command
func (wc *WatchCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initial full pass. Failures do not end the session, watch keeps
	// running so the next save can fix them.
	if _, err := wc.run.run(ctx); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}

	projects, err := wc.config.SelectedProjects()
	if err != nil {
		return err
	}
	var roots []string
	for _, project := range projects {
		roots = append(roots, wc.config.ProjectRoot(project))
	}

	color.Cyan("\nWatching for changes (press Ctrl+C to stop)...")

	watcher := watch.NewWatcher(roots, wc.config.PathsToIgnore)
	err = watcher.Watch(ctx, func(paths []string) {
		fmt.Println()
		color.Cyan("Change detected, re-running tests")
		for _, path := range paths {
			color.White("  %s", path)
		}
		fmt.Println()

		if _, err := wc.run.run(ctx); err != nil {
			color.Red("run failed: %v", err)
		}
		if ctx.Err() == nil {
			color.Cyan("\nWatching for changes (press Ctrl+C to stop)...")
		}
	})

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Println()
	color.Yellow("Watch stopped")
	return nil
}
