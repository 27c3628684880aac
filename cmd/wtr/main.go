package main

import (
	"fmt"
	"os"

	"wtr/internal/cli"
	"wtr/internal/cli/commands"
	"wtr/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "wtr",
		Short:   "Web test runner",
		Long:    `A test runner front-end for the web client and api server. Discovers bun test suites across both projects, executes them with optional parallelism and coverage, and keeps failure reports between runs.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()
	if err := cfg.LoadFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
