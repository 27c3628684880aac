package commands

import (
	"wtr/internal/config"

	"github.com/spf13/cobra"
)

// CoverageCommand handles the coverage command
type CoverageCommand struct {
	config *config.Config
	run    *RunCommand
}

// NewCoverageCommand creates a new CoverageCommand
func NewCoverageCommand(cfg *config.Config, run *RunCommand) *CoverageCommand {
	return &CoverageCommand{
		config: cfg,
		run:    run,
	}
}

// Execute runs the command
func (cc *CoverageCommand) Execute(cmd *cobra.Command, args []string) error {
	cc.config.Flags.Coverage = true
	return cc.run.Execute(cmd, args)
}
