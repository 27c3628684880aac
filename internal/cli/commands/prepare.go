package commands

import (
	"wtr/internal/config"
	"wtr/internal/dbprep"

	"github.com/spf13/cobra"
)

// PrepareCommand handles the prepare command
type PrepareCommand struct {
	config   *config.Config
	preparer dbprep.Preparer
}

// NewPrepareCommand creates a new PrepareCommand
func NewPrepareCommand(cfg *config.Config, preparer dbprep.Preparer) *PrepareCommand {
	return &PrepareCommand{
		config:   cfg,
		preparer: preparer,
	}
}

// Execute runs the command
func (pc *PrepareCommand) Execute(cmd *cobra.Command, args []string) error {
	return pc.preparer.Run(pc.config.Workers, pc.config.Flags.NoFresh)
}
