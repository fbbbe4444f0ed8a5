package commands

import (
	"simtest/internal/config"
	"simtest/internal/storage"
	"simtest/internal/ui"

	"github.com/spf13/cobra"
)

// FailuresCommand opens the viewer on the results of the last run
type FailuresCommand struct {
	config      *config.Config
	viewer      ui.Viewer
	openStorage func(path string) storage.Storage
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, viewer ui.Viewer) *FailuresCommand {
	return &FailuresCommand{
		config:      cfg,
		viewer:      viewer,
		openStorage: storage.Open,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := fc.openStorage(fc.config.ResultsPath()).Load()
	if err != nil {
		return err
	}

	return fc.viewer.View(report)
}
