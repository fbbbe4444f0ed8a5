package commands

import (
	"simtest/internal/config"
	"simtest/internal/discovery"
	"simtest/internal/logging"
	"simtest/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    discovery.NewFilter(),
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	lc.config.SourceDir = args[0]
	log := logging.New(lc.config.Verbose, cmd.OutOrStdout())

	sources, err := discovery.NewScanner(log).Scan(lc.config.SourceDir)
	if err != nil {
		return err
	}
	sources = lc.filter.FilterByName(sources, lc.config.Flags.NameFilter)

	if len(sources) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	listings := make([]ui.Listing, 0, len(sources))
	for _, src := range sources {
		exp, err := discovery.ParseDirectives(src.Path)
		if err != nil {
			return err
		}
		listings = append(listings, ui.Listing{Source: src, Expectations: exp})
	}

	lc.formatter.PrintList(listings)
	return nil
}
