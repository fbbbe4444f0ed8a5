package commands

import (
	"errors"

	"simtest/internal/cli"
	"simtest/internal/config"
	"simtest/internal/ui"

	"github.com/spf13/cobra"
)

// ErrTestsFailed is returned when the run completed but at least one test failed
var ErrTestsFailed = errors.New("one or more tests failed")

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	formatter := ui.NewFormatter(nil)
	viewer := ui.NewFailureViewer()

	return &Commands{
		Run:      NewRunCommand(cfg, formatter),
		List:     NewListCommand(cfg, formatter),
		Failures: NewFailuresCommand(cfg, viewer),
	}
}

// loadConfig layers the project file, the environment and the flags over the defaults
func loadConfig(cfg *config.Config, flags *cli.Flags) error {
	projectFile := flags.ProjectFile
	if projectFile == "" {
		projectFile = config.DefaultProjectFile
	}
	if err := cfg.LoadProject(projectFile); err != nil {
		return err
	}
	cfg.LoadEnv(".")
	cfg.ApplyFlags(flags.ToConfigFlags())
	return nil
}

// Register wires the commands into the root command.
// The root command itself runs the suite: simtest <tests_dir> <circuit>.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.Use = "simtest <tests_dir> <circuit>"
	rootCmd.Args = cobra.ExactArgs(2)
	rootCmd.RunE = c.Run.Execute
	rootCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return loadConfig(cfg, flags)
	}

	rootCmd.Flags().StringVarP(&flags.OutputDir, "out", "o", "", "Output folder to compile tests into (default \".\")")
	rootCmd.Flags().StringVarP(&flags.Template, "template", "t", "", "Template .circ file without the specific implementation (default \""+config.DefaultTemplate+"\")")
	rootCmd.Flags().IntVarP(&flags.Verbose, "verbose", "v", 0, "Verbose level from 0 (summary) to 4 (everything)")
	rootCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of simulator processes to run at once (default 1)")
	rootCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g. 'loop*' or '*mul*')")
	rootCmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar on stderr")
	rootCmd.Flags().StringVar(&flags.Simulator, "simulator", "", "Simulator executable (default \""+config.DefaultSimulator+"\")")
	rootCmd.Flags().StringVar(&flags.Assembler, "assembler", "", "Assembler command template with {source} and {out}")
	rootCmd.PersistentFlags().StringVar(&flags.ProjectFile, "config", "", "Project configuration file (default \""+config.DefaultProjectFile+"\")")

	listCmd := &cobra.Command{
		Use:   "list <tests_dir>",
		Short: "List discovered tests",
		Long:  "Scan for .asm tests and print their #prints and #limit directives without compiling",
		Args:  cobra.ExactArgs(1),
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cfg, flags)
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern")
	listCmd.Flags().IntVarP(&flags.Verbose, "verbose", "v", 0, "Verbose level from 0 to 4")
	rootCmd.AddCommand(listCmd)

	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display the failed tests of the last run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Failures.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cfg, flags)
		},
	}
	failuresCmd.Flags().StringVarP(&flags.OutputDir, "out", "o", "", "Output folder of the run to inspect")
	rootCmd.AddCommand(failuresCmd)
}
