package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"simtest/internal/cli"
	"simtest/internal/cli/commands"
	"simtest/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Create root command
	rootCmd := &cobra.Command{
		Short:         "Assembly test harness for simulated processors",
		Long:          `Compile every .asm test under a directory, run it on the circuit simulator and check its output (#prints) and tick count (#limit).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetArgs(args)

	cfg := config.New()
	var flags cli.Flags

	cmds := commands.NewCommands(cfg)
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, commands.ErrTestsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
