package commands

import (
	"context"
	"fmt"
	"os"

	"simtest/internal/config"
	"simtest/internal/domain"
	"simtest/internal/execution"
	"simtest/internal/harness"
	"simtest/internal/logging"
	"simtest/internal/storage"
	"simtest/internal/ui"

	"github.com/spf13/cobra"
)

// RunCommand compiles, runs and verifies every test under a directory
type RunCommand struct {
	config       *config.Config
	formatter    *ui.Formatter
	openStorage  func(path string) storage.Storage
	openRecorder func(ctx context.Context, dsn string) (storage.Recorder, error)
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, formatter *ui.Formatter) *RunCommand {
	return &RunCommand{
		config:       cfg,
		formatter:    formatter,
		openStorage:  storage.Open,
		openRecorder: storage.OpenRecorder,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := rc.config
	cfg.SourceDir = args[0]
	cfg.Circuit = args[1]

	log := logging.New(cfg.Verbose, cmd.OutOrStdout())

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	pool := execution.NewWorkerPool(cfg.Processors, execution.NewInterleavedScheduler())
	suite, err := harness.NewSuite(ctx, cfg, log, harness.Deps{Pool: pool})
	if err != nil {
		return err
	}

	if len(suite.Cases()) == 0 {
		log.Warnf("No tests to execute")
		return nil
	}
	if cfg.Flags.Progress {
		pool.SetProgress(ui.NewProgressBar(len(suite.Cases())))
	}

	runErr := suite.RunAll(ctx)
	report := suite.Report(suite.Summary().Duration)

	rc.persist(ctx, log, report)
	rc.formatter.PrintSummary(report)

	if runErr != nil {
		return runErr
	}
	if suite.AnyFailed {
		return ErrTestsFailed
	}
	return nil
}

// persist saves the report for the failures command and appends it to the
// run history when a DSN is configured. Failures here never fail the run.
func (rc *RunCommand) persist(ctx context.Context, log *logging.Logger, report *domain.RunReport) {
	results := rc.openStorage(rc.config.ResultsPath())
	if err := results.Save(report); err != nil {
		log.Errorf("failed to save test results: %v", err)
	} else {
		log.Logf(logging.LevelBasic, "Results saved to %s", results.Path())
	}

	if rc.config.HistoryDSN == "" {
		return
	}
	if err := recordHistory(ctx, rc.openRecorder, rc.config.HistoryDSN, report); err != nil {
		log.Errorf("failed to record run history: %v", err)
	}
}

func recordHistory(ctx context.Context, open func(context.Context, string) (storage.Recorder, error), dsn string, report *domain.RunReport) error {
	history, err := open(ctx, dsn)
	if err != nil {
		return err
	}
	defer history.Close()
	return history.Record(ctx, report)
}
