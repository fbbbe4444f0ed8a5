package harness

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"simtest/internal/compile"
	"simtest/internal/config"
	"simtest/internal/discovery"
	"simtest/internal/domain"
	"simtest/internal/execution"
	"simtest/internal/logging"
	"simtest/internal/parser"
)

// Compiler assembles one source into an output directory
type Compiler interface {
	Compile(ctx context.Context, source, outDir string) error
}

// Deps are the collaborators of a Suite. Nil fields are built from the config.
type Deps struct {
	Scanner   *discovery.Scanner
	Filter    *discovery.Filter
	Compiler  Compiler
	Simulator execution.Simulator
	Parser    parser.Parser
	Pool      *execution.WorkerPool
}

// Suite is the ordered set of test cases discovered under a source directory
type Suite struct {
	config *config.Config
	log    *logging.Logger

	simulator execution.Simulator
	parser    parser.Parser
	pool      *execution.WorkerPool

	cases     []*TestCase
	AnyFailed bool
	summary   execution.Summary
}

// NewSuite discovers, compiles and reads the expectations of every test
// source under cfg.SourceDir. A compile failure is reported and the case is
// kept; a malformed directive aborts construction.
func NewSuite(ctx context.Context, cfg *config.Config, log *logging.Logger, deps Deps) (*Suite, error) {
	if log == nil {
		log = logging.Discard()
	}
	deps = withDefaults(cfg, log, deps)

	s := &Suite{
		config:    cfg,
		log:       log,
		simulator: deps.Simulator,
		parser:    deps.Parser,
		pool:      deps.Pool,
	}

	sources, err := deps.Scanner.Scan(cfg.SourceDir)
	if err != nil {
		return nil, err
	}
	sources = deps.Filter.FilterByName(sources, cfg.Flags.NameFilter)

	for _, src := range sources {
		dir := cfg.CaseDir(src.Key)
		if err := deps.Compiler.Compile(ctx, src.Path, dir); err != nil {
			log.Errorf("Error compiling: %s", src.Path)
			log.Logf(logging.LevelCompileDetail, "%v", err)
		}

		exp, err := discovery.ParseDirectives(src.Path)
		if err != nil {
			return nil, err
		}
		if exp.Output != nil {
			log.Logf(logging.LevelAll, "Expected test result: %s", *exp.Output)
		}
		if exp.SpeedLimit != nil {
			log.Logf(logging.LevelAll, "Expected test speed: %d", *exp.SpeedLimit)
		}

		s.cases = append(s.cases, NewTestCase(src.Name, src.Path, dir, cfg.ArtifactPath(src.Key), exp))
	}

	return s, nil
}

func withDefaults(cfg *config.Config, log *logging.Logger, deps Deps) Deps {
	if deps.Scanner == nil {
		deps.Scanner = discovery.NewScanner(log)
	}
	if deps.Filter == nil {
		deps.Filter = discovery.NewFilter()
	}
	if deps.Compiler == nil {
		deps.Compiler = compile.NewAssembler(cfg.AssemblerCommand, log)
	}
	if deps.Simulator == nil {
		deps.Simulator = execution.NewRunner(cfg.Simulator, cfg.TemplatePath, cfg.Circuit)
	}
	if deps.Parser == nil {
		deps.Parser = parser.NewLogisimParser()
	}
	if deps.Pool == nil {
		deps.Pool = execution.NewWorkerPool(cfg.Processors, execution.NewInterleavedScheduler())
	}
	return deps
}

// Cases returns the test cases in discovery order
func (s *Suite) Cases() []*TestCase {
	return s.cases
}

// Summary returns the counts of the last RunAll
func (s *Suite) Summary() execution.Summary {
	return s.summary
}

// caseJob runs one case and buffers its report so reports can be printed in discovery order
type caseJob struct {
	tc     *TestCase
	suite  *Suite
	output bytes.Buffer
}

func (j *caseJob) Run(ctx context.Context) bool {
	log := j.suite.log.With(&j.output)
	failed := j.tc.Run(ctx, j.suite.simulator, j.suite.parser, log)
	j.tc.Report(log)
	return failed
}

// RunAll runs every case and prints each report in discovery order.
// It returns the context error if the run was interrupted.
func (s *Suite) RunAll(ctx context.Context) error {
	jobs := make([]*caseJob, len(s.cases))
	poolJobs := make([]execution.Job, len(s.cases))
	for i, tc := range s.cases {
		jobs[i] = &caseJob{tc: tc, suite: s}
		poolJobs[i] = jobs[i]
	}

	out := s.log.Writer()
	s.summary = s.pool.Execute(ctx, poolJobs, func(i int) {
		if jobs[i].tc.HasRun {
			out.Write(jobs[i].output.Bytes())
			return
		}
		jobs[i].tc.Report(s.log)
	})

	s.AnyFailed = false
	for _, tc := range s.cases {
		s.AnyFailed = s.AnyFailed || tc.Failed
	}
	return ctx.Err()
}

// RunTest runs the single case called name
func (s *Suite) RunTest(ctx context.Context, name string) error {
	for _, tc := range s.cases {
		if tc.Name != name {
			continue
		}
		failed := tc.Run(ctx, s.simulator, s.parser, s.log)
		s.AnyFailed = s.AnyFailed || failed
		tc.Report(s.log)
		return nil
	}
	return fmt.Errorf("test not found: %s", name)
}

// Report exports the outcome of the suite for storage
func (s *Suite) Report(duration time.Duration) *domain.RunReport {
	report := &domain.RunReport{
		Meta: domain.RunMeta{
			Circuit:         s.config.Circuit,
			Template:        s.config.TemplatePath,
			TotalCases:      len(s.cases),
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Workers:         s.config.Processors,
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Cases: make([]domain.CaseRecord, 0, len(s.cases)),
	}

	for _, tc := range s.cases {
		rec := tc.Record()
		switch rec.Status {
		case domain.StatusPassed:
			report.Meta.PassedCases++
		case domain.StatusFailed:
			report.Meta.FailedCases++
		case domain.StatusError:
			report.Meta.ErroredCases++
		}
		report.Cases = append(report.Cases, rec)
	}
	return report
}
