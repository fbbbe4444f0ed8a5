// Package harness builds test cases from assembly sources, runs them on the
// simulator and classifies the results.
package harness

import (
	"context"
	"errors"
	"strings"

	"simtest/internal/discovery"
	"simtest/internal/domain"
	"simtest/internal/execution"
	"simtest/internal/logging"
	"simtest/internal/parser"
)

// TestCase is one assembly test: where its artifact lives, what it must
// print, how fast it may run, and what happened when it ran.
type TestCase struct {
	Name     string
	Source   string
	Dir      string // Output directory owned by this case
	Artifact string // Compiled program loaded into the simulator

	ExpectedOutput *string
	ExpectedSpeed  *int64

	// Set by Run
	ActualOutput   string
	ActualSpeed    int64
	HasSpeed       bool
	Halted         bool // Simulator stopped on the halt pin
	HasRun         bool
	Failed         bool
	ExecutionError bool
	Err            error
}

// NewTestCase creates a case that has not run yet
func NewTestCase(name, source, dir, artifact string, exp discovery.Expectations) *TestCase {
	return &TestCase{
		Name:           name,
		Source:         source,
		Dir:            dir,
		Artifact:       artifact,
		ExpectedOutput: exp.Output,
		ExpectedSpeed:  exp.SpeedLimit,
	}
}

// Run executes the artifact on the simulator and classifies the outcome.
// A case runs at most once; later calls return the recorded verdict.
func (tc *TestCase) Run(ctx context.Context, sim execution.Simulator, p parser.Parser, log *logging.Logger) bool {
	if tc.HasRun {
		return tc.Failed
	}

	log.Logf(logging.LevelTestDetail, "Running test: %s", tc.Name)
	text, err := sim.Simulate(ctx, tc.Artifact)
	tc.HasRun = true

	if err != nil {
		tc.ExecutionError = true
		tc.Failed = true
		tc.Err = err

		log.Errorf("Error running test: %s", tc.Name)
		var execErr *execution.ExecError
		if errors.As(err, &execErr) {
			log.Printf("%v", execErr)
			if out := strings.TrimSpace(execErr.Stdout); out != "" {
				log.Printf("%s", out)
			}
			if out := strings.TrimSpace(execErr.Stderr); out != "" {
				log.Printf("%s", out)
			}
		} else {
			log.Printf("%v", err)
		}
		return tc.Failed
	}

	out := p.Parse(text)
	tc.ActualOutput = out.Text
	tc.ActualSpeed = out.Speed
	tc.HasSpeed = out.HasSpeed
	tc.Halted = out.Halted
	tc.Failed = !tc.OutputOK() || !tc.SpeedOK()
	return tc.Failed
}

// OutputOK reports whether the program printed what was expected.
// Without a #prints directive there is nothing to check.
func (tc *TestCase) OutputOK() bool {
	if tc.ExpectedOutput == nil {
		return true
	}
	return tc.ActualOutput == *tc.ExpectedOutput
}

// SpeedOK reports whether the tick figure is within the limit.
// A limit with no figure reported by the simulator cannot be satisfied.
func (tc *TestCase) SpeedOK() bool {
	if tc.ExpectedSpeed == nil {
		return true
	}
	if !tc.HasSpeed {
		return false
	}
	return tc.ActualSpeed <= *tc.ExpectedSpeed
}

// Status classifies the case for storage
func (tc *TestCase) Status() domain.CaseStatus {
	switch {
	case !tc.HasRun:
		return domain.StatusNotRun
	case tc.ExecutionError:
		return domain.StatusError
	case tc.Failed:
		return domain.StatusFailed
	default:
		return domain.StatusPassed
	}
}

// Record exports the case outcome
func (tc *TestCase) Record() domain.CaseRecord {
	rec := domain.CaseRecord{
		Name:           tc.Name,
		Source:         tc.Source,
		Artifact:       tc.Artifact,
		Status:         tc.Status(),
		ExpectedOutput: tc.ExpectedOutput,
		SpeedLimit:     tc.ExpectedSpeed,
	}
	if tc.Err != nil {
		rec.Error = tc.Err.Error()
	}
	if !tc.HasRun || tc.ExecutionError {
		return rec
	}

	rec.ActualOutput = tc.ActualOutput
	rec.Halted = tc.Halted
	rec.OutputOK = tc.OutputOK()
	rec.SpeedOK = tc.SpeedOK()
	if tc.HasSpeed {
		speed := tc.ActualSpeed
		rec.ActualSpeed = &speed
	}
	return rec
}
