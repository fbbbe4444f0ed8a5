package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Signals requested from the simulator in -tty mode
const TTYSignals = "halt,tty,speed"

// Simulator runs a compiled artifact and returns its captured output
type Simulator interface {
	Simulate(ctx context.Context, artifact string) (string, error)
}

// ExecError reports a simulator run that could not be launched or exited non-zero
type ExecError struct {
	Launch   bool // The process never started (e.g. executable not found)
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	if e.Launch {
		return fmt.Sprintf("simulator could not be started: %v", e.Err)
	}
	return fmt.Sprintf("simulator exited with status %d", e.ExitCode)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Runner executes the simulator with a template circuit
type Runner struct {
	executable string
	template   string
	circuit    string
}

// NewRunner creates a new Runner
func NewRunner(executable, template, circuit string) *Runner {
	return &Runner{
		executable: executable,
		template:   template,
		circuit:    circuit,
	}
}

// Args builds the simulator arguments: load the template headless, load the
// artifact into memory, and substitute the circuit under test into the template.
func (r *Runner) Args(artifact string) []string {
	return []string{
		r.template,
		"-tty", TTYSignals,
		"-load", artifact,
		"-sub", r.template, r.circuit,
	}
}

// Simulate runs the simulator for one artifact and returns its standard output
func (r *Runner) Simulate(ctx context.Context, artifact string) (string, error) {
	cmd := exec.CommandContext(ctx, r.executable, r.Args(artifact)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	execErr := &ExecError{
		Launch:   true,
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		execErr.Launch = false
		execErr.ExitCode = exitErr.ExitCode()
	}
	return stdout.String(), execErr
}
