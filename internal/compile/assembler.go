// Package compile drives the external assembler for each test source.
package compile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"simtest/internal/logging"
)

// Placeholders expanded in the assembler command template
const (
	SourcePlaceholder = "{source}"
	OutPlaceholder    = "{out}"
)

// CompileError reports an assembler run that did not exit cleanly
type CompileError struct {
	Source   string
	ExitCode int
	Output   string
	Err      error
}

func (e *CompileError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("compile %s: assembler exited with status %d", e.Source, e.ExitCode)
	}
	return fmt.Sprintf("compile %s: %v", e.Source, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Assembler runs the assembler command template against a source
type Assembler struct {
	command string
	log     *logging.Logger
}

// NewAssembler creates an Assembler from a command template such as
// "python assembler.py {source} -o {out}".
func NewAssembler(command string, log *logging.Logger) *Assembler {
	if log == nil {
		log = logging.Discard()
	}
	return &Assembler{command: command, log: log}
}

// Args expands the command template for one source and output directory.
// A template without placeholders gets both appended in that order.
func (a *Assembler) Args(source, outDir string) []string {
	fields := strings.Fields(a.command)
	if !strings.Contains(a.command, SourcePlaceholder) && !strings.Contains(a.command, OutPlaceholder) {
		return append(fields, source, outDir)
	}

	args := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.ReplaceAll(field, SourcePlaceholder, source)
		field = strings.ReplaceAll(field, OutPlaceholder, outDir)
		args = append(args, field)
	}
	return args
}

// Compile creates outDir if needed and assembles source into it
func (a *Assembler) Compile(ctx context.Context, source, outDir string) error {
	a.log.Logf(logging.LevelAll, "Creating directory: %s", outDir)
	if _, err := os.Stat(outDir); err == nil {
		a.log.Logf(logging.LevelAll, "Directory exists: %s", outDir)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", outDir, err)
	}

	args := a.Args(source, outDir)
	if len(args) == 0 {
		return &CompileError{Source: source, ExitCode: -1, Err: errors.New("empty assembler command")}
	}

	a.log.Logf(logging.LevelCompileDetail, "Compiling: %s", source)
	a.log.Logf(logging.LevelAll, "Assembler command: %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		cerr := &CompileError{Source: source, ExitCode: -1, Output: output.String(), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr.ExitCode = exitErr.ExitCode()
		}
		return cerr
	}

	if output.Len() > 0 {
		a.log.Logf(logging.LevelCompileDetail, "%s", strings.TrimRight(output.String(), "\n"))
	}
	return nil
}
