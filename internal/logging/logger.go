// Package logging routes all harness output through a leveled logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Verbosity levels accepted by --verbose
const (
	LevelSummary       = 0
	LevelBasic         = 1
	LevelTestDetail    = 2
	LevelCompileDetail = 3
	LevelAll           = 4
)

// Logger prints messages gated by a verbosity level
type Logger struct {
	level int
	out   io.Writer
}

// New creates a Logger writing to out. A nil writer means stdout.
func New(level int, out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	return &Logger{level: level, out: out}
}

// Discard returns a logger that prints nothing
func Discard() *Logger {
	return &Logger{level: LevelSummary, out: io.Discard}
}

// Level returns the configured verbosity
func (l *Logger) Level() int {
	return l.level
}

// Writer returns the destination of this logger
func (l *Logger) Writer() io.Writer {
	return l.out
}

// With returns a logger with the same level writing to out
func (l *Logger) With(out io.Writer) *Logger {
	return &Logger{level: l.level, out: out}
}

// Enabled reports whether messages at level are printed
func (l *Logger) Enabled(level int) bool {
	return l.level >= level
}

// Logf prints when the verbosity is at least level
func (l *Logger) Logf(level int, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Printf always prints
func (l *Logger) Printf(format string, args ...any) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Errorf always prints, highlighted in red
func (l *Logger) Errorf(format string, args ...any) {
	red := color.New(color.FgRed)
	red.Fprintf(l.out, format+"\n", args...)
}

// Warnf always prints, highlighted in yellow
func (l *Logger) Warnf(format string, args ...any) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(l.out, format+"\n", args...)
}
