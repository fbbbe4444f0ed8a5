package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"simtest/internal/discovery"
	"simtest/internal/domain"
)

// Formatter formats and displays run summaries and test listings
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter. A nil writer means stdout.
func NewFormatter(out io.Writer) *Formatter {
	if out == nil {
		out = os.Stdout
	}
	return &Formatter{out: out}
}

const (
	tableTop = "┌─────────────────────────────────┬─────────────────────────────┐"
	tableMid = "├─────────────────────────────────┼─────────────────────────────┤"
	tableBot = "└─────────────────────────────────┴─────────────────────────────┘"
)

func (f *Formatter) row(label string, c *color.Color, value any) {
	fmt.Fprintf(f.out, "│ %-31s │ ", label)
	c.Fprintf(f.out, "%-27v", value)
	fmt.Fprintln(f.out, " │")
}

// PrintSummary prints the statistics table for a run
func (f *Formatter) PrintSummary(report *domain.RunReport) {
	meta := report.Meta
	white := color.New(color.FgWhite)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    Test Execution Statistics                  ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	fmt.Fprintln(f.out, tableTop)
	f.row("Circuit", white, meta.Circuit)
	fmt.Fprintln(f.out, tableMid)
	f.row("Total Tests", white, meta.TotalCases)
	fmt.Fprintln(f.out, tableMid)
	f.row("Passed", green, meta.PassedCases)
	fmt.Fprintln(f.out, tableMid)
	f.row("Failed", red, meta.FailedCases)
	fmt.Fprintln(f.out, tableMid)
	f.row("Execution Errors", red, meta.ErroredCases)
	fmt.Fprintln(f.out, tableMid)
	f.row("Duration", white, fmt.Sprintf("%.2fs", meta.DurationSeconds))
	fmt.Fprintln(f.out, tableMid)
	f.row("Workers", white, meta.Workers)
	fmt.Fprintln(f.out, tableBot)

	fmt.Fprintln(f.out)
	notPassed := meta.FailedCases + meta.ErroredCases
	if notPassed == 0 && meta.PassedCases == meta.TotalCases {
		green.Fprintln(f.out, "✓ All tests passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d of %d test(s) did not pass\n", meta.TotalCases-meta.PassedCases, meta.TotalCases)
	for _, c := range report.Failures() {
		red.Fprintf(f.out, "  |_ %s (%s)\n", c.Name, c.Status)
	}
}

// Listing pairs a discovered source with its directives
type Listing struct {
	Source       discovery.Source
	Expectations discovery.Expectations
}

// PrintList prints discovered tests as a tree with their directives
func (f *Formatter) PrintList(listings []Listing) {
	color.New(color.FgGreen).Fprintf(f.out, "Found %d test(s):\n\n", len(listings))
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	for i, l := range listings {
		isLast := i == len(listings)-1
		branch, indent := "├── ", "│   "
		if isLast {
			branch, indent = "└── ", "    "
		}
		cyan.Fprintf(f.out, "%s%s", branch, l.Source.Name)
		fmt.Fprintf(f.out, " (%s)\n", l.Source.Path)

		var details []string
		if l.Expectations.Output != nil {
			details = append(details, fmt.Sprintf("prints %q", *l.Expectations.Output))
		}
		if l.Expectations.SpeedLimit != nil {
			details = append(details, fmt.Sprintf("limit %d", *l.Expectations.SpeedLimit))
		}
		if len(details) == 0 {
			details = append(details, "no checks")
		}
		for j, d := range details {
			leaf := "├── "
			if j == len(details)-1 {
				leaf = "└── "
			}
			fmt.Fprint(f.out, indent+leaf)
			yellow.Fprintln(f.out, d)
		}
	}
}
