// Package parser extracts structured values from simulator output.
package parser

// Parser parses the captured output of one simulator run
type Parser interface {
	Parse(text string) Output
}

// Output is what a simulator run printed, split into verifiable parts
type Output struct {
	Text     string // Program output before the halt marker, trimmed
	Halted   bool   // Whether the halt marker was seen
	Speed    int64  // Tick figure reported next to the rate marker
	HasSpeed bool   // Whether a tick figure was found
}
