package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Phrases printed by the simulator in -tty mode
const (
	HaltMarker  = "halted due to halt pin"
	RateMarker  = "Hz ("
	UnitsMarker = " ticks"
)

// speedPattern captures the integer between the rate marker and the units phrase,
// e.g. "1.2 kHz (5000 ticks in 4 milliseconds)" yields 5000
var speedPattern = regexp.MustCompile(regexp.QuoteMeta(RateMarker) + `\s*(\d+)` + regexp.QuoteMeta(UnitsMarker))

// LogisimParser parses Logisim -tty halt,tty,speed output
type LogisimParser struct{}

// NewLogisimParser creates a new LogisimParser
func NewLogisimParser() *LogisimParser {
	return &LogisimParser{}
}

// Parse splits simulator output into program text and speed.
// Without a halt marker the whole trimmed output is the program text.
// The speed figure follows the halt marker, so program text that happens to
// contain the rate phrase is never read as a speed.
func (p *LogisimParser) Parse(text string) Output {
	var out Output

	trailer := text
	if idx := strings.Index(text, HaltMarker); idx >= 0 {
		out.Text = strings.TrimSpace(text[:idx])
		out.Halted = true
		trailer = text[idx+len(HaltMarker):]
	} else {
		out.Text = strings.TrimSpace(text)
	}

	if match := speedPattern.FindStringSubmatch(trailer); len(match) == 2 {
		if speed, err := strconv.ParseInt(match[1], 10, 64); err == nil {
			out.Speed = speed
			out.HasSpeed = true
		}
	}

	return out
}
