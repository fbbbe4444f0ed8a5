package discovery

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Directive markers recognised at the start of a source line
const (
	PrintsMarker = "#prints"
	LimitMarker  = "#limit"
)

// ErrMalformedLimit is wrapped by DirectiveError when a #limit value is not an integer
var ErrMalformedLimit = errors.New("malformed #limit directive")

// DirectiveError reports a test source with an unusable directive.
// It is fatal to suite construction so authoring mistakes surface immediately.
type DirectiveError struct {
	Path  string
	Line  int
	Value string
	Err   error
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %q", e.Path, e.Line, e.Err, e.Value)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}

// Expectations are the verification directives declared by a test source.
// A nil field means the corresponding check is skipped.
type Expectations struct {
	Output     *string
	SpeedLimit *int64
}

// ParseDirectives reads the source at path and extracts its expectations.
// The first #prints and the first #limit line win; all other lines are ignored.
func ParseDirectives(path string) (Expectations, error) {
	var exp Expectations

	file, err := os.Open(path)
	if err != nil {
		return exp, fmt.Errorf("error reading file %s: %w", path, err)
	}
	defer file.Close()

	// bufio.Reader has no line length limit, unlike bufio.Scanner
	reader := bufio.NewReader(file)
	lineNo := 0
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return exp, fmt.Errorf("error reading file %s: %w", path, readErr)
		}
		if readErr == io.EOF && line == "" {
			break
		}
		lineNo++
		line = strings.TrimRight(line, "\r\n")

		if exp.Output == nil && strings.HasPrefix(line, PrintsMarker) {
			value := directiveValue(line, PrintsMarker)
			exp.Output = &value
		}

		if exp.SpeedLimit == nil && strings.HasPrefix(line, LimitMarker) {
			value := directiveValue(line, LimitMarker)
			limit, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return exp, &DirectiveError{Path: path, Line: lineNo, Value: value, Err: ErrMalformedLimit}
			}
			exp.SpeedLimit = &limit
		}

		if (exp.Output != nil && exp.SpeedLimit != nil) || readErr == io.EOF {
			break
		}
	}

	return exp, nil
}

// directiveValue drops the marker and one separating character, then trims
func directiveValue(line, marker string) string {
	rest := line[len(marker):]
	if rest != "" {
		rest = rest[1:]
	}
	return strings.TrimSpace(rest)
}
