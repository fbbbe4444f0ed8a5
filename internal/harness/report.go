package harness

import (
	"strconv"

	"github.com/fatih/color"

	"simtest/internal/logging"
)

const separator = "---------------------------------------------------------------------------------------"

var (
	okLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
)

func verdict(ok bool) string {
	if ok {
		return okLabel("OK")
	}
	return failLabel("FAIL")
}

func orNone(s *string) string {
	if s == nil {
		return "(none)"
	}
	return strconv.Quote(*s)
}

// Report prints the verdict block for the case
func (tc *TestCase) Report(log *logging.Logger) {
	defer log.Printf("%s", separator)

	switch {
	case !tc.HasRun:
		log.Warnf("Test: %s must run before reporting", tc.Name)
		return
	case tc.ExecutionError:
		log.Errorf("Test: %s could not be executed correctly", tc.Name)
		return
	}

	log.Printf("Result: %s ===============================================> %s", tc.Name, verdict(tc.OutputOK()))
	if !tc.Halted {
		log.Logf(logging.LevelTestDetail, "Test: %s never reached the halt pin, output is everything the simulator printed", tc.Name)
	}
	log.Logf(logging.LevelTestDetail, "Expected result: %s Actual result: %s", orNone(tc.ExpectedOutput), strconv.Quote(tc.ActualOutput))

	speed := "(not reported)"
	if tc.HasSpeed {
		speed = strconv.FormatInt(tc.ActualSpeed, 10)
	}
	if tc.ExpectedSpeed != nil {
		log.Printf("Speed: %s ===============================================> %s", tc.Name, verdict(tc.SpeedOK()))
		log.Logf(logging.LevelTestDetail, "Expected speed: <= %d Actual speed: %s", *tc.ExpectedSpeed, speed)
	} else {
		log.Logf(logging.LevelTestDetail, "Actual speed: %s", speed)
	}
}
