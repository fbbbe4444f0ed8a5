package domain

// CaseStatus is the final classification of a test case
type CaseStatus string

const (
	StatusPassed CaseStatus = "passed"
	StatusFailed CaseStatus = "failed"
	StatusError  CaseStatus = "error"
	StatusNotRun CaseStatus = "not_run"
)

// CaseRecord is the stored outcome of one test case
type CaseRecord struct {
	Name           string     `json:"name"`
	Source         string     `json:"source"`
	Artifact       string     `json:"artifact"`
	Status         CaseStatus `json:"status"`
	ExpectedOutput *string    `json:"expected_output,omitempty"`
	ActualOutput   string     `json:"actual_output"`
	OutputOK       bool       `json:"output_ok"`
	SpeedLimit     *int64     `json:"speed_limit,omitempty"`
	ActualSpeed    *int64     `json:"actual_speed,omitempty"`
	SpeedOK        bool       `json:"speed_ok"`
	Halted         bool       `json:"halted"`
	Error          string     `json:"error,omitempty"`
}

// RunMeta contains metadata about a harness run
type RunMeta struct {
	Circuit         string  `json:"circuit"`
	Template        string  `json:"template"`
	TotalCases      int     `json:"total_cases"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	ErroredCases    int     `json:"errored_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// RunReport is the complete stored result of a harness run
type RunReport struct {
	Meta  RunMeta      `json:"meta"`
	Cases []CaseRecord `json:"cases"`
}

// Failures returns the records that did not pass, in run order
func (r *RunReport) Failures() []CaseRecord {
	var failed []CaseRecord
	for _, c := range r.Cases {
		if c.Status == StatusFailed || c.Status == StatusError {
			failed = append(failed, c)
		}
	}
	return failed
}
