package domain

import "time"

// CaseStatus is the outcome of a single test case
type CaseStatus string

const (
	StatusPassed  CaseStatus = "passed"
	StatusFailed  CaseStatus = "failed"
	StatusSkipped CaseStatus = "skipped"
)

// CaseResult represents the outcome of one test case
type CaseResult struct {
	Suite    string        `json:"suite"`             // Suite name the case belongs to
	Name     string        `json:"name"`              // Case name
	Status   CaseStatus    `json:"status"`            // passed / failed / skipped
	Duration time.Duration `json:"duration"`          // Time taken to execute
	Message  string        `json:"message,omitempty"` // Failure message, empty on pass
}

// SuiteResult represents the result of executing one suite
type SuiteResult struct {
	Descriptor SuiteDescriptor
	Cases      []CaseResult
	Success    bool          // Whether every case passed or was skipped
	Output     string        // Raw output from the runner
	Err        error         // Execution error, if the runner itself failed
	Duration   time.Duration // Time taken to execute
}

// Counts returns the passed/failed/skipped case counts of the suite.
func (r SuiteResult) Counts() (passed, failed, skipped int) {
	for _, c := range r.Cases {
		switch c.Status {
		case StatusPassed:
			passed++
		case StatusFailed:
			failed++
		case StatusSkipped:
			skipped++
		}
	}
	return passed, failed, skipped
}
