package domain

import "time"

// FileCoverage holds coverage percentages for one source file
type FileCoverage struct {
	File         string  `json:"file"`
	FuncsPercent float64 `json:"funcs_percent"`
	LinesPercent float64 `json:"lines_percent"`
}

// RunReport aggregates the results of one complete run
type RunReport struct {
	TotalSuites  int            `json:"total_suites"`
	TotalCases   int            `json:"total_cases"`
	Passed       int            `json:"passed"`
	Failed       int            `json:"failed"`
	Skipped      int            `json:"skipped"`
	Duration     string         `json:"duration"`
	DurationSecs float64        `json:"duration_seconds"`
	Workers      int            `json:"workers"`
	Timestamp    string         `json:"timestamp"`
	Coverage     []FileCoverage `json:"coverage,omitempty"`
}

// Ok reports whether the run may exit zero.
func (r RunReport) Ok() bool {
	return r.Failed == 0
}

// BuildReport aggregates suite results into a RunReport.
func BuildReport(results []SuiteResult, duration time.Duration, workers int) RunReport {
	report := RunReport{
		TotalSuites:  len(results),
		Duration:     duration.String(),
		DurationSecs: duration.Seconds(),
		Workers:      workers,
		Timestamp:    time.Now().Format(time.RFC3339),
	}

	for _, result := range results {
		passed, failed, skipped := result.Counts()
		report.Passed += passed
		report.Failed += failed
		report.Skipped += skipped
		report.TotalCases += len(result.Cases)
	}

	return report
}

// RunOutput is the complete persisted structure for a run
type RunOutput struct {
	Meta    RunReport     `json:"meta"`
	Details []TestFailure `json:"details"`
}
