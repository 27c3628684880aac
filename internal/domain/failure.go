package domain

// TestFailure represents a failed test case
type TestFailure struct {
	SuiteName    string   `json:"suite_name"`
	CaseName     string   `json:"case_name"`
	FilePath     string   `json:"file_path"`
	ErrorDetails string   `json:"error_details"`
	StackTrace   []string `json:"stack_trace"`
	File         string   `json:"file"`
	Line         int      `json:"line"`
	Message      string   `json:"message"`
	Resolved     bool     `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}
