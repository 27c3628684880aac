package domain

// SuiteDescriptor identifies a discovered test suite (one test file)
type SuiteDescriptor struct {
	Name     string          // Suite name, derived from the file name
	Project  string          // Parent project: "web" or "api"
	Path     string          // Full path to the test file
	FilePath string          // Relative file path
	Cases    []string        // Case names in declaration order
	Skipped  map[string]bool // Cases declared with .skip or .todo
}

// CaseCount returns the number of declared cases, falling back to one
// case per file when the parser found none (the runner still reports
// the file as a single unit).
func (d SuiteDescriptor) CaseCount() int {
	if len(d.Cases) == 0 {
		return 1
	}
	return len(d.Cases)
}
