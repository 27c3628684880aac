package domain

import "fmt"

// DiscoveryError indicates the discovery phase failed (bad root or pattern).
// It is fatal: the run is aborted and no report is produced.
type DiscoveryError struct {
	Root    string
	Pattern string
	Err     error
}

func (e *DiscoveryError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("discovery failed for %s (pattern %q): %v", e.Root, e.Pattern, e.Err)
	}
	return fmt.Sprintf("discovery failed for %s: %v", e.Root, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// AssertionFailure is a case-local assertion mismatch. It is recorded as a
// failed CaseResult and never aborts the remaining cases.
type AssertionFailure struct {
	Case    string
	Message string
}

func (e *AssertionFailure) Error() string {
	return fmt.Sprintf("assertion failed in %s: %s", e.Case, e.Message)
}

// UnhandledRejection is a case-local error raised when a case body panics or
// an awaited operation settles with an error nobody handled. Treated as an
// assertion failure with a distinguishing message.
type UnhandledRejection struct {
	Case  string
	Value interface{}
}

func (e *UnhandledRejection) Error() string {
	return fmt.Sprintf("unhandled rejection in %s: %v", e.Case, e.Value)
}

// MockMisuseError indicates a mock was invoked without prior registration or
// outside an active case. Case-local.
type MockMisuseError struct {
	Target string
	Op     string
}

func (e *MockMisuseError) Error() string {
	return fmt.Sprintf("mock misuse: %s on unregistered or inactive target %q", e.Op, e.Target)
}
