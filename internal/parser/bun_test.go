package parser

import (
	"errors"
	"testing"

	"wtr/internal/domain"
)

var sampleOutput = `
web/src/auth.test.ts:
✓ auth > logs the user in [1.23ms]
✗ auth > rejects a bad password [0.45ms]
  error: expect(received).toBe(expected)
  Expected: 401
  Received: 500
      at /web/src/auth.test.ts:42:7
» auth > refresh flow

 1 pass
 1 fail
 1 skip
Ran 3 tests across 1 files.
`

func descriptor() domain.SuiteDescriptor {
	return domain.SuiteDescriptor{
		Name:     "auth",
		Project:  "web",
		Path:     "/web/src/auth.test.ts",
		FilePath: "src/auth.test.ts",
	}
}

func TestBunParser_ParseCases(t *testing.T) {
	parser := NewBunParser()

	t.Run("extracts one result per marker line", func(t *testing.T) {
		result := domain.SuiteResult{Descriptor: descriptor(), Output: sampleOutput, Success: false}
		cases := parser.ParseCases(result)
		if len(cases) != 3 {
			t.Fatalf("expected 3 cases, got %d", len(cases))
		}

		if cases[0].Status != domain.StatusPassed || cases[0].Name != "logs the user in" {
			t.Errorf("unexpected first case: %+v", cases[0])
		}
		if cases[1].Status != domain.StatusFailed {
			t.Errorf("expected second case failed, got %s", cases[1].Status)
		}
		if cases[1].Message == "" {
			t.Error("expected failure message attached to failed case")
		}
		if cases[2].Status != domain.StatusSkipped {
			t.Errorf("expected third case skipped, got %s", cases[2].Status)
		}
	})

	t.Run("falls back to one case per file", func(t *testing.T) {
		result := domain.SuiteResult{
			Descriptor: descriptor(),
			Output:     "error: Cannot find module 'vue'",
			Success:    false,
			Err:        errors.New("exit status 1"),
		}
		cases := parser.ParseCases(result)
		if len(cases) != 1 {
			t.Fatalf("expected 1 fallback case, got %d", len(cases))
		}
		if cases[0].Status != domain.StatusFailed {
			t.Errorf("expected failed fallback case, got %s", cases[0].Status)
		}
	})
}

func TestBunParser_ParseCounts(t *testing.T) {
	parser := NewBunParser()

	tests := []struct {
		name    string
		result  domain.SuiteResult
		passed  int
		failed  int
		skipped int
	}{
		{
			name:    "summary counts",
			result:  domain.SuiteResult{Output: sampleOutput, Success: false},
			passed:  1,
			failed:  1,
			skipped: 1,
		},
		{
			name:    "all passing",
			result:  domain.SuiteResult{Output: " 8 pass\n 0 fail\n", Success: true},
			passed:  8,
			failed:  0,
			skipped: 0,
		},
		{
			name:    "no summary falls back to success",
			result:  domain.SuiteResult{Output: "garbage", Success: true},
			passed:  1,
			failed:  0,
			skipped: 0,
		},
		{
			name:    "no summary falls back to failure",
			result:  domain.SuiteResult{Output: "garbage", Success: false},
			passed:  0,
			failed:  1,
			skipped: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passed, failed, skipped := parser.ParseCounts(tt.result)
			if passed != tt.passed || failed != tt.failed || skipped != tt.skipped {
				t.Errorf("expected {%d, %d, %d}, got {%d, %d, %d}",
					tt.passed, tt.failed, tt.skipped, passed, failed, skipped)
			}
		})
	}
}

func TestBunParser_ParseFailures(t *testing.T) {
	parser := NewBunParser()
	result := domain.SuiteResult{Descriptor: descriptor(), Output: sampleOutput, Success: false}

	failures := parser.ParseFailures(result)
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}

	failure := failures[0]
	if failure.CaseName != "rejects a bad password" {
		t.Errorf("unexpected case name: %s", failure.CaseName)
	}
	if failure.SuiteName != "auth" {
		t.Errorf("unexpected suite name: %s", failure.SuiteName)
	}
	if len(failure.StackTrace) != 1 {
		t.Errorf("expected 1 stack frame, got %d", len(failure.StackTrace))
	}
	if failure.Line != 42 {
		t.Errorf("expected line 42, got %d", failure.Line)
	}

	t.Run("failed suite with no markers records one failure", func(t *testing.T) {
		broken := domain.SuiteResult{
			Descriptor: descriptor(),
			Output:     "error: Cannot find module 'vue'",
			Success:    false,
		}
		failures := parser.ParseFailures(broken)
		if len(failures) != 1 {
			t.Fatalf("expected 1 fallback failure, got %d", len(failures))
		}
		if failures[0].FilePath != "src/auth.test.ts" {
			t.Errorf("unexpected file path: %s", failures[0].FilePath)
		}
	})
}

func TestBunParser_ParseCoverage(t *testing.T) {
	parser := NewBunParser()

	output := `
--------------------|---------|---------|-------------------
File                | % Funcs | % Lines | Uncovered Line #s
--------------------|---------|---------|-------------------
All files           |   85.71 |   90.00 |
 src/auth.ts        |  100.00 |   95.24 | 12-14
 src/utils/csv.ts   |   66.67 |   80.00 | 3,9
--------------------|---------|---------|-------------------
 2 pass
`
	coverage := parser.ParseCoverage(output)
	if len(coverage) != 2 {
		t.Fatalf("expected 2 coverage rows, got %d: %v", len(coverage), coverage)
	}
	if coverage[0].File != "src/auth.ts" || coverage[0].FuncsPercent != 100.0 || coverage[0].LinesPercent != 95.24 {
		t.Errorf("unexpected first row: %+v", coverage[0])
	}
	if coverage[1].File != "src/utils/csv.ts" || coverage[1].LinesPercent != 80.0 {
		t.Errorf("unexpected second row: %+v", coverage[1])
	}
}
