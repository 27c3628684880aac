package ui

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"wtr/internal/config"
	"wtr/internal/domain"
)

// captureOutput collects everything the formatter prints, both through the
// color helpers and through plain stdout writes.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	oldStdout := os.Stdout
	oldColorOutput := color.Output
	oldNoColor := color.NoColor
	os.Stdout = w
	color.Output = w
	color.NoColor = true
	defer func() {
		os.Stdout = oldStdout
		color.Output = oldColorOutput
		color.NoColor = oldNoColor
	}()

	fn()
	w.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String()
}

func TestFormatter_Render(t *testing.T) {
	formatter := NewFormatter(config.New())
	report := domain.RunReport{
		TotalSuites: 2,
		TotalCases:  5,
		Passed:      3,
		Failed:      1,
		Skipped:     1,
		Duration:    "1.5s",
		Workers:     1,
		Coverage: []domain.FileCoverage{
			{File: "src/auth.ts", FuncsPercent: 100, LinesPercent: 95.24},
		},
	}

	t.Run("text format", func(t *testing.T) {
		out, err := formatter.Render(report, "text")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Suites: 2 | Cases: 5") {
			t.Errorf("expected suite counts in output, got %q", out)
		}
		if !strings.Contains(out, "Passed: 3 | Failed: 1 | Skipped: 1") {
			t.Errorf("expected status counts in output, got %q", out)
		}
		if !strings.Contains(out, "src/auth.ts") {
			t.Errorf("expected coverage row in output, got %q", out)
		}
	})

	t.Run("empty format defaults to text", func(t *testing.T) {
		withDefault, err := formatter.Render(report, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		withText, err := formatter.Render(report, "text")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if withDefault != withText {
			t.Error("expected empty format to render the same as text")
		}
	})

	t.Run("json format", func(t *testing.T) {
		out, err := formatter.Render(report, "json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var decoded domain.RunReport
		if err := json.Unmarshal([]byte(out), &decoded); err != nil {
			t.Fatalf("expected valid JSON, got %v: %q", err, out)
		}
		if decoded.Passed != 3 || decoded.Failed != 1 || decoded.TotalCases != 5 {
			t.Errorf("unexpected decoded report: %+v", decoded)
		}
		if len(decoded.Coverage) != 1 || decoded.Coverage[0].File != "src/auth.ts" {
			t.Errorf("expected coverage preserved, got %+v", decoded.Coverage)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := formatter.Render(report, "xml"); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestFormatter_PrintSuiteList(t *testing.T) {
	formatter := NewFormatter(config.New())

	suites := []domain.SuiteDescriptor{
		{
			Name:     "auth",
			Project:  "web",
			Path:     "web/src/auth.test.ts",
			FilePath: "src/auth.test.ts",
			Cases:    []string{"logs the user in", "rejects a bad password"},
		},
		{
			Name:     "csv",
			Project:  "web",
			Path:     "web/src/utils/csv.test.ts",
			FilePath: "src/utils/csv.test.ts",
			Cases:    []string{"exports rows", "handles BOM"},
			Skipped:  map[string]bool{"handles BOM": true},
		},
	}

	t.Run("marks suites that failed in the last run", func(t *testing.T) {
		// Failed paths come from the saved run's failure details, which
		// record the scan-root-relative file path.
		failedPaths := map[string]struct{}{
			"src/auth.test.ts": {},
		}

		out := captureOutput(t, func() {
			if err := formatter.PrintSuiteList(suites, false, failedPaths); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})

		var sawFailedLine bool
		for _, line := range strings.Split(out, "\n") {
			if strings.Contains(line, "auth.test.ts") {
				sawFailedLine = true
				if !strings.Contains(line, "[F]") {
					t.Errorf("expected [F] marker on failed suite line, got %q", line)
				}
			}
			if strings.Contains(line, "csv.test.ts") && strings.Contains(line, "[F]") {
				t.Errorf("expected no [F] marker on passing suite line, got %q", line)
			}
		}
		if !sawFailedLine {
			t.Fatalf("failed suite missing from output: %q", out)
		}
	})

	t.Run("annotates skipped cases", func(t *testing.T) {
		out := captureOutput(t, func() {
			if err := formatter.PrintSuiteList(suites, true, nil); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})

		var sawSkippedLine bool
		for _, line := range strings.Split(out, "\n") {
			if strings.Contains(line, "handles BOM") {
				sawSkippedLine = true
				if !strings.Contains(line, "(skip)") {
					t.Errorf("expected (skip) annotation, got %q", line)
				}
			}
			if strings.Contains(line, "exports rows") && strings.Contains(line, "(skip)") {
				t.Errorf("expected no (skip) annotation, got %q", line)
			}
		}
		if !sawSkippedLine {
			t.Fatalf("skipped case missing from output: %q", out)
		}
	})
}
