package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"wtr/internal/domain"
)

// BunParser parses `bun test` output
type BunParser struct{}

// NewBunParser creates a new BunParser
func NewBunParser() *BunParser {
	return &BunParser{}
}

// Per-case markers:
//
//	✓ auth > logs the user in [1.23ms]
//	✗ auth > rejects a bad password [0.45ms]
//	» auth > not ready yet
//
// The "(pass)"/"(fail)"/"(skip)" forms show up when color output is disabled.
var caseLinePattern = regexp.MustCompile(`^\s*(✓|✗|»|\(pass\)|\(fail\)|\(skip\)|\(todo\))\s+(.+?)(?:\s+\[([\d.]+)ms\])?\s*$`)

// Summary counts:
//
//	12 pass
//	 2 fail
//	 1 skip
var summaryPattern = regexp.MustCompile(`(?m)^\s*(\d+)\s+(pass|fail|skip|todo)\b`)

// Coverage table rows:
//
//	src/auth.ts  |  100.00 |   95.00 | 12-14
var coverageRowPattern = regexp.MustCompile(`(?m)^\s*([^|\s][^|]*?)\s*\|\s*([\d.]+)\s*\|\s*([\d.]+)\s*\|`)

// Failure detail line following a failed case:
//
//	error: expect(received).toBe(expected)
var errorLinePattern = regexp.MustCompile(`^\s*(?:error|AssertionError|TypeError|ReferenceError)[:\s]`)

// Stack frame lines:
//
//	at /web/src/auth.test.ts:42:7
var stackLinePattern = regexp.MustCompile(`^\s*at\s+.*:\d+(?::\d+)?\)?\s*$`)

// ParseCases extracts per-case results from the runner output,
// one CaseResult per marker line. When the output carries no recognizable
// markers, the whole file is reported as a single case keyed on exit status
// (same fallback the summary counts use).
func (p *BunParser) ParseCases(result domain.SuiteResult) []domain.CaseResult {
	var cases []domain.CaseResult

	for _, line := range strings.Split(result.Output, "\n") {
		match := caseLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		cr := domain.CaseResult{
			Suite: result.Descriptor.Name,
			Name:  caseName(match[2]),
		}
		switch match[1] {
		case "✓", "(pass)":
			cr.Status = domain.StatusPassed
		case "✗", "(fail)":
			cr.Status = domain.StatusFailed
		default:
			cr.Status = domain.StatusSkipped
		}
		if match[3] != "" {
			if ms, err := strconv.ParseFloat(match[3], 64); err == nil {
				cr.Duration = time.Duration(ms * float64(time.Millisecond))
			}
		}
		cases = append(cases, cr)
	}

	if len(cases) == 0 {
		return p.fallbackCases(result)
	}

	// Attach failure messages to failed cases
	failures := p.ParseFailures(result)
	for i := range cases {
		if cases[i].Status != domain.StatusFailed {
			continue
		}
		for _, failure := range failures {
			if failure.CaseName == cases[i].Name {
				cases[i].Message = failure.Message
				break
			}
		}
	}

	return cases
}

// ParseCounts extracts passed/failed/skipped case counts from the summary.
// If the summary is missing, falls back to one case per file keyed on exit
// status.
func (p *BunParser) ParseCounts(result domain.SuiteResult) (passed, failed, skipped int) {
	found := false
	for _, match := range summaryPattern.FindAllStringSubmatch(result.Output, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		found = true
		switch match[2] {
		case "pass":
			passed += n
		case "fail":
			failed += n
		case "skip", "todo":
			skipped += n
		}
	}
	if found {
		return passed, failed, skipped
	}

	if result.Success {
		return 1, 0, 0
	}
	return 0, 1, 0
}

// ParseFailures extracts failure details from the runner output: for each
// failed case marker, the error lines and stack frames that follow it.
func (p *BunParser) ParseFailures(result domain.SuiteResult) []domain.TestFailure {
	var failures []domain.TestFailure
	lines := strings.Split(result.Output, "\n")

	for i, line := range lines {
		match := caseLinePattern.FindStringSubmatch(line)
		if match == nil || (match[1] != "✗" && match[1] != "(fail)") {
			continue
		}

		failure := domain.TestFailure{
			SuiteName:  result.Descriptor.Name,
			CaseName:   caseName(match[2]),
			FilePath:   result.Descriptor.FilePath,
			StackTrace: []string{},
		}

		var messageLines []string
		for j := i + 1; j < len(lines); j++ {
			next := lines[j]
			if caseLinePattern.MatchString(next) || summaryPattern.MatchString(next) {
				break
			}
			trimmed := strings.TrimSpace(next)
			if trimmed == "" {
				if len(messageLines) > 0 {
					break
				}
				continue
			}
			if stackLinePattern.MatchString(next) {
				failure.StackTrace = append(failure.StackTrace, trimmed)
				p.extractLocation(&failure, trimmed)
				continue
			}
			if errorLinePattern.MatchString(next) || len(messageLines) > 0 {
				messageLines = append(messageLines, trimmed)
			}
		}
		failure.Message = strings.Join(messageLines, "\n")
		failure.ErrorDetails = failure.Message

		failures = append(failures, failure)
	}

	// Mirror the whole-file fallback: a failed suite with no recognizable
	// markers still records one failure.
	if len(failures) == 0 && !result.Success {
		message := strings.TrimSpace(result.Output)
		if message == "" && result.Err != nil {
			message = result.Err.Error()
		}
		failures = append(failures, domain.TestFailure{
			SuiteName:    result.Descriptor.Name,
			CaseName:     result.Descriptor.Name,
			FilePath:     result.Descriptor.FilePath,
			Message:      message,
			ErrorDetails: message,
			StackTrace:   []string{},
		})
	}

	return failures
}

// ParseCoverage extracts per-file coverage percentages from the coverage
// table printed in coverage mode. The "All files" aggregate row and the
// header row are skipped.
func (p *BunParser) ParseCoverage(output string) []domain.FileCoverage {
	var coverage []domain.FileCoverage

	for _, match := range coverageRowPattern.FindAllStringSubmatch(output, -1) {
		file := strings.TrimSpace(match[1])
		if file == "" || file == "File" || file == "All files" || strings.HasPrefix(file, "-") {
			continue
		}
		funcs, err1 := strconv.ParseFloat(match[2], 64)
		lines, err2 := strconv.ParseFloat(match[3], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		coverage = append(coverage, domain.FileCoverage{
			File:         file,
			FuncsPercent: funcs,
			LinesPercent: lines,
		})
	}

	return coverage
}

// fallbackCases reports the whole file as one case keyed on exit status.
func (p *BunParser) fallbackCases(result domain.SuiteResult) []domain.CaseResult {
	status := domain.StatusPassed
	message := ""
	if !result.Success {
		status = domain.StatusFailed
		message = strings.TrimSpace(result.Output)
		if result.Err != nil && message == "" {
			message = result.Err.Error()
		}
	}
	return []domain.CaseResult{{
		Suite:    result.Descriptor.Name,
		Name:     result.Descriptor.Name,
		Status:   status,
		Duration: result.Duration,
		Message:  message,
	}}
}

// extractLocation pulls file and line out of the first project stack frame.
func (p *BunParser) extractLocation(failure *domain.TestFailure, frame string) {
	if failure.File != "" || strings.Contains(frame, "node_modules") {
		return
	}
	frame = strings.TrimPrefix(strings.TrimSpace(frame), "at ")
	frame = strings.Trim(frame, "()")
	parts := strings.Split(frame, ":")
	if len(parts) < 2 {
		return
	}
	// Last one or two segments are line and column numbers
	lineIdx := len(parts) - 1
	if n, err := strconv.Atoi(parts[lineIdx]); err == nil {
		if len(parts) >= 3 {
			if ln, err := strconv.Atoi(parts[lineIdx-1]); err == nil {
				failure.File = strings.Join(parts[:lineIdx-1], ":")
				failure.Line = ln
				return
			}
		}
		failure.File = strings.Join(parts[:lineIdx], ":")
		failure.Line = n
	}
}

// caseName strips the describe-block prefix: "auth > logs in" -> "logs in".
func caseName(raw string) string {
	name := strings.TrimSpace(raw)
	if idx := strings.LastIndex(name, " > "); idx >= 0 {
		name = name[idx+3:]
	}
	return name
}
