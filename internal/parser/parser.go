package parser

import "wtr/internal/domain"

// Parser parses runner output into case results and failures
type Parser interface {
	ParseCases(result domain.SuiteResult) []domain.CaseResult
	ParseFailures(result domain.SuiteResult) []domain.TestFailure
}
