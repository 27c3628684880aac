package discovery

import (
	"fmt"
	"os"
	"regexp"
)

// Parser parses test files to extract test case declarations
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// Case declarations the JS test frameworks accept:
// - it("name", ...) / test("name", ...)
// - it.skip / it.todo / it.only / it.each(...)(...) variants
// - single, double or backtick quoted names
var caseDeclPattern = regexp.MustCompile(
	`(?m)^\s*(?:it|test)(?:\.(?:skip|todo|only|concurrent|failing))?(?:\.each\([^)]*\))?\s*\(\s*(?:"((?:[^"\\]|\\.)*)"|'((?:[^'\\]|\\.)*)'|` + "`((?:[^`\\\\]|\\\\.)*)`" + `)`,
)

// skippedDeclPattern marks declarations the runner will not execute
var skippedDeclPattern = regexp.MustCompile(`(?m)^\s*(?:it|test)\.(?:skip|todo)\s*\(`)

// FindCases finds all test case names in a test file, in declaration order.
// Duplicate names keep their first position.
func (p *Parser) FindCases(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	matches := caseDeclPattern.FindAllStringSubmatch(string(content), -1)

	seen := make(map[string]bool)
	var cases []string
	for _, match := range matches {
		name := firstGroup(match)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		cases = append(cases, name)
	}

	return cases, nil
}

// FindSkipped returns the names of cases declared with .skip or .todo.
func (p *Parser) FindSkipped(filePath string) (map[string]bool, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	skipped := make(map[string]bool)
	text := string(content)
	for _, loc := range skippedDeclPattern.FindAllStringIndex(text, -1) {
		// Re-match the full declaration starting at the skip marker to pull
		// out the case name.
		if match := caseDeclPattern.FindStringSubmatch(text[loc[0]:]); match != nil {
			if name := firstGroup(match); name != "" {
				skipped[name] = true
			}
		}
	}
	return skipped, nil
}

func firstGroup(match []string) string {
	for _, group := range match[1:] {
		if group != "" {
			return group
		}
	}
	return ""
}
