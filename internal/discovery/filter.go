package discovery

import (
	"path/filepath"
	"strings"

	"wtr/internal/domain"
)

// Filter filters discovered suites by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// ByName filters suites by file name pattern using wildcard matching.
// Supports patterns like "*auth*" or "useMediaQuery.spec.ts".
func (f *Filter) ByName(suites []domain.SuiteDescriptor, pattern string) []domain.SuiteDescriptor {
	if pattern == "" {
		return suites
	}

	var filtered []domain.SuiteDescriptor

	for _, suite := range suites {
		// Match against just the file name
		fileName := filepath.Base(suite.Path)

		// Try to match using filepath.Match (supports * and ? wildcards)
		matched, err := filepath.Match(pattern, fileName)
		if err == nil && matched {
			filtered = append(filtered, suite)
			continue
		}

		// If pattern contains wildcards but filepath.Match didn't match,
		// try a more flexible substring match for patterns like "*auth*"
		if strings.Contains(pattern, "*") {
			if wildcardPartsMatch(fileName, pattern) {
				filtered = append(filtered, suite)
				continue
			}
		}

		// If no wildcards, do a simple contains check
		if !strings.Contains(pattern, "*") && !strings.Contains(pattern, "?") {
			if strings.Contains(fileName, pattern) {
				filtered = append(filtered, suite)
			}
		}
	}

	return filtered
}

// wildcardPartsMatch checks that every non-empty part of a *-separated
// pattern appears in the name, with at least one non-empty part present.
func wildcardPartsMatch(name, pattern string) bool {
	parts := strings.Split(pattern, "*")
	hasNonEmptyPart := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		hasNonEmptyPart = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasNonEmptyPart
}
