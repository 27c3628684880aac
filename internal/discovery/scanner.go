package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wtr/internal/domain"
)

// Scanner scans for test files in a directory
type Scanner struct {
	skipDirs map[string]bool
	parser   *Parser
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string, parser *Parser) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, parser: parser}
}

// Scan finds all test files under root matching the given file name patterns
// and returns one descriptor per file, with its cases in declaration order.
// A missing or non-directory root is a fatal domain.DiscoveryError.
func (s *Scanner) Scan(root, project string, patterns []string) ([]domain.SuiteDescriptor, error) {
	var descriptors []domain.SuiteDescriptor

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, &domain.DiscoveryError{Root: root, Err: fmt.Errorf("test path does not exist")}
	}
	if !info.IsDir() {
		return nil, &domain.DiscoveryError{Root: root, Err: fmt.Errorf("test path is not a directory")}
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		if !matchesAny(d.Name(), patterns) {
			return nil
		}

		descriptor := domain.SuiteDescriptor{
			Name:    suiteName(d.Name()),
			Project: project,
			Path:    path,
		}
		if rel, relErr := filepath.Rel(root, path); relErr == nil {
			descriptor.FilePath = rel
		} else {
			descriptor.FilePath = path
		}
		if s.parser != nil {
			cases, parseErr := s.parser.FindCases(path)
			if parseErr != nil {
				return parseErr
			}
			descriptor.Cases = cases

			skipped, parseErr := s.parser.FindSkipped(path)
			if parseErr != nil {
				return parseErr
			}
			descriptor.Skipped = skipped
		}

		descriptors = append(descriptors, descriptor)
		return nil
	})
	if err != nil {
		return nil, &domain.DiscoveryError{Root: root, Pattern: strings.Join(patterns, ","), Err: err}
	}

	return descriptors, nil
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}

// suiteName derives a suite name from the test file name:
// "auth.test.ts" -> "auth", "useMediaQuery.spec.ts" -> "useMediaQuery".
func suiteName(fileName string) string {
	name := fileName
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.TrimSuffix(name, ".test")
	name = strings.TrimSuffix(name, ".spec")
	return name
}
