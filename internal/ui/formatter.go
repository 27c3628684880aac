package ui

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"wtr/internal/config"
	"wtr/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// Render renders a run report in the requested format without side effects.
// Supported formats: "text" (default) and "json".
func (f *Formatter) Render(report domain.RunReport, format string) (string, error) {
	switch format {
	case "", "text":
		var b strings.Builder
		fmt.Fprintf(&b, "Suites: %d | Cases: %d\n", report.TotalSuites, report.TotalCases)
		fmt.Fprintf(&b, "Passed: %d | Failed: %d | Skipped: %d\n", report.Passed, report.Failed, report.Skipped)
		fmt.Fprintf(&b, "Duration: %s | Workers: %d\n", report.Duration, report.Workers)
		for _, cov := range report.Coverage {
			fmt.Fprintf(&b, "Coverage %s: funcs %.2f%%, lines %.2f%%\n", cov.File, cov.FuncsPercent, cov.LinesPercent)
		}
		return b.String(), nil
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal report: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown report format %q", format)
	}
}

// PrintRunStats displays the summary table and failed-suite tree for a run.
func (f *Formatter) PrintRunStats(output *domain.RunOutput) error {
	meta := output.Meta

	// Print header
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                     Test Run Statistics                       ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	rows := []struct {
		label string
		print func(format string, a ...interface{})
		value string
	}{
		{"Total Suites", color.White, fmt.Sprintf("%d", meta.TotalSuites)},
		{"Total Cases", color.White, fmt.Sprintf("%d", meta.TotalCases)},
		{"Passed Cases", color.Green, fmt.Sprintf("%d", meta.Passed)},
		{"Failed Cases", color.Red, fmt.Sprintf("%d", meta.Failed)},
		{"Skipped Cases", color.Yellow, fmt.Sprintf("%d", meta.Skipped)},
		{"Duration", color.White, fmt.Sprintf("%.2fs", meta.DurationSecs)},
		{"Workers", color.White, fmt.Sprintf("%d", meta.Workers)},
		{"Timestamp", color.White, meta.Timestamp},
	}

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Printf("│ %-31s │ ", row.label)
		row.print("%-27s │\n", row.value)
		if i < len(rows)-1 {
			fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	if len(meta.Coverage) > 0 {
		f.printCoverage(meta.Coverage)
	}

	// Print summary line
	fmt.Println()
	if meta.Failed == 0 {
		color.Green("✓ All tests passed!")
	} else {
		color.Red("✗ %d test case(s) failed", meta.Failed)
		fmt.Println()
		f.printFailedTree(output.Details)
	}

	return nil
}

// printCoverage prints per-file coverage percentages
func (f *Formatter) printCoverage(coverage []domain.FileCoverage) {
	fmt.Println()
	color.Cyan("Coverage:")
	for _, cov := range coverage {
		linesColor := color.Green
		if cov.LinesPercent < 80 {
			linesColor = color.Yellow
		}
		if cov.LinesPercent < 50 {
			linesColor = color.Red
		}
		fmt.Printf("  %-45s ", cov.File)
		linesColor("funcs %6.2f%% | lines %6.2f%%", cov.FuncsPercent, cov.LinesPercent)
	}
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.TestFailure
	IsFile   bool
}

// printFailedTree prints a tree structure of failed suites and their cases
func (f *Formatter) printFailedTree(failures []domain.TestFailure) {
	if len(failures) == 0 {
		return
	}

	// Group failures by file path
	fileMap := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		path := failure.FilePath
		if path == "" {
			path = failure.SuiteName
		}
		fileMap[path] = append(fileMap[path], failure)
	}

	root := &TreeNode{
		Name:     "",
		Children: make(map[string]*TreeNode),
	}

	// Process each file
	for filePath, fileFailures := range fileMap {
		parts := strings.Split(strings.TrimPrefix(filepath.ToSlash(filePath), "./"), "/")
		current := root

		for i, part := range parts {
			if part == "" {
				continue
			}

			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}

			current = current.Children[part]

			if i == len(parts)-1 {
				current.Failures = fileFailures
			}
		}
	}

	f.printTreeNode(root, "", true)
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string, isRoot bool) {
	// Sort children for consistent output
	var keys []string
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		isLastChild := i == len(keys)-1

		var connector string
		if isRoot {
			connector = ""
		} else if isLastChild {
			connector = prefix + "└── "
		} else {
			connector = prefix + "├── "
		}

		if child.IsFile {
			color.Yellow("%s%s", connector, child.Name)
		} else {
			color.Cyan("%s%s", connector, child.Name)
		}

		// Print failed cases under a file node
		if child.IsFile {
			casePrefix := prefix + "    "
			if !isRoot && !isLastChild {
				casePrefix = prefix + "│   "
			}
			for j, failure := range child.Failures {
				caseConnector := "├── "
				if j == len(child.Failures)-1 {
					caseConnector = "└── "
				}
				color.Red("%s%s%s", casePrefix, caseConnector, failure.CaseName)
			}
		}

		var newPrefix string
		if isRoot {
			newPrefix = ""
		} else if isLastChild {
			newPrefix = prefix + "    "
		} else {
			newPrefix = prefix + "│   "
		}
		f.printTreeNode(child, newPrefix, false)
	}
}

// CountCases returns the total number of declared cases across suites.
func (f *Formatter) CountCases(suites []domain.SuiteDescriptor) int {
	var total int
	for _, suite := range suites {
		total += len(suite.Cases)
	}
	return total
}

// normalizedPathForKey returns a path key for matching failed suites across
// runs. Both sides carry scan-root-relative paths (descriptor.FilePath and the
// saved failure's FilePath), so normalization only smooths separator and
// casing differences.
func normalizedPathForKey(path string) string {
	p := filepath.ToSlash(path)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimSuffix(p, ".ts")
	return strings.ToLower(p)
}

// PrintSuiteList prints discovered suites, optionally with their cases.
// failedPaths is optional; suites in this set are marked with [F] in red
// (from the last run).
func (f *Formatter) PrintSuiteList(suites []domain.SuiteDescriptor, showCases bool, failedPaths map[string]struct{}) error {
	if showCases {
		color.Green("Found %d test suite(s) with %d case(s):\n", len(suites), f.CountCases(suites))
	} else {
		color.Green("Found %d test suite(s):\n", len(suites))
	}

	// Callers pass paths as recorded in the saved run
	normalizedFailed := make(map[string]struct{}, len(failedPaths))
	for p := range failedPaths {
		normalizedFailed[normalizedPathForKey(p)] = struct{}{}
	}

	for i, suite := range suites {
		relPath, err := filepath.Rel(f.config.ProjectPath, suite.Path)
		if err != nil {
			relPath = suite.Path
		}

		failMarker := ""
		if len(normalizedFailed) > 0 {
			if _, ok := normalizedFailed[normalizedPathForKey(suite.FilePath)]; ok {
				failMarker = " " + color.RedString("[F]")
			}
		}

		isLastSuite := i == len(suites)-1
		if isLastSuite {
			color.Cyan("└── %s%s", relPath, failMarker)
		} else {
			color.Cyan("├── %s%s", relPath, failMarker)
		}

		if !showCases {
			continue
		}

		if len(suite.Cases) == 0 {
			prefix := "│   └── "
			if isLastSuite {
				prefix = "    └── "
			}
			fmt.Printf("%s%s\n", prefix, color.RedString("(no cases found)"))
			continue
		}

		for j, caseName := range suite.Cases {
			isLastCase := j == len(suite.Cases)-1

			var prefix string
			if isLastSuite {
				if isLastCase {
					prefix = "    └── "
				} else {
					prefix = "    ├── "
				}
			} else {
				if isLastCase {
					prefix = "│   └── "
				} else {
					prefix = "│   ├── "
				}
			}

			skipMarker := ""
			if suite.Skipped[caseName] {
				skipMarker = " " + color.CyanString("(skip)")
			}
			fmt.Printf("%s%s%s\n", prefix, color.YellowString(caseName), skipMarker)
		}

		if !isLastSuite {
			fmt.Println()
		}
	}

	return nil
}
