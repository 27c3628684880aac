package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// ConfigFileName is the optional per-project config file
	ConfigFileName = "wtr.yaml"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultWorkers is the default number of workers. Suites run
	// sequentially unless parallelism is requested explicitly.
	DefaultWorkers = 1
	// DefaultDatabasePrefix is the default test database name prefix
	DefaultDatabasePrefix = "testing"
)

// DefaultPatterns are the file name patterns that mark a test file
var DefaultPatterns = []string{"*.test.ts", "*.spec.ts"}

// DefaultProjects are the two invocation contexts of the application:
// the Vue frontend and the Elysia API backend, both run under Bun.
var DefaultProjects = []Project{
	{
		Name:     "web",
		Root:     "web",
		Patterns: DefaultPatterns,
		Runner:   []string{"bun", "test"},
	},
	{
		Name:         "api",
		Root:         "api",
		Patterns:     DefaultPatterns,
		Runner:       []string{"bun", "test"},
		UsesDatabase: true,
	},
}

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"node_modules",
	"dist",
	"build",
	"coverage",
	"public",
	"storage",
	".output",
	".nuxt",
}
