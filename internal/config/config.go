package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project describes one invocation context of the application under test
type Project struct {
	Name         string   `yaml:"name"`
	Root         string   `yaml:"root"`
	Patterns     []string `yaml:"patterns"`
	Runner       []string `yaml:"runner"`
	UsesDatabase bool     `yaml:"uses_database"`
}

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string    `yaml:"project_path"`
	Projects    []Project `yaml:"projects"`

	// Output settings
	OutputJSONFile string `yaml:"output_file"`
	OutputJSONDir  string `yaml:"output_dir"`

	// Execution settings
	Workers int `yaml:"workers"`

	// Paths to ignore when scanning
	PathsToIgnore []string `yaml:"ignore"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags
type Flags struct {
	Workers      int
	Project      string
	TestPath     string
	NameFilter   string
	TestCases    bool
	FailFast     bool
	OnlyFailed   bool
	Coverage     bool
	Prepare      bool
	NoFresh      bool
	OpenFailures bool
	Format       string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Workers:        DefaultWorkers,
		Flags:          Flags{Workers: DefaultWorkers},
	}
	cfg.Projects = make([]Project, len(DefaultProjects))
	copy(cfg.Projects, DefaultProjects)
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// LoadFile applies overrides from a wtr.yaml file if one exists at the
// project path. A missing file is not an error.
func (c *Config) LoadFile() error {
	path := filepath.Join(c.ProjectPath, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", ConfigFileName, err)
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	return nil
}

// ApplyFlags applies parsed command-line flags on top of file/default values.
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
}

// SelectedProjects returns the projects matching the --project flag,
// or all configured projects when the flag is empty or "all".
func (c *Config) SelectedProjects() ([]Project, error) {
	sel := c.Flags.Project
	if sel == "" || sel == "all" {
		return c.Projects, nil
	}
	for _, p := range c.Projects {
		if p.Name == sel {
			return []Project{p}, nil
		}
	}
	return nil, fmt.Errorf("unknown project %q", sel)
}

// ProjectByName returns the named project.
func (c *Config) ProjectByName(name string) (Project, error) {
	for _, p := range c.Projects {
		if p.Name == name {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("unknown project %q", name)
}

// GetTestPath returns the scan root for a project, using the flag if provided
func (c *Config) GetTestPath(p Project) string {
	if c.Flags.TestPath != "" {
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}
	return filepath.Join(c.ProjectPath, p.Root)
}

// ProjectRoot returns the absolute root directory of a project.
func (c *Config) ProjectRoot(p Project) string {
	path := filepath.Join(c.ProjectPath, p.Root)
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and failures always read/write the same
// file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetDatabaseName returns the test database name for a worker
func (c *Config) GetDatabaseName(workerID int) string {
	prefix := os.Getenv("DB_DATABASE_PREFIX")
	if prefix == "" {
		prefix = DefaultDatabasePrefix
	}
	return fmt.Sprintf("%s_%d", prefix, workerID)
}
