package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_GetTestPath(t *testing.T) {
	web := Project{Name: "web", Root: "web"}

	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default path",
			config: &Config{
				ProjectPath: ".",
				Flags:       Flags{},
			},
			expected: "web",
		},
		{
			name: "with test path flag",
			config: &Config{
				ProjectPath: "/project",
				Flags: Flags{
					TestPath: "web/src",
				},
			},
			expected: "/project/web/src",
		},
		{
			name: "absolute test path",
			config: &Config{
				ProjectPath: "/project",
				Flags: Flags{
					TestPath: "/absolute/path",
				},
			},
			expected: "/absolute/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetTestPath(web)
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_SelectedProjects(t *testing.T) {
	cfg := New()

	t.Run("all projects by default", func(t *testing.T) {
		projects, err := cfg.SelectedProjects()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(projects) != 2 {
			t.Errorf("expected 2 projects, got %d", len(projects))
		}
	})

	t.Run("single project by flag", func(t *testing.T) {
		cfg.Flags.Project = "api"
		defer func() { cfg.Flags.Project = "" }()
		projects, err := cfg.SelectedProjects()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(projects) != 1 || projects[0].Name != "api" {
			t.Errorf("expected only api project, got %v", projects)
		}
	})

	t.Run("unknown project is an error", func(t *testing.T) {
		cfg.Flags.Project = "mobile"
		defer func() { cfg.Flags.Project = "" }()
		if _, err := cfg.SelectedProjects(); err == nil {
			t.Error("expected error for unknown project")
		}
	})
}

func TestConfig_GetDatabaseName(t *testing.T) {
	cfg := New()

	t.Run("default database name", func(t *testing.T) {
		name := cfg.GetDatabaseName(1)
		expected := "testing_1"
		if name != expected {
			t.Errorf("expected %s, got %s", expected, name)
		}
	})

	t.Run("prefix from environment", func(t *testing.T) {
		os.Setenv("DB_DATABASE_PREFIX", "app_testing")
		defer os.Unsetenv("DB_DATABASE_PREFIX")
		name := cfg.GetDatabaseName(3)
		if name != "app_testing_3" {
			t.Errorf("expected app_testing_3, got %s", name)
		}
	})
}

func TestConfig_LoadFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "wtr-config-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	t.Run("missing file is not an error", func(t *testing.T) {
		cfg := New()
		cfg.ProjectPath = tmpDir
		if err := cfg.LoadFile(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		content := "workers: 4\noutput_dir: out\n"
		if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cfg := New()
		cfg.ProjectPath = tmpDir
		if err := cfg.LoadFile(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Workers != 4 {
			t.Errorf("expected 4 workers, got %d", cfg.Workers)
		}
		if cfg.OutputJSONDir != "out" {
			t.Errorf("expected output dir out, got %s", cfg.OutputJSONDir)
		}
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("workers: [oops"), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}
		cfg := New()
		cfg.ProjectPath = tmpDir
		if err := cfg.LoadFile(); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.Workers != DefaultWorkers {
		t.Errorf("expected Workers %d, got %d", DefaultWorkers, cfg.Workers)
	}

	if len(cfg.Projects) != 2 {
		t.Errorf("expected 2 default projects, got %d", len(cfg.Projects))
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}
}
