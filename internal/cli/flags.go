package cli

import "wtr/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Workers:      f.Workers,
		Project:      f.Project,
		TestPath:     f.TestPath,
		NameFilter:   f.NameFilter,
		TestCases:    f.TestCases,
		FailFast:     f.FailFast,
		OnlyFailed:   f.OnlyFailed,
		Coverage:     f.Coverage,
		Prepare:      f.Prepare,
		NoFresh:      f.NoFresh,
		OpenFailures: f.OpenFailures,
		Format:       f.Format,
	}
}
