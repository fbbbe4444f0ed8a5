package cli

import "simtest/internal/config"

// Flags holds command-line flags
type Flags struct {
	OutputDir   string
	Template    string
	Verbose     int
	Processors  int
	NameFilter  string
	Progress    bool
	Simulator   string
	Assembler   string
	ProjectFile string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		OutputDir:  f.OutputDir,
		Template:   f.Template,
		Verbose:    f.Verbose,
		Processors: f.Processors,
		NameFilter: f.NameFilter,
		Progress:   f.Progress,
		Simulator:  f.Simulator,
		Assembler:  f.Assembler,
	}
}
