package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for a harness run
type Config struct {
	// Suite settings
	SourceDir    string
	OutputDir    string
	Circuit      string
	TemplatePath string

	// External tools
	Simulator        string
	AssemblerCommand string

	// Execution settings
	Processors int
	Verbose    int

	// Result storage
	ResultsFile string
	HistoryDSN  string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags that were explicitly provided
type Flags struct {
	OutputDir  string
	Template   string
	Verbose    int
	Processors int
	NameFilter string
	Progress   bool
	Simulator  string
	Assembler  string
}

// ProjectFile mirrors the optional .simtest.yaml file
type ProjectFile struct {
	Simulator  string `yaml:"simulator"`
	Assembler  string `yaml:"assembler"`
	Template   string `yaml:"template"`
	OutputDir  string `yaml:"output_dir"`
	Processors int    `yaml:"processors"`
	HistoryDSN string `yaml:"history_dsn"`
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		OutputDir:        DefaultOutputDir,
		TemplatePath:     DefaultTemplate,
		Simulator:        DefaultSimulator,
		AssemblerCommand: DefaultAssemblerCommand,
		Processors:       DefaultProcessors,
		ResultsFile:      DefaultResultsFile,
	}
}

// LoadProject applies the project file at path. A missing file is not an error.
func (c *Config) LoadProject(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read project file %s: %w", path, err)
	}

	var pf ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parse project file %s: %w", path, err)
	}

	if pf.Simulator != "" {
		c.Simulator = pf.Simulator
	}
	if pf.Assembler != "" {
		c.AssemblerCommand = pf.Assembler
	}
	if pf.Template != "" {
		c.TemplatePath = pf.Template
	}
	if pf.OutputDir != "" {
		c.OutputDir = pf.OutputDir
	}
	if pf.Processors > 0 {
		c.Processors = pf.Processors
	}
	if pf.HistoryDSN != "" {
		c.HistoryDSN = pf.HistoryDSN
	}
	return nil
}

// LoadEnv loads a .env file from dir (if present) and applies SIMTEST_* variables
func (c *Config) LoadEnv(dir string) {
	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	if v := os.Getenv(EnvSimulator); v != "" {
		c.Simulator = v
	}
	if v := os.Getenv(EnvAssembler); v != "" {
		c.AssemblerCommand = v
	}
	if v := os.Getenv(EnvHistoryDSN); v != "" {
		c.HistoryDSN = v
	}
}

// ApplyFlags copies explicitly set flags over the current values
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Template != "" {
		c.TemplatePath = flags.Template
	}
	if flags.Simulator != "" {
		c.Simulator = flags.Simulator
	}
	if flags.Assembler != "" {
		c.AssemblerCommand = flags.Assembler
	}
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	c.Verbose = flags.Verbose
}

// Validate checks the preconditions for running a suite
func (c *Config) Validate() error {
	if c.Verbose < 0 || c.Verbose > MaxVerbose {
		return fmt.Errorf("verbose level must be between 0 and %d, got %d", MaxVerbose, c.Verbose)
	}
	if c.Processors < 1 {
		return fmt.Errorf("processors must be at least 1, got %d", c.Processors)
	}
	if _, err := os.Stat(c.TemplatePath); err != nil {
		return fmt.Errorf("template file does not exist: %s", c.TemplatePath)
	}
	info, err := os.Stat(c.SourceDir)
	if err != nil {
		return fmt.Errorf("tests directory does not exist: %s", c.SourceDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("tests path is not a directory: %s", c.SourceDir)
	}
	return nil
}

// CaseDir returns the output directory owned by one test.
// key is the source path relative to SourceDir without its extension, so
// alu/add.asm and fpu/add.asm get separate directories.
func (c *Config) CaseDir(key string) string {
	return filepath.Join(c.OutputDir, key)
}

// ArtifactPath returns the compiled artifact loaded into the simulator for a test
func (c *Config) ArtifactPath(key string) string {
	return filepath.Join(c.CaseDir(key), ArtifactName)
}

// ResultsPath returns the full path to the results JSON file.
// Resolves to an absolute path so run and failures read the same file regardless of cwd.
func (c *Config) ResultsPath() string {
	p := filepath.Join(c.OutputDir, c.ResultsFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
