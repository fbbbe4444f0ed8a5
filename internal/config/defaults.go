package config

const (
	// DefaultOutputDir is where per-test artifacts are compiled to
	DefaultOutputDir = "."
	// DefaultTemplate is the template circuit without a specific implementation
	DefaultTemplate = "s-mips-template.circ"
	// DefaultSimulator is the simulator executable looked up in PATH
	DefaultSimulator = "logisim"
	// DefaultAssemblerCommand is expanded once per test source
	DefaultAssemblerCommand = "python assembler.py {source} -o {out}"
	// DefaultProcessors keeps execution strictly sequential
	DefaultProcessors = 1
	// DefaultResultsFile is the name of the last-run results file inside the output directory
	DefaultResultsFile = "simtest-results.json"
	// DefaultProjectFile is the optional per-project configuration file
	DefaultProjectFile = ".simtest.yaml"
	// ArtifactName is the file the assembler writes inside each per-test directory
	ArtifactName = "Bank"
	// SourceExtension marks assembly test sources
	SourceExtension = ".asm"
	// MaxVerbose is the most detailed verbosity level
	MaxVerbose = 4
)

// Environment variables read from the process environment or a .env file
const (
	EnvSimulator  = "SIMTEST_SIMULATOR"
	EnvAssembler  = "SIMTEST_ASSEMBLER"
	EnvHistoryDSN = "SIMTEST_HISTORY_DSN"
)
