package harness

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simtest/internal/config"
	"simtest/internal/discovery"
	"simtest/internal/domain"
	"simtest/internal/execution"
	"simtest/internal/logging"
)

// fakeCompiler records compiled sources and fails for names in fail
type fakeCompiler struct {
	fail     map[string]bool
	compiled []string
}

func (f *fakeCompiler) Compile(ctx context.Context, source, outDir string) error {
	f.compiled = append(f.compiled, source)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	if f.fail[filepath.Base(source)] {
		return errors.New("assembler exited with status 1")
	}
	return os.WriteFile(filepath.Join(outDir, config.ArtifactName), []byte("v2.0 raw"), 0644)
}

// artifactSimulator fails like the real simulator when the artifact is missing
type artifactSimulator struct {
	outputs map[string]string // keyed by test name
}

func (s *artifactSimulator) Simulate(ctx context.Context, artifact string) (string, error) {
	if _, err := os.Stat(artifact); err != nil {
		return "", &execution.ExecError{ExitCode: 1, Stderr: "unable to load " + artifact}
	}
	return s.outputs[filepath.Base(filepath.Dir(artifact))], nil
}

func writeTests(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func newTestConfig(t *testing.T, sourceDir string) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.SourceDir = sourceDir
	cfg.OutputDir = t.TempDir()
	cfg.Circuit = "mips.circ"
	return cfg
}

func TestNewSuite_DiscoversCompilesAndExtracts(t *testing.T) {
	root := writeTests(t, map[string]string{
		"hello.asm":            "#prints HELLO\n#limit 100\n",
		"alu/deep/add.asm":     "#prints 3\n",
		"alu/free.asm":         "nop\n",
		"alu/ignored.asm.orig": "#prints x\n",
	})
	cfg := newTestConfig(t, root)
	compiler := &fakeCompiler{}

	suite, err := NewSuite(context.Background(), cfg, nil, Deps{Compiler: compiler, Simulator: &artifactSimulator{}})
	require.NoError(t, err)

	cases := suite.Cases()
	require.Len(t, cases, 3)
	assert.Len(t, compiler.compiled, 3)

	byName := map[string]*TestCase{}
	for _, tc := range cases {
		byName[tc.Name] = tc
		rel, err := filepath.Rel(root, tc.Source)
		require.NoError(t, err)
		key := strings.TrimSuffix(rel, config.SourceExtension)
		assert.Equal(t, filepath.Join(cfg.OutputDir, key), tc.Dir)
		assert.Equal(t, filepath.Join(cfg.OutputDir, key, "Bank"), tc.Artifact)
		assert.False(t, tc.HasRun)
	}

	require.Contains(t, byName, "hello")
	assert.Equal(t, "HELLO", *byName["hello"].ExpectedOutput)
	assert.Equal(t, int64(100), *byName["hello"].ExpectedSpeed)
	require.Contains(t, byName, "add")
	assert.Nil(t, byName["add"].ExpectedSpeed)
	require.Contains(t, byName, "free")
	assert.Nil(t, byName["free"].ExpectedOutput)
}

func TestNewSuite_SameNameInDifferentDirs(t *testing.T) {
	root := writeTests(t, map[string]string{
		"alu/add.asm": "#prints 3\n",
		"fpu/add.asm": "#prints 3.0\n",
	})
	cfg := newTestConfig(t, root)
	compiler := &fakeCompiler{}

	suite, err := NewSuite(context.Background(), cfg, nil, Deps{Compiler: compiler, Simulator: &artifactSimulator{}})
	require.NoError(t, err)

	cases := suite.Cases()
	require.Len(t, cases, 2)
	assert.Equal(t, "add", cases[0].Name)
	assert.Equal(t, "add", cases[1].Name)

	assert.Equal(t, filepath.Join(cfg.OutputDir, "alu", "add"), cases[0].Dir)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "fpu", "add"), cases[1].Dir)
	assert.NotEqual(t, cases[0].Artifact, cases[1].Artifact)
	assert.FileExists(t, cases[0].Artifact)
	assert.FileExists(t, cases[1].Artifact)
	assert.Len(t, compiler.compiled, 2)
}

func TestNewSuite_MalformedLimitIsFatal(t *testing.T) {
	root := writeTests(t, map[string]string{
		"good.asm": "#prints 1\n",
		"bad.asm":  "#limit soon\n",
	})

	_, err := NewSuite(context.Background(), newTestConfig(t, root), nil, Deps{Compiler: &fakeCompiler{}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, discovery.ErrMalformedLimit))
}

func TestNewSuite_AppliesNameFilter(t *testing.T) {
	root := writeTests(t, map[string]string{
		"loop_a.asm": "",
		"loop_b.asm": "",
		"add.asm":    "",
	})
	cfg := newTestConfig(t, root)
	cfg.Flags.NameFilter = "loop*"
	compiler := &fakeCompiler{}

	suite, err := NewSuite(context.Background(), cfg, nil, Deps{Compiler: compiler})
	require.NoError(t, err)
	assert.Len(t, suite.Cases(), 2)
	assert.Len(t, compiler.compiled, 2)
}

func TestSuite_RunAll(t *testing.T) {
	root := writeTests(t, map[string]string{
		"a_hello.asm":  "#prints HELLO\n#limit 100\n",
		"b_slow.asm":   "#prints HELLO\n#limit 100\n",
		"c_broken.asm": "#prints X\n",
		"d_free.asm":   "",
	})
	sim := &artifactSimulator{outputs: map[string]string{
		"a_hello": "HELLO\nhalted due to halt pin\n2.5 kHz (50 ticks in 20 milliseconds)\n",
		"b_slow":  "HELLO\nhalted due to halt pin\n7.5 kHz (150 ticks in 20 milliseconds)\n",
		"d_free":  "whatever\n",
	}}

	for _, workers := range []int{1, 4} {
		cfg := newTestConfig(t, root)
		cfg.Processors = workers
		var buf bytes.Buffer
		log := logging.New(logging.LevelSummary, &buf)

		compiler := &fakeCompiler{fail: map[string]bool{"c_broken.asm": true}}
		suite, err := NewSuite(context.Background(), cfg, log, Deps{Compiler: compiler, Simulator: sim})
		require.NoError(t, err)
		require.Len(t, suite.Cases(), 4, "a failed compile still creates the case")

		require.NoError(t, suite.RunAll(context.Background()))
		assert.True(t, suite.AnyFailed)

		status := map[string]domain.CaseStatus{}
		for _, tc := range suite.Cases() {
			assert.True(t, tc.HasRun)
			status[tc.Name] = tc.Status()
		}
		assert.Equal(t, domain.StatusPassed, status["a_hello"])
		assert.Equal(t, domain.StatusFailed, status["b_slow"])
		assert.Equal(t, domain.StatusError, status["c_broken"])
		assert.Equal(t, domain.StatusPassed, status["d_free"])

		out := buf.String()
		assert.Contains(t, out, "Error compiling:")
		assert.Contains(t, out, "c_broken could not be executed correctly")
		assertInOrder(t, out, "Result: a_hello", "Result: b_slow", "c_broken could not", "Result: d_free")

		summary := suite.Summary()
		assert.Equal(t, 2, summary.Passed)
		assert.Equal(t, 2, summary.Failed)

		report := suite.Report(summary.Duration)
		assert.Equal(t, 4, report.Meta.TotalCases)
		assert.Equal(t, 2, report.Meta.PassedCases)
		assert.Equal(t, 1, report.Meta.FailedCases)
		assert.Equal(t, 1, report.Meta.ErroredCases)
		assert.Len(t, report.Failures(), 2)
	}
}

func TestSuite_RunAllPassing(t *testing.T) {
	root := writeTests(t, map[string]string{"ok.asm": "#prints 1\n"})
	sim := &artifactSimulator{outputs: map[string]string{"ok": "1\nhalted due to halt pin"}}

	suite, err := NewSuite(context.Background(), newTestConfig(t, root), nil, Deps{Compiler: &fakeCompiler{}, Simulator: sim})
	require.NoError(t, err)
	require.NoError(t, suite.RunAll(context.Background()))
	assert.False(t, suite.AnyFailed)
}

func TestSuite_RunTest(t *testing.T) {
	root := writeTests(t, map[string]string{
		"one.asm": "#prints 1\n",
		"two.asm": "#prints 2\n",
	})
	sim := &artifactSimulator{outputs: map[string]string{"two": "3\nhalted due to halt pin"}}

	suite, err := NewSuite(context.Background(), newTestConfig(t, root), nil, Deps{Compiler: &fakeCompiler{}, Simulator: sim})
	require.NoError(t, err)

	require.NoError(t, suite.RunTest(context.Background(), "two"))
	assert.True(t, suite.AnyFailed)
	for _, tc := range suite.Cases() {
		assert.Equal(t, tc.Name == "two", tc.HasRun)
	}

	assert.Error(t, suite.RunTest(context.Background(), "three"))
}

func TestSuite_RunAllCancelled(t *testing.T) {
	root := writeTests(t, map[string]string{"a.asm": "", "b.asm": ""})
	var buf bytes.Buffer

	suite, err := NewSuite(context.Background(), newTestConfig(t, root), logging.New(logging.LevelSummary, &buf),
		Deps{Compiler: &fakeCompiler{}, Simulator: &artifactSimulator{}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, suite.RunAll(ctx), context.Canceled)
	assert.Equal(t, 2, strings.Count(buf.String(), "must run before reporting"))
}

func assertInOrder(t *testing.T, text string, parts ...string) {
	t.Helper()
	pos := 0
	for _, part := range parts {
		idx := strings.Index(text[pos:], part)
		if !assert.GreaterOrEqual(t, idx, 0, "%q missing or out of order", part) {
			return
		}
		pos += idx + len(part)
	}
}
