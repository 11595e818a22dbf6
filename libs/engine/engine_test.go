package engine

import (
	"context"
	"testing"

	"github.com/graphshift/graphshift/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := config.Default()
	cfg.Analyzer.JarPath = "/opt/gs/gs-analyzer.jar"
	cfg.Analyzer.OutputDir = t.TempDir()
	return New(cfg, zap.NewNop())
}

func TestBuildArgs(t *testing.T) {
	e := newTestEngine(t)

	args := e.buildArgs("/work/widgets", "21", "all-deprecations", "/out/a.json")
	assert.Equal(t, []string{
		"-Xmx2g",
		"-Xms512m",
		"-Xss4m",
		"-jar", "/opt/gs/gs-analyzer.jar",
		"-d", "/work/widgets",
		"-t", "21",
		"--scope", "all-deprecations",
		"-o", "/out/a.json",
	}, args)
}

func TestArtifactPathsAreDisjoint(t *testing.T) {
	e := newTestEngine(t)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		p := e.artifactPath("21", "all-deprecations")
		assert.False(t, seen[p], "path %s issued twice", p)
		seen[p] = true
	}
}

func TestParseArtifactBareArray(t *testing.T) {
	report, err := parseArtifact([]byte(`[{"kind":"deprecated"},{"kind":"removed"}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalIssues)
	require.Len(t, report.Findings, 2)
	assert.JSONEq(t, `{"kind":"deprecated"}`, string(report.Findings[0]))
}

func TestParseArtifactWrappedObject(t *testing.T) {
	report, err := parseArtifact([]byte(`{"findings":[{"kind":"deprecated"}]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalIssues)
}

func TestParseArtifactEmpty(t *testing.T) {
	report, err := parseArtifact([]byte(`[]`))
	require.NoError(t, err)
	assert.Zero(t, report.TotalIssues)
	assert.Empty(t, report.Findings)
}

func TestParseArtifactInvalid(t *testing.T) {
	_, err := parseArtifact([]byte(`not json`))
	assert.Error(t, err)
}

func TestAnalyzeMissingDirectory(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Analyze(context.Background(), "/does/not/exist", "21", "all-deprecations")
	assert.ErrorContains(t, err, "directory does not exist")
}

func TestTail(t *testing.T) {
	assert.Equal(t, "short", tail([]byte("  short  "), 512))

	long := make([]byte, 1024)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, tail(long, 512), 512)
}
