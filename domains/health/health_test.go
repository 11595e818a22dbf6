package health

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/graphshift/graphshift/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformMissingJar(t *testing.T) {
	cfg := config.Default()
	cfg.Analyzer.JarPath = filepath.Join(t.TempDir(), "absent.jar")
	cfg.Analysis.CloneDir = t.TempDir()
	cfg.Analyzer.OutputDir = t.TempDir()

	result := Perform(cfg)
	assert.False(t, result.Healthy)

	var jar Check
	for _, c := range result.Checks {
		if c.Name == "analyzer jar" {
			jar = c
		}
	}
	assert.False(t, jar.Passed)
	assert.Contains(t, jar.Message, "not found")
}

func TestPerformWithJarPresent(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "gs-analyzer.jar")
	require.NoError(t, os.WriteFile(jar, []byte("PK"), 0o644))

	cfg := config.Default()
	cfg.Analyzer.JarPath = jar
	cfg.Analysis.CloneDir = t.TempDir()
	cfg.Analyzer.OutputDir = t.TempDir()

	result := Perform(cfg)
	require.Len(t, result.Checks, 4)
	assert.True(t, result.Checks[0].Passed)
	assert.True(t, result.Checks[2].Passed, "clone directory is writable")
	assert.True(t, result.Checks[3].Passed, "output directory is writable")
}

func TestCheckWritableDirCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "to-create")

	c := checkWritableDir("probe", dir)
	assert.True(t, c.Passed)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
