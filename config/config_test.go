package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gs-analyzer.jar", cfg.Analyzer.JarPath)
	assert.Equal(t, "2g", cfg.Analyzer.Heap)
	assert.Equal(t, 5, cfg.Analysis.MaxConcurrentRepos)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"huge port", func(c *Config) { c.Server.Port = 70000 }},
		{"empty jar path", func(c *Config) { c.Analyzer.JarPath = "" }},
		{"heap without unit", func(c *Config) { c.Analyzer.Heap = "2048" }},
		{"heap with bad unit", func(c *Config) { c.Analyzer.Heap = "2t" }},
		{"initial heap garbage", func(c *Config) { c.Analyzer.InitialHeap = "lots" }},
		{"zero concurrency", func(c *Config) { c.Analysis.MaxConcurrentRepos = 0 }},
		{"negative concurrency", func(c *Config) { c.Analysis.MaxConcurrentRepos = -3 }},
		{"empty clone dir", func(c *Config) { c.Analysis.CloneDir = "" }},
		{"empty report dir", func(c *Config) { c.Analysis.ReportDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadAppliesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: dev
server:
  port: 9090
analyzer:
  heap: 4g
analysis:
  max_concurrent_repos: 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "4g", cfg.Analyzer.Heap)
	assert.Equal(t, 3, cfg.Analysis.MaxConcurrentRepos)
	// Untouched keys keep their defaults.
	assert.Equal(t, "512m", cfg.Analyzer.InitialHeap)
	assert.True(t, cfg.IsDev())
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analyzer:\n  heap: nope\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("github:\n  token: from-file\n"), 0o644))

	t.Setenv("GRAPHSHIFT_GITHUB_TOKEN", "from-env")
	t.Setenv("GRAPHSHIFT_OPENAI_API_KEY", "key-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.GitHub.Token)
	assert.Equal(t, "key-env", cfg.OpenAI.APIKey)
}

func TestIsDev(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.IsDev())

	cfg.Env = "development"
	assert.True(t, cfg.IsDev())
}
