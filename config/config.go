package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the validated configuration for a GraphShift process. It is
// constructed once at startup and injected; nothing reads it lazily or
// substitutes defaults after validation.
type Config struct {
	Env string `yaml:"env"`

	Server struct {
		Port               int      `yaml:"port"`
		CorsAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`

	Analyzer struct {
		JarPath     string `yaml:"jar_path"`
		Heap        string `yaml:"heap"`
		InitialHeap string `yaml:"initial_heap"`
		OutputDir   string `yaml:"output_dir"`
	} `yaml:"analyzer"`

	Analysis struct {
		MaxConcurrentRepos int    `yaml:"max_concurrent_repos"`
		CloneDir           string `yaml:"clone_dir"`
		ReportDir          string `yaml:"report_dir"`
	} `yaml:"analysis"`

	GitHub struct {
		Token string `yaml:"token"`
	} `yaml:"github"`

	OpenAI struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"openai"`
}

// memorySizePattern matches JVM heap sizes like 512m, 2g, 4096k.
var memorySizePattern = regexp.MustCompile(`^[0-9]+[kKmMgG]$`)

// Default returns a Config with every default applied explicitly.
func Default() *Config {
	cfg := &Config{Env: "production"}
	cfg.Server.Port = 8080
	cfg.Analyzer.JarPath = "gs-analyzer.jar"
	cfg.Analyzer.Heap = "2g"
	cfg.Analyzer.InitialHeap = "512m"
	cfg.Analyzer.OutputDir = "oss/outputs"
	cfg.Analysis.MaxConcurrentRepos = 5
	cfg.Analysis.CloneDir = os.TempDir()
	cfg.Analysis.ReportDir = "reports"
	return cfg
}

// Load reads a YAML config file over the defaults and validates the result.
// Secrets may also come from the environment (GRAPHSHIFT_GITHUB_TOKEN,
// GRAPHSHIFT_OPENAI_API_KEY), which takes precedence over the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if token := os.Getenv("GRAPHSHIFT_GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if key := os.Getenv("GRAPHSHIFT_OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on invalid shapes instead of silently falling back.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Analyzer.JarPath == "" {
		return fmt.Errorf("analyzer jar_path must not be empty")
	}
	if !memorySizePattern.MatchString(c.Analyzer.Heap) {
		return fmt.Errorf("invalid analyzer heap size: %q", c.Analyzer.Heap)
	}
	if !memorySizePattern.MatchString(c.Analyzer.InitialHeap) {
		return fmt.Errorf("invalid analyzer initial heap size: %q", c.Analyzer.InitialHeap)
	}
	if c.Analysis.MaxConcurrentRepos < 1 {
		return fmt.Errorf("max_concurrent_repos must be at least 1, got %d", c.Analysis.MaxConcurrentRepos)
	}
	if c.Analysis.CloneDir == "" {
		return fmt.Errorf("analysis clone_dir must not be empty")
	}
	if c.Analysis.ReportDir == "" {
		return fmt.Errorf("analysis report_dir must not be empty")
	}
	return nil
}

// IsDev reports whether the process runs in a development environment.
func (c *Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}
