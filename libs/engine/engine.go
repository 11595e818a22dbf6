package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"

	"github.com/graphshift/graphshift/config"
	"go.uber.org/zap"
)

// Finding is one issue reported by the analyzer JAR. Contents are opaque to
// this module; order and identity are preserved verbatim.
type Finding = json.RawMessage

// Report is the parsed output of one analyzer invocation.
type Report struct {
	Findings    []Finding
	TotalIssues int
}

// Engine invokes the external analyzer JAR on local directories. A single
// Engine is safe for concurrent use; each invocation owns a distinct output
// artifact.
type Engine struct {
	l           *zap.Logger
	jarPath     string
	heap        string
	initialHeap string
	outputDir   string
	seq         atomic.Uint64
}

// New creates an Engine from validated configuration.
func New(cfg *config.Config, l *zap.Logger) *Engine {
	return &Engine{
		l:           l,
		jarPath:     cfg.Analyzer.JarPath,
		heap:        cfg.Analyzer.Heap,
		initialHeap: cfg.Analyzer.InitialHeap,
		outputDir:   cfg.Analyzer.OutputDir,
	}
}

// Analyze runs the analyzer JAR once against dir. A non-zero exit code or a
// missing or unparsable output artifact is an error. There is no retry.
func (e *Engine) Analyze(ctx context.Context, dir, targetVersion, scope string) (*Report, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("directory does not exist: %s", dir)
	}

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	artifact := e.artifactPath(targetVersion, scope)
	defer os.Remove(artifact)

	cmd := exec.CommandContext(ctx, "java", e.buildArgs(dir, targetVersion, scope, artifact)...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	e.l.Debug("running analyzer",
		zap.String("dir", dir),
		zap.String("target_version", targetVersion),
		zap.String("scope", scope),
		zap.String("artifact", artifact),
	)

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("analyzer failed: %w: %s", err, tail(out.Bytes(), 512))
	}

	data, err := os.ReadFile(artifact)
	if err != nil {
		return nil, fmt.Errorf("analyzer completed but output artifact is missing: %w", err)
	}

	report, err := parseArtifact(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse analyzer output: %w", err)
	}

	e.l.Debug("analyzer completed",
		zap.String("dir", dir),
		zap.Int("findings", report.TotalIssues),
	)
	return report, nil
}

// buildArgs builds the java command line for one invocation.
func (e *Engine) buildArgs(dir, targetVersion, scope, artifact string) []string {
	return []string{
		"-Xmx" + e.heap,
		"-Xms" + e.initialHeap,
		"-Xss4m",
		"-jar", e.jarPath,
		"-d", dir,
		"-t", targetVersion,
		"--scope", scope,
		"-o", artifact,
	}
}

// artifactPath returns a per-invocation output path namespaced by version and
// scope. The sequence number keeps concurrent invocations disjoint.
func (e *Engine) artifactPath(targetVersion, scope string) string {
	n := e.seq.Add(1)
	name := fmt.Sprintf("analysis_%s_%s_%d.json", targetVersion, scope, n)
	return filepath.Join(e.outputDir, name)
}

// parseArtifact accepts either a bare findings array or an object wrapping
// one under a "findings" key.
func parseArtifact(data []byte) (*Report, error) {
	var findings []Finding
	if err := json.Unmarshal(data, &findings); err == nil {
		return &Report{Findings: findings, TotalIssues: len(findings)}, nil
	}

	var wrapped struct {
		Findings []Finding `json:"findings"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	return &Report{Findings: wrapped.Findings, TotalIssues: len(wrapped.Findings)}, nil
}

func tail(b []byte, n int) string {
	if len(b) <= n {
		return string(bytes.TrimSpace(b))
	}
	return string(bytes.TrimSpace(b[len(b)-n:]))
}
