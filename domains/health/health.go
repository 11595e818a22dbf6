package health

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/graphshift/graphshift/config"
)

// Check is one verification of a runtime prerequisite.
type Check struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// Result is the outcome of a full health check.
type Result struct {
	Healthy bool    `json:"healthy"`
	Checks  []Check `json:"checks"`
}

// Perform verifies the prerequisites for running analyses: the analyzer JAR,
// the java runtime, and a writable clone directory.
func Perform(cfg *config.Config) Result {
	checks := []Check{
		checkJar(cfg.Analyzer.JarPath),
		checkJava(),
		checkWritableDir("clone directory", cfg.Analysis.CloneDir),
		checkWritableDir("output directory", cfg.Analyzer.OutputDir),
	}

	healthy := true
	for _, c := range checks {
		if !c.Passed {
			healthy = false
		}
	}

	return Result{Healthy: healthy, Checks: checks}
}

func checkJar(jarPath string) Check {
	c := Check{Name: "analyzer jar"}
	info, err := os.Stat(jarPath)
	if err != nil || info.IsDir() {
		c.Message = "not found at " + jarPath
		return c
	}
	c.Passed = true
	c.Message = jarPath
	return c
}

func checkJava() Check {
	c := Check{Name: "java runtime"}
	path, err := exec.LookPath("java")
	if err != nil {
		c.Message = "java not found on PATH"
		return c
	}
	c.Passed = true
	c.Message = path
	return c
}

func checkWritableDir(name, dir string) Check {
	c := Check{Name: name}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.Message = "cannot create " + dir + ": " + err.Error()
		return c
	}

	probe := filepath.Join(dir, ".graphshift-health")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		c.Message = "not writable: " + dir
		return c
	}
	os.Remove(probe)

	c.Passed = true
	c.Message = dir
	return c
}
