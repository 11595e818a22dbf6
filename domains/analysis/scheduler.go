package analysis

import (
	"context"
	"fmt"
	"sync"

	"github.com/graphshift/graphshift/libs/engine"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Analyzer is the adapter contract the scheduler consumes. Implementations
// run the external analysis engine on one local directory.
type Analyzer interface {
	Analyze(ctx context.Context, dir, targetVersion, scope string) (*engine.Report, error)
}

// Scheduler runs the analyzer over a batch of repo items with at most limit
// invocations in flight. Failures are isolated per item: one failing or slow
// repository never cancels, fails, or stalls its siblings.
type Scheduler struct {
	l        *zap.Logger
	analyzer Analyzer
	limit    int
}

// NewScheduler creates a scheduler with the given concurrency limit.
func NewScheduler(analyzer Analyzer, limit int, l *zap.Logger) *Scheduler {
	if limit < 1 {
		limit = 1
	}
	return &Scheduler{l: l, analyzer: analyzer, limit: limit}
}

// Run analyzes every item and returns one terminal outcome per item, in input
// order. It returns only after all items have completed or recorded a
// failure; callers needing deterministic reporting sort outcomes themselves.
func (s *Scheduler) Run(ctx context.Context, items []RepoItem, toVersion, scope string, sink Sink) []Outcome {
	sink.Notify(fmt.Sprintf("Starting parallel analysis of %d repositories", len(items)))

	outcomes := make([]Outcome, len(items))
	sem := semaphore.NewWeighted(int64(s.limit))
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(i int, item RepoItem) {
			defer wg.Done()
			outcomes[i] = s.analyzeItem(ctx, sem, item, toVersion, scope, sink)
		}(i, item)
	}

	wg.Wait()
	return outcomes
}

// analyzeItem acquires a permit, runs the adapter once, and releases the
// permit whether the adapter succeeded or not.
func (s *Scheduler) analyzeItem(ctx context.Context, sem *semaphore.Weighted, item RepoItem, toVersion, scope string, sink Sink) Outcome {
	outcome := Outcome{Repository: item.Name}

	if err := sem.Acquire(ctx, 1); err != nil {
		outcome.Err = err
		return outcome
	}
	defer sem.Release(1)

	sink.Notify(fmt.Sprintf("Running analysis on %s", item.Name))

	report, err := s.analyzer.Analyze(ctx, item.LocalPath, toVersion, scope)
	if err != nil {
		s.l.Error("analysis failed",
			zap.String("repository", item.Name),
			zap.String("path", item.LocalPath),
			zap.Error(err),
		)
		outcome.Err = err
		return outcome
	}

	outcome.Findings = report.Findings
	outcome.TotalIssues = report.TotalIssues

	sink.Notify(fmt.Sprintf("Analysis complete: %d issues found in %s", report.TotalIssues, item.Name))
	return outcome
}
