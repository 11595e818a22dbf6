package runs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/graphshift/graphshift/config"
	"github.com/graphshift/graphshift/domains/analysis"
	"github.com/graphshift/graphshift/domains/summary"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Worker executes queued analysis runs in the background. Concurrency across
// repositories lives inside the analysis scheduler; the worker processes one
// run at a time.
type Worker struct {
	l       *zap.Logger
	svc     *analysis.Service
	summary *summary.Summarizer
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// StartWorker starts the background run worker
func StartWorker(lc fx.Lifecycle, cfg *config.Config, l *zap.Logger) {
	worker := &Worker{
		l:       l,
		svc:     analysis.NewDefaultService(cfg, l),
		summary: summary.New(cfg, l),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			workerCtx, cancel := context.WithCancel(context.Background())
			worker.cancel = cancel
			worker.start(workerCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			worker.stop()
			return nil
		},
	})
}

// start begins the worker goroutine
func (w *Worker) start(ctx context.Context) {
	w.l.Info("starting run worker")
	w.wg.Add(1)
	go w.run(ctx)
}

// stop gracefully stops the worker
func (w *Worker) stop() {
	w.l.Info("stopping run worker")
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	w.l.Info("run worker stopped")
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.l.Info("worker stopping")
			return
		case <-ticker.C:
			w.processRun(ctx)
		}
	}
}

// processRun attempts to claim and execute a pending run
func (w *Worker) processRun(ctx context.Context) {
	run, err := ClaimPending(ctx)
	if errors.Is(err, ErrNotFound) {
		return // No pending runs
	}
	if err != nil {
		w.l.Error("failed to claim pending run", zap.Error(err))
		return
	}

	l := w.l.With(zap.Int64("run_id", run.ID))
	l.Info("claimed pending run",
		zap.String("repo_path", run.RepoPath),
		zap.String("org_name", run.OrgName),
	)

	agg, err := w.svc.Run(ctx, run.Request(), analysis.LogSink{L: l})
	if err != nil {
		l.Error("run failed", zap.Error(err))
		if dbErr := SetError(ctx, run.ID, err.Error()); dbErr != nil {
			l.Error("failed to record run failure", zap.Error(dbErr))
		}
		return
	}

	text, err := w.summary.Summarize(ctx, agg)
	if err != nil {
		l.Warn("failed to summarize findings", zap.Error(err))
	}

	if err := Complete(ctx, run.ID, agg, text); err != nil {
		l.Error("failed to store run result", zap.Error(err))
		return
	}

	l.Info("run completed",
		zap.Int("total_issues", agg.TotalIssues),
		zap.Int("repos_analyzed", agg.ReposAnalyzed),
	)
}
