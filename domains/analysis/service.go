package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/graphshift/graphshift/config"
	"github.com/graphshift/graphshift/libs/engine"
	"github.com/graphshift/graphshift/libs/gitrepo"
	"go.uber.org/zap"
)

// analyzedLanguage is the language remote listings are filtered to.
const analyzedLanguage = "Java"

// Service orchestrates one analysis run: resolve the target, discover repo
// items, schedule the analyzer over them, aggregate outcomes, and clean up
// clones last.
type Service struct {
	l         *zap.Logger
	scheduler *Scheduler
	scm       SCM
	cloner    Cloner
	limit     int
}

// NewService wires a Service from validated configuration and collaborators.
func NewService(cfg *config.Config, analyzer Analyzer, scm SCM, cloner Cloner, l *zap.Logger) *Service {
	limit := cfg.Analysis.MaxConcurrentRepos
	return &Service{
		l:         l,
		scheduler: NewScheduler(analyzer, limit, l),
		scm:       scm,
		cloner:    cloner,
		limit:     limit,
	}
}

// NewDefaultService builds a Service with the production collaborators: the
// JAR engine, the provider-registry SCM, and the go-git cloner.
func NewDefaultService(cfg *config.Config, l *zap.Logger) *Service {
	return NewService(
		cfg,
		engine.New(cfg, l),
		NewSCM(cfg.GitHub.Token),
		NewCloner(l, cfg.Analysis.CloneDir, cfg.GitHub.Token),
		l,
	)
}

// Run executes a request end to end. Item-level failures are contained and
// surface only through diminished counts; batch-level failures (empty
// discovery, unreachable collaborators) return an error.
func (s *Service) Run(ctx context.Context, req Request, sink Sink) (*Aggregate, error) {
	if sink == nil {
		sink = NopSink{}
	}

	switch {
	case req.RepoPath != "" && req.OrgName != "":
		return nil, ErrInvalidRequest
	case req.RepoPath != "":
		return s.runSingleRepo(ctx, req, sink)
	case req.OrgName != "":
		return s.runOrganization(ctx, req, sink)
	default:
		return nil, ErrInvalidRequest
	}
}

// runSingleRepo analyzes one repository, cloning it first when remote.
func (s *Service) runSingleRepo(ctx context.Context, req Request, sink Sink) (*Aggregate, error) {
	var item RepoItem
	var cleanupPath string

	if IsLocalPath(req.RepoPath) {
		localPath, err := filepath.Abs(req.RepoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path: %w", err)
		}
		item = RepoItem{
			Name:      RepoNameFromTarget(localPath),
			LocalPath: localPath,
			Origin:    OriginLocal,
			Cloned:    true,
		}
		sink.Notify(fmt.Sprintf("Analyzing local repository: %s", item.Name))
	} else {
		sink.Notify("Cloning remote repository")

		localPath, err := s.cloner.CloneOne(ctx, req.RepoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to clone repository %s: %w", req.RepoPath, err)
		}
		item = RepoItem{
			Name:      RepoNameFromTarget(req.RepoPath),
			LocalPath: localPath,
			Origin:    OriginClonedRemote,
			Cloned:    true,
		}
		cleanupPath = localPath
		sink.Notify(fmt.Sprintf("Analyzing cloned repository: %s", item.Name))
	}

	outcomes := s.scheduler.Run(ctx, []RepoItem{item}, req.ToVersion, req.Scope, sink)
	if outcomes[0].Err != nil {
		return nil, fmt.Errorf("analysis failed for %s: %w", item.Name, outcomes[0].Err)
	}

	return AggregateSingle(outcomes[0], cleanupPath), nil
}

// runOrganization analyzes every qualifying repository of a local directory
// or remote organization.
func (s *Service) runOrganization(ctx context.Context, req Request, sink Sink) (*Aggregate, error) {
	var items []RepoItem
	var clonedPaths []string
	remote := false

	if info, err := os.Stat(req.OrgName); err == nil && info.IsDir() {
		sink.Notify(fmt.Sprintf("Discovering repositories in local directory: %s", req.OrgName))

		items, err = DiscoverLocal(req.OrgName, req.MaxRepos)
		if err != nil {
			return nil, fmt.Errorf("discovery failed in %s: %w", req.OrgName, err)
		}
	} else {
		remote = true
		sink.Notify(fmt.Sprintf("Discovering repositories in remote organization: %s", req.OrgName))

		var err error
		items, clonedPaths, err = s.discoverRemote(ctx, req, sink)
		if err != nil {
			return nil, err
		}
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRepositories, req.OrgName)
	}

	outcomes := s.scheduler.Run(ctx, items, req.ToVersion, req.Scope, sink)

	// The aggregate carries clone paths only when they are retained; when
	// retention is declined, cleanup below consumes that information.
	var cleanupPaths []string
	if req.KeepClones {
		cleanupPaths = clonedPaths
	}
	agg := AggregateOrganization(req.OrgName, outcomes, cleanupPaths)

	// Cleanup runs strictly after aggregation, never concurrently with
	// analysis, and only for remote batches that are not retained.
	if remote && !req.KeepClones {
		s.cloner.Cleanup(clonedPaths)
		sink.Notify("Temporary clones removed")
	}

	return agg, nil
}

// discoverRemote lists, filters, and clones an organization's repositories.
// Items that fail to clone are excluded from the analyzed set and are never
// registered for cleanup.
func (s *Service) discoverRemote(ctx context.Context, req Request, sink Sink) ([]RepoItem, []string, error) {
	repos, err := s.scm.ListOrgRepos(ctx, req.OrgName, req.Provider, req.MaxRepos)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to discover repositories: %w", err)
	}

	candidates := gitrepo.FilterByLanguage(repos, analyzedLanguage)
	if len(candidates) > req.MaxRepos {
		candidates = candidates[:req.MaxRepos]
	}
	if len(candidates) == 0 {
		return nil, nil, fmt.Errorf("%w in %s", ErrNoRepositories, req.OrgName)
	}

	sink.Notify(fmt.Sprintf("Cloning %d repositories", len(candidates)))

	results := s.cloner.CloneMany(ctx, req.Provider, candidates, req.OrgName, s.limit)

	var items []RepoItem
	var clonedPaths []string
	for _, r := range results {
		if !r.Success {
			s.l.Warn("excluding repository after clone failure",
				zap.String("repository", r.Name),
				zap.Error(r.Err),
			)
			continue
		}
		items = append(items, RepoItem{
			Name:      r.Name,
			LocalPath: r.LocalPath,
			Origin:    OriginClonedRemote,
			Cloned:    true,
		})
		clonedPaths = append(clonedPaths, r.LocalPath)
	}

	return items, clonedPaths, nil
}
