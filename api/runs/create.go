package runs

import (
	"github.com/graphshift/graphshift/api/web"
	"github.com/graphshift/graphshift/domains/analysis"
	"github.com/graphshift/graphshift/domains/runs"
	"github.com/graphshift/graphshift/libs/gitrepo"
	"go.uber.org/zap"
)

// CreateRequest is the request body for enqueuing an analysis run
type CreateRequest struct {
	RepoPath   string `json:"repo_path,omitempty"`
	OrgName    string `json:"org_name,omitempty"`
	ToVersion  string `json:"to_version"`
	Scope      string `json:"scope"`
	MaxRepos   int    `json:"max_repos"`
	KeepClones bool   `json:"keep_clones"`
	Provider   string `json:"provider"`
}

// CreateResponse is the response for enqueuing an analysis run
type CreateResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// Create handles POST /v1/runs
func Create(c web.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return c.BadRequest("invalid request body")
	}

	if (req.RepoPath == "") == (req.OrgName == "") {
		return c.BadRequest("exactly one of repo_path and org_name is required")
	}
	if req.RepoPath != "" && !analysis.IsLocalPath(req.RepoPath) {
		if err := gitrepo.ValidateRepoURL(req.RepoPath); err != nil {
			return c.BadRequest(err.Error())
		}
	}

	applyDefaults(&req)

	ctx := c.Request().Context()

	run, err := runs.Create(ctx, runs.CreateParams{
		RepoPath:   req.RepoPath,
		OrgName:    req.OrgName,
		ToVersion:  req.ToVersion,
		Scope:      req.Scope,
		MaxRepos:   req.MaxRepos,
		KeepClones: req.KeepClones,
		Provider:   req.Provider,
	})
	if err != nil {
		c.L.Error("failed to enqueue run", zap.Error(err))
		return c.InternalError("failed to enqueue run")
	}

	c.L.Info("run enqueued",
		zap.Int64("id", run.ID),
		zap.String("repo_path", run.RepoPath),
		zap.String("org_name", run.OrgName),
	)

	return c.Created(CreateResponse{
		ID:     run.ID,
		Status: run.Status.String(),
	})
}

func applyDefaults(req *CreateRequest) {
	if req.ToVersion == "" {
		req.ToVersion = "21"
	}
	if req.Scope == "" {
		req.Scope = "all-deprecations"
	}
	if req.MaxRepos < 1 {
		req.MaxRepos = 50
	}
	if req.Provider == "" {
		req.Provider = "github"
	}
}
