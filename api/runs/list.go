package runs

import (
	"strconv"

	"github.com/graphshift/graphshift/api/web"
	"github.com/graphshift/graphshift/domains/runs"
	"go.uber.org/zap"
)

// ListResponse is the response for listing runs
type ListResponse struct {
	Runs  []RunSummary `json:"runs"`
	Total int64        `json:"total"`
}

// RunSummary is a summary of one run
type RunSummary struct {
	ID            int64  `json:"id"`
	RepoPath      string `json:"repo_path,omitempty"`
	OrgName       string `json:"org_name,omitempty"`
	ToVersion     string `json:"to_version"`
	Scope         string `json:"scope"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
	TotalIssues   int    `json:"total_issues"`
	ReposAnalyzed int    `json:"repos_analyzed"`
	Created       int64  `json:"created"`
	Updated       int64  `json:"updated"`
}

// List handles GET /v1/runs
func List(c web.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	params := runs.ListParams{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if status := c.QueryParam("status"); status != "" {
		s := runs.Status(status)
		params.Status = &s
	}

	result, err := runs.List(ctx, params)
	if err != nil {
		c.L.Error("failed to list runs", zap.Error(err))
		return c.InternalError("failed to list runs")
	}

	summaries := make([]RunSummary, len(result.Runs))
	for i := range result.Runs {
		summaries[i] = toSummary(&result.Runs[i])
	}

	return c.OK(ListResponse{
		Runs:  summaries,
		Total: result.Total,
	})
}

func toSummary(run *runs.Run) RunSummary {
	return RunSummary{
		ID:            run.ID,
		RepoPath:      run.RepoPath,
		OrgName:       run.OrgName,
		ToVersion:     run.ToVersion,
		Scope:         run.Scope,
		Status:        run.Status.String(),
		Error:         run.Error,
		TotalIssues:   run.TotalIssues,
		ReposAnalyzed: run.ReposAnalyzed,
		Created:       run.Created,
		Updated:       run.Updated,
	}
}
