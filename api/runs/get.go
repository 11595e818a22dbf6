package runs

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/graphshift/graphshift/api/web"
	"github.com/graphshift/graphshift/domains/runs"
	"go.uber.org/zap"
)

// GetResponse is the full view of one run
type GetResponse struct {
	RunSummary
	Result  json.RawMessage `json:"result,omitempty"`
	Summary string          `json:"summary,omitempty"`
}

// Get handles GET /v1/runs/:id
func Get(c web.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.BadRequest("invalid run id")
	}

	ctx := c.Request().Context()

	run, err := runs.GetByID(ctx, id)
	if errors.Is(err, runs.ErrNotFound) {
		return c.NotFound("run not found")
	}
	if err != nil {
		c.L.Error("failed to get run", zap.Int64("id", id), zap.Error(err))
		return c.InternalError("failed to get run")
	}

	return c.OK(GetResponse{
		RunSummary: toSummary(run),
		Result:     json.RawMessage(run.Result),
		Summary:    run.Summary,
	})
}
