package health

import (
	"github.com/graphshift/graphshift/api/web"
	"github.com/graphshift/graphshift/config"
	"github.com/graphshift/graphshift/db"
	"github.com/graphshift/graphshift/domains/health"
)

// GetResponse is the health check response
type GetResponse struct {
	Status   string         `json:"status"`
	Database string         `json:"database"`
	Checks   []health.Check `json:"checks"`
}

// Get handles GET /v1/health
func Get(cfg *config.Config) web.HandlerFunc {
	return func(c web.Context) error {
		ctx := c.Request().Context()

		result := health.Perform(cfg)

		dbStatus := "ok"
		if err := db.Ping(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			result.Healthy = false
		}

		status := "ok"
		if !result.Healthy {
			status = "degraded"
		}

		return c.OK(GetResponse{
			Status:   status,
			Database: dbStatus,
			Checks:   result.Checks,
		})
	}
}
