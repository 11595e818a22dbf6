package health

import (
	"github.com/graphshift/graphshift/api/web"
	"github.com/graphshift/graphshift/config"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func Configure(e *echo.Echo, cfg *config.Config, l *zap.Logger) {
	e.GET("/v1/health", web.Wrap(Get(cfg), l))
}
