package runs

import (
	"github.com/graphshift/graphshift/api/web"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func Configure(e *echo.Echo, l *zap.Logger) {
	e.POST("/v1/runs", web.Wrap(Create, l))
	e.GET("/v1/runs", web.Wrap(List, l))
	e.GET("/v1/runs/:id", web.Wrap(Get, l))
}
