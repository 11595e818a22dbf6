package main

import (
	"flag"

	"github.com/graphshift/graphshift/api"
	"github.com/graphshift/graphshift/config"
	"github.com/graphshift/graphshift/db"
	"github.com/graphshift/graphshift/domains/runs"
	"github.com/graphshift/graphshift/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "configuration file path")
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*config.Config, error) { return config.Load(*configPath) },
			logger.New,
		),
		fx.Decorate(func(l *zap.Logger) *zap.Logger {
			return l.With(zap.String("service", "graphshift"))
		}),
		fx.Invoke(
			db.Init,
			runs.StartWorker,
			api.Run,
		),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{
				Logger: l,
			}
		}),
	).Run()
}
