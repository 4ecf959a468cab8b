package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/vectorindex/v1/logger"
)

// FXModule provides *Tracer and flushes it on shutdown. Requires a
// tracer.Config and a logger.Logger in the container.
//
//	app := fx.New(
//	    fx.Supply(tracer.NewConfig()),
//	    logger.FXModule,
//	    tracer.FXModule,
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle shuts the tracer provider down when the
// application stops so pending spans reach the exporter.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down tracer", nil)
			return tracer.Shutdown(ctx)
		},
	})
}
