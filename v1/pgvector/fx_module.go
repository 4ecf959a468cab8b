package pgvector

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/vectorindex/v1/logger"
	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// FXModule is an fx module that provides the Postgres connection and a
// *Table over Config.Table, also exposed as vectordb.Table. It sets up
// lifecycle hooks that monitor the connection and close it on shutdown.
//
//	app := fx.New(
//	    fx.Supply(pgvector.NewConfig()),
//	    pgvector.FXModule,
//	)
var FXModule = fx.Module("pgvector",
	fx.Provide(
		NewPostgresClientWithDI,
		fx.Annotate(
			NewTableWithDI,
			fx.As(fx.Self()),
			fx.As(new(vectordb.Table)),
		),
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// PostgresParams groups the dependencies needed to create the connection.
type PostgresParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewPostgresClientWithDI connects using the injected Config.
func NewPostgresClientWithDI(params PostgresParams) (*Postgres, error) {
	return NewPostgres(params.Config, params.Logger)
}

// NewTableWithDI builds the table named by Config.Table.
func NewTableWithDI(params PostgresParams, pg *Postgres) (*Table, error) {
	return NewTable(pg, params.Config.Table, WithTableLogger(params.Logger))
}

// PostgresLifeCycleParams groups the dependencies for lifecycle management.
type PostgresLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Postgres  *Postgres
}

// RegisterPostgresLifecycle starts connection monitoring and automatic
// reconnection when the application starts, and stops both and closes the
// connection pool when it stops. A WaitGroup ensures the goroutines are
// done before the pool is closed.
func RegisterPostgresLifecycle(params PostgresLifeCycleParams) {
	wg := &sync.WaitGroup{}
	ctx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				params.Postgres.MonitorConnection(ctx)
			}()
			go func() {
				defer wg.Done()
				params.Postgres.RetryConnection(ctx)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			wg.Wait()
			return params.Postgres.Close()
		},
	})
}
