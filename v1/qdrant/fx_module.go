package qdrant

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/vectorindex/v1/logger"
	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// FXModule provides *QdrantClient and a *Table over Config.Collection, also
// exposed as vectordb.Table. A *Config must be supplied; a logger.Logger is
// used when present.
//
//	app := fx.New(
//	    fx.Supply(qdrant.NewConfig()),
//	    qdrant.FXModule,
//	)
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewClientWithParams,
		fx.Annotate(
			NewTableWithParams,
			fx.As(fx.Self()),
			fx.As(new(vectordb.Table)),
		),
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// QdrantParams groups the dependencies of the client.
type QdrantParams struct {
	fx.In

	Config *Config
	Logger logger.Logger `optional:"true"`
}

// NewClientWithParams builds the client from the container.
func NewClientWithParams(p QdrantParams) (*QdrantClient, error) {
	return NewQdrantClient(p.Config, p.Logger)
}

// NewTableWithParams builds the table for the configured collection.
func NewTableWithParams(p QdrantParams, client *QdrantClient) (*Table, error) {
	return NewTable(client.Client(), p.Config.Collection,
		WithIDColumn(p.Config.IDColumn),
		WithTableLogger(p.Logger),
	)
}

// RegisterQdrantLifecycle closes the client when the application stops.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *QdrantClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
