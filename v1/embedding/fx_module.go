package embedding

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// FXModule wires the embedding client into Fx.
//
// It provides:
//   - *Config                 (NewConfig)
//   - *Client                 (NewClient)
//   - vectordb.EmbeddingModel (the same *Client)
var FXModule = fx.Module(
	"embedding",

	fx.Provide(
		NewConfig,
		fx.Annotate(
			NewClient,
			fx.As(fx.Self()),
			fx.As(new(vectordb.EmbeddingModel)),
		),
	),

	fx.Invoke(RegisterEmbeddingLifecycle),
)

// RegisterEmbeddingLifecycle closes the client on application shutdown.
func RegisterEmbeddingLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
