package tableindex

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/vectorindex/v1/logger"
	"github.com/Aleph-Alpha/vectorindex/v1/metrics"
	"github.com/Aleph-Alpha/vectorindex/v1/tracer"
	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// FXModule provides *Index and vectordb.Index. It needs a *Config, a
// vectordb.Table and a vectordb.EmbeddingModel in the container; a logger,
// metrics recorder and tracer are used when present.
//
//	app := fx.New(
//	    fx.Supply(tableindex.NewConfig()),
//	    logger.FXModule,
//	    embedding.FXModule,
//	    qdrant.FXModule,
//	    tableindex.FXModule,
//	)
var FXModule = fx.Module("tableindex",
	fx.Provide(
		fx.Annotate(
			NewIndexWithParams,
			fx.As(fx.Self()),
			fx.As(new(vectordb.Index)),
		),
	),
)

// IndexParams groups the dependencies of the index.
type IndexParams struct {
	fx.In

	Config  *Config
	Table   vectordb.Table
	Model   vectordb.EmbeddingModel
	Logger  logger.Logger          `optional:"true"`
	Metrics metrics.SearchRecorder `optional:"true"`
	Tracer  *tracer.Tracer         `optional:"true"`
}

// NewIndexWithParams builds the index from the container. The table schema
// is read once during construction.
func NewIndexWithParams(p IndexParams) (*Index, error) {
	params, err := p.Config.SearchParams()
	if err != nil {
		return nil, err
	}
	filter, err := p.Config.FilterSet()
	if err != nil {
		return nil, err
	}

	return NewIndex(context.Background(), p.Table, p.Model, p.Config.IDField, params,
		WithLogger(p.Logger),
		WithMetrics(p.Metrics),
		WithTracer(p.Tracer),
		WithFilter(filter),
	)
}
