package tableindex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/vectorindex/v1/logger"
	"github.com/Aleph-Alpha/vectorindex/v1/metrics"
	"github.com/Aleph-Alpha/vectorindex/v1/tracer"
	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// Operation names used for spans, logs and metrics.
const (
	OperationTopN    = "top_n"
	OperationTopNIDs = "top_n_ids"
)

// Index answers similarity queries against one table. It holds no mutable
// state after construction and is safe for concurrent use.
type Index struct {
	table   vectordb.Table
	model   vectordb.EmbeddingModel
	idField string
	params  vectordb.SearchParams
	filter  *vectordb.FilterSet

	logger  logger.Logger
	metrics metrics.SearchRecorder
	tracer  *tracer.Tracer
}

var _ vectordb.Index = (*Index)(nil)

// NewIndex builds an index over table. idField names the column holding each
// row's identifier. The schema is read once to warn about an id column that
// is missing or not a string; such rows still work and get fallback ids.
//
// Example:
//
//	params := vectordb.DefaultSearchParams().
//	    WithDistanceType(vectordb.DistanceCosine).
//	    WithSearchType(vectordb.SearchTypeApproximate).
//	    WithNprobes(20)
//	idx, err := tableindex.NewIndex(ctx, table, model, "id", params)
func NewIndex(ctx context.Context, table vectordb.Table, model vectordb.EmbeddingModel, idField string, params vectordb.SearchParams, opts ...Option) (*Index, error) {
	if table == nil {
		return nil, errors.New("tableindex: table is required")
	}
	if model == nil {
		return nil, errors.New("tableindex: embedding model is required")
	}
	if idField == "" {
		return nil, errors.New("tableindex: id field is required")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("tableindex: %w", err)
	}

	idx := &Index{
		table:   table,
		model:   model,
		idField: idField,
		params:  params,
		logger:  logger.NewNop(),
	}
	for _, opt := range opts {
		opt(idx)
	}

	schema, err := table.Schema(ctx)
	if err != nil {
		return nil, &vectordb.StoreError{Op: "schema", Err: err}
	}
	idx.checkSchema(schema)

	idx.logger.Info("vector index ready", nil, map[string]interface{}{
		"table":    table.Name(),
		"id_field": idField,
		"params":   params.String(),
	})
	return idx, nil
}

func (idx *Index) checkSchema(schema vectordb.Schema) {
	field, ok := schema.Field(idx.idField)
	switch {
	case !ok:
		idx.logger.Warn("id field not found in table schema, results will carry fallback ids", nil, map[string]interface{}{
			"table":    idx.table.Name(),
			"id_field": idx.idField,
		})
	case field.Type != vectordb.FieldTypeString:
		idx.logger.Warn("id field is not a string column, results will carry fallback ids", nil, map[string]interface{}{
			"table":    idx.table.Name(),
			"id_field": idx.idField,
			"type":     field.Type.String(),
		})
	}
}

// Params returns the search configuration the index was built with.
func (idx *Index) Params() vectordb.SearchParams { return idx.params }

// TopNRows returns up to n rows closest to query, in store order. Each row
// carries every non-vector column. The distance is read from the store's
// "_distance" column (0 when absent or not a number) and the id from the id
// field ("unknown<i>" when absent or not a string).
//
// Use vectordb.TopN to decode the rows into a typed payload.
func (idx *Index) TopNRows(ctx context.Context, query string, n int) (results []vectordb.RowResult, err error) {
	ctx, done := idx.begin(ctx, OperationTopN, n)
	defer func() { done(len(results), err) }()

	vec, err := idx.embed(ctx, query)
	if err != nil {
		return nil, err
	}

	schema, err := idx.table.Schema(ctx)
	if err != nil {
		return nil, &vectordb.StoreError{Op: "schema", Err: err}
	}

	q, err := idx.table.VectorSearch(vec)
	if err != nil {
		return nil, &vectordb.StoreError{Op: "vector search", Err: err}
	}
	q = q.Limit(clampLimit(n)).Select(schema.ScalarColumns()...)

	rows, err := idx.execute(ctx, q)
	if err != nil {
		return nil, err
	}

	results = make([]vectordb.RowResult, 0, len(rows))
	for i, row := range truncate(rows, n) {
		results = append(results, vectordb.RowResult{
			Score:   numberOrZero(row, vectordb.DistanceColumn),
			ID:      stringOr(row, idx.idField, fmt.Sprintf("unknown%d", i)),
			Payload: row,
		})
	}
	return results, nil
}

// TopNIDs returns up to n identifiers closest to query, in store order.
// Only the id field is fetched. The distance is read from the store's
// "distance" column (0 when absent or not a number) and the id is empty
// when absent or not a string.
func (idx *Index) TopNIDs(ctx context.Context, query string, n int) (results []vectordb.IDResult, err error) {
	ctx, done := idx.begin(ctx, OperationTopNIDs, n)
	defer func() { done(len(results), err) }()

	vec, err := idx.embed(ctx, query)
	if err != nil {
		return nil, err
	}

	q, err := idx.table.Query().Select(idx.idField).NearestTo(vec)
	if err != nil {
		return nil, &vectordb.StoreError{Op: "nearest to", Err: err}
	}
	q = q.Limit(clampLimit(n))

	rows, err := idx.execute(ctx, q)
	if err != nil {
		return nil, err
	}

	results = make([]vectordb.IDResult, 0, len(rows))
	for _, row := range truncate(rows, n) {
		results = append(results, vectordb.IDResult{
			Score: numberOrZero(row, vectordb.QueryDistanceColumn),
			ID:    stringOr(row, idx.idField, ""),
		})
	}
	return results, nil
}

func (idx *Index) embed(ctx context.Context, query string) ([]float32, error) {
	start := time.Now()
	emb, err := idx.model.EmbedText(ctx, query)
	if idx.metrics != nil {
		idx.metrics.ObserveEmbedding(time.Since(start))
	}
	if err != nil {
		return nil, &vectordb.EmbeddingError{Err: err}
	}
	return emb.Float32(), nil
}

func (idx *Index) execute(ctx context.Context, q *vectordb.VectorQuery) ([]vectordb.Row, error) {
	if idx.filter != nil {
		q = q.Where(idx.filter)
	}
	rows, err := vectordb.BuildQuery(q, idx.params).Execute(ctx)
	if err != nil {
		return nil, &vectordb.StoreError{Op: "execute", Err: err}
	}
	return rows, nil
}

// begin starts the span and timer of one search and returns the function
// that finishes both.
func (idx *Index) begin(ctx context.Context, operation string, n int) (context.Context, func(results int, err error)) {
	start := time.Now()

	var span trace.Span
	if idx.tracer != nil {
		ctx, span = idx.tracer.StartSpan(ctx, "vectorindex."+operation)
		idx.tracer.SetAttributes(span, map[string]interface{}{
			"vectorindex.table": idx.table.Name(),
			"vectorindex.limit": n,
		})
	}

	return ctx, func(results int, err error) {
		elapsed := time.Since(start)
		outcome := outcomeOf(err)

		if idx.metrics != nil {
			idx.metrics.ObserveSearch(operation, outcome, elapsed, results)
		}
		if span != nil {
			if err != nil {
				idx.tracer.RecordErrorOnSpan(span, err)
			} else {
				idx.tracer.SetAttributes(span, map[string]interface{}{"vectorindex.results": results})
			}
			span.End()
		}

		fields := map[string]interface{}{
			"operation":   operation,
			"table":       idx.table.Name(),
			"limit":       n,
			"results":     results,
			"duration_ms": elapsed.Milliseconds(),
		}
		if err != nil {
			idx.logger.ErrorWithContext(ctx, "vector search failed", err, fields)
			return
		}
		idx.logger.DebugWithContext(ctx, "vector search finished", nil, fields)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, vectordb.ErrEmbedding):
		return metrics.OutcomeEmbeddingError
	case errors.Is(err, vectordb.ErrDecode):
		return metrics.OutcomeDecodeError
	default:
		return metrics.OutcomeStoreError
	}
}
