package vectordb

import "context"

//go:generate mockgen -source=interface.go -destination=mock_interface.go -package=vectordb

// EmbeddingModel turns text into a vector. Implementations must be safe for
// concurrent use.
type EmbeddingModel interface {
	EmbedText(ctx context.Context, text string) (Embedding, error)
}

// Executor runs query plans against a concrete store. Every Table
// implementation is backed by one.
type Executor interface {
	Execute(ctx context.Context, plan QueryPlan) ([]Row, error)
}

// Table is a handle to a table-backed vector store. A Table is only a query
// factory; each query it returns is owned by one caller.
type Table interface {
	// Name identifies the table in logs and metrics.
	Name() string

	// Schema returns the table's columns.
	Schema(ctx context.Context) (Schema, error)

	// VectorSearch starts a typed nearest-neighbor query. Rows carry their
	// distance under DistanceColumn.
	VectorSearch(vector []float32) (*VectorQuery, error)

	// Query starts a plain query; NearestTo turns it into a nearest-neighbor
	// query whose rows carry their distance under QueryDistanceColumn.
	Query() *Query
}

// Index answers similarity queries for text.
//
// Example usage:
//
//	idx, err := tableindex.NewIndex(ctx, table, model, "id", vectordb.DefaultSearchParams())
//	if err != nil {
//	    return err
//	}
//	docs, err := vectordb.TopN[Document](ctx, idx, "how do I reset my password", 5)
type Index interface {
	// TopNRows returns up to n rows closest to query with their payload
	// columns, in store order.
	TopNRows(ctx context.Context, query string, n int) ([]RowResult, error)

	// TopNIDs returns up to n identifiers closest to query, in store order.
	TopNIDs(ctx context.Context, query string, n int) ([]IDResult, error)
}
