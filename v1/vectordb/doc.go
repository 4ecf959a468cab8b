// Package vectordb provides the store-agnostic building blocks for vector
// similarity search over tables.
//
// # Overview
//
// A [Table] is a handle to a table-backed vector store (Qdrant, Postgres with
// pgvector, or the in-process memtable). Tables hand out nearest-neighbor
// queries ([VectorQuery]) that are refined fluently and finally executed by
// the store's [Executor]. An [Index] sits on top: it embeds query text with
// an [EmbeddingModel], builds the query and turns raw rows into ranked results.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                    Application Layer                        │
//	│        (vectordb.Index, vectordb.TopN[T] - no DB imports)   │
//	└──────────────────────────┬──────────────────────────────────┘
//	                           │
//	                           ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│                  tableindex.Index                           │
//	│   embed → VectorQuery → BuildQuery(SearchParams) → rows     │
//	└──────────────────────────┬──────────────────────────────────┘
//	                           │ vectordb.Table
//	        ┌──────────────────┼──────────────────┐
//	        ▼                  ▼                  ▼
//	┌───────────────┐  ┌───────────────┐  ┌───────────────┐
//	│ qdrant.Table  │  │pgvector.Table │  │memtable.Table │
//	└───────────────┘  └───────────────┘  └───────────────┘
//
// # Search Configuration
//
// [SearchParams] is an immutable value built with With* methods:
//
//	params := vectordb.DefaultSearchParams().
//	    WithDistanceType(vectordb.DistanceCosine).
//	    WithSearchType(vectordb.SearchTypeApproximate).
//	    WithNprobes(20).
//	    WithRefineFactor(4)
//
// [BuildQuery] applies it to a query in a fixed order. Flat search always
// bypasses the vector index, approximate search honours nprobes and the
// refine factor, and nothing else changes the query.
//
// # Results
//
// Rows come back as [Row] values keyed by column name. Typed payloads are
// decoded with [TopN]:
//
//	type Document struct {
//	    ID    string `json:"id"`
//	    Title string `json:"title"`
//	}
//
//	docs, err := vectordb.TopN[Document](ctx, idx, "vector databases", 5)
//
// # Filter Types
//
//	| Type                  | Description                  | SQL Equivalent                     |
//	|-----------------------|------------------------------|------------------------------------|
//	| MatchCondition        | Exact value match            | WHERE field = value                |
//	| MatchAnyCondition     | Value in set                 | WHERE field IN (...)               |
//	| MatchExceptCondition  | Value not in set             | WHERE field NOT IN (...)           |
//	| NumericRangeCondition | Numeric range                | WHERE field >= min AND field <= max|
//	| IsNullCondition       | Field is (not) null          | WHERE field IS [NOT] NULL          |
//
// Filters run before the vector search unless post filtering is enabled.
//
// # Errors
//
// Failures are reported as [*EmbeddingError], [*StoreError] or
// [*DecodeError]; match them with errors.As or with errors.Is against
// [ErrEmbedding], [ErrStore] and [ErrDecode].
package vectordb
