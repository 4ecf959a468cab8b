// Package qdrant exposes a Qdrant collection as a vectordb.Table.
//
// The package wraps the official Qdrant Go client with a health-checked
// connection, collection bootstrapping and a Table that executes vectordb
// query plans as QueryPoints requests.
//
// # Core Features
//
//   - Managed client lifecycle with Fx integration
//   - Config struct with environment loading and builder helpers
//   - Health check on client initialization
//   - Collection creation and batched point upserts
//   - Table with schema discovery, named vectors, native pre-filtering and
//     client-side post-filtering
//
// # Basic Usage
//
//	client, err := qdrant.NewQdrantClient(qdrant.FromEndpoint("localhost").WithCollection("documents"), log)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.EnsureCollection(ctx, "documents", qdrant.VectorConfig{
//	    Size:     1024,
//	    Distance: vectordb.DistanceCosine,
//	})
//
//	table, err := qdrant.NewTable(client.Client(), "documents")
//	idx, err := tableindex.NewIndex(ctx, table, model, "id", vectordb.DefaultSearchParams())
//
// # Query Mapping
//
// Plan settings translate to Qdrant as follows:
//
//   - BypassIndex sets exact search
//   - Nprobes sets hnsw_ef
//   - RefineFactor enables quantization rescoring with that oversampling
//   - Column selects a named vector
//   - a pre-filter becomes a native filter, a post-filter runs on the
//     returned points
//
// The metric is fixed per collection. A requested distance type that does
// not match it is logged and the collection metric is used.
//
// # Distances
//
// Qdrant scores are turned into distances where smaller is closer: squared
// Euclidean distance, 1 - cosine similarity and 1 - dot product.
//
// # Point IDs
//
// Point ids are exposed as strings under the id column ("id" by default).
// Numeric ids are rendered in decimal.
//
// # Fx Integration
//
//	app := fx.New(
//	    fx.Supply(qdrant.NewConfig()),
//	    logger.FXModule,
//	    qdrant.FXModule,
//	)
package qdrant
