// Package pgvector exposes a PostgreSQL table with pgvector columns as a
// vectordb.Table.
//
// Columns of type vector, halfvec and bit are vector columns. Searches rank
// with the pgvector operators <-> (L2), <=> (cosine), <#> (dot) and <~>
// (hamming, bit columns only) and report distances under the usual
// distance column: squared L2, cosine distance, 1 - a·b for dot, and the
// number of differing bits for hamming.
//
// Search settings map to session settings scoped to the search
// transaction: bypassing the index disables index scans, nprobes sets
// ivfflat.probes and hnsw.ef_search. A refine factor or a post-filter
// makes the search fetch candidates first and filter or re-rank them in an
// outer query.
//
// Basic usage:
//
//	pg, err := pgvector.NewPostgres(pgvector.NewConfig(), log)
//	if err != nil {
//		return err
//	}
//	defer pg.Close()
//
//	table, err := pgvector.NewTable(pg, "documents", pgvector.WithTableLogger(log))
//	if err != nil {
//		return err
//	}
//	idx, err := tableindex.NewIndex(ctx, table, model, "id", vectordb.DefaultSearchParams())
//
// Driver errors are translated with TranslateError into ErrTableNotFound,
// ErrColumnNotFound, ErrDimensionMismatch and ErrInvalidData, keeping the
// original error in the chain.
package pgvector
