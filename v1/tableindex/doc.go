// Package tableindex answers text similarity queries against a vector table.
//
// An Index embeds the query text with a vectordb.EmbeddingModel, runs a
// nearest-neighbour search on a vectordb.Table shaped by a fixed
// vectordb.SearchParams, and turns the rows into scored results.
//
// Two operations are offered:
//
//   - TopNRows returns the id, distance and every non-vector column of each
//     match. vectordb.TopN decodes those rows into a caller type.
//   - TopNIDs fetches only the id column.
//
// Basic usage:
//
//	table := memtable.New("docs", schema)
//	idx, err := tableindex.NewIndex(ctx, table, model, "id",
//	    vectordb.DefaultSearchParams().WithDistanceType(vectordb.DistanceCosine))
//	if err != nil {
//	    return err
//	}
//
//	hits, err := vectordb.TopN[Doc](ctx, idx, "how do vectors work", 5)
//
// Errors are one of *vectordb.EmbeddingError, *vectordb.StoreError or
// *vectordb.DecodeError and can be told apart with errors.Is against
// vectordb.ErrEmbedding, vectordb.ErrStore and vectordb.ErrDecode.
package tableindex
