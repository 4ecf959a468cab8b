// Package memtable is an in-process vectordb.Table.
//
// Rows live in memory and every search is an exact brute-force scan, which
// makes the table suitable for tests, small corpora and embedded use:
//
//	table := memtable.New("docs", vectordb.NewSchema(
//	    vectordb.Field{Name: "id", Type: vectordb.FieldTypeString},
//	    vectordb.Field{Name: "title", Type: vectordb.FieldTypeString},
//	    vectordb.Field{Name: "vector", Type: vectordb.FieldTypeVector, Dimension: 3},
//	))
//	err := table.Add(map[string]any{"id": "a", "title": "Intro", "vector": []float32{1, 0, 0}})
//
// Distances come from vecgo's distance package: squared L2, cosine
// distance, 1 - dot product and the hamming distance of the sign bits. A
// vector column declared without a dimension takes the length of its first
// vector. Plans are recorded and can be read back with [Table.Plans].
package memtable
