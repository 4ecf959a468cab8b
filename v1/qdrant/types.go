package qdrant

import "github.com/Aleph-Alpha/vectorindex/v1/vectordb"

// VectorConfig describes one vector of a collection. An empty Name declares
// the collection's single unnamed vector.
type VectorConfig struct {
	Name     string
	Size     uint64
	Distance vectordb.DistanceType
}

// Point is a record to upsert. ID is either an unsigned integer or a UUID.
// Vector sets the unnamed vector and Vectors the named ones; only one of
// them may be used.
type Point struct {
	ID      string
	Vector  []float32
	Vectors map[string][]float32
	Payload map[string]any
}

// Collection is a summary of a collection's state.
type Collection struct {
	Name    string
	Status  string
	Vectors uint64
	Points  uint64
	// VectorSizes maps vector column names to their dimension.
	VectorSizes map[string]int
}
