package metrics

import "time"

// Outcome labels for search metrics.
const (
	OutcomeSuccess        = "success"
	OutcomeEmbeddingError = "embedding_error"
	OutcomeStoreError     = "store_error"
	OutcomeDecodeError    = "decode_error"
)

// SearchRecorder records the outcome of one search call.
//
// This interface is implemented by the concrete *Metrics type.
type SearchRecorder interface {
	// ObserveSearch counts a search for operation with the given outcome,
	// records its latency and, on success, how many results it returned.
	ObserveSearch(operation, outcome string, elapsed time.Duration, results int)

	// ObserveEmbedding records how long embedding the query text took.
	ObserveEmbedding(elapsed time.Duration)
}
