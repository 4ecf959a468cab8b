// Package metrics exposes Prometheus metrics for similarity searches.
//
// Each service gets an isolated registry wrapped with a constant service
// label. The search metrics are:
//
//	<namespace>_searches_total{operation,outcome}
//	<namespace>_search_duration_seconds{operation}
//	<namespace>_search_results{operation}
//	<namespace>_embedding_duration_seconds
//
// where operation is "top_n" or "top_n_ids" and outcome is one of
// success, embedding_error, store_error or decode_error.
//
// Consumers depend on the [SearchRecorder] interface; [FXModule] provides it
// together with the concrete *[Metrics] and serves /metrics on Config.Address.
package metrics
