package tableindex

import (
	"github.com/Aleph-Alpha/vectorindex/v1/logger"
	"github.com/Aleph-Alpha/vectorindex/v1/metrics"
	"github.com/Aleph-Alpha/vectorindex/v1/tracer"
	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// Option customizes an Index.
type Option func(*Index)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logger.Logger) Option {
	return func(idx *Index) {
		if l != nil {
			idx.logger = l
		}
	}
}

// WithMetrics records every search with m.
func WithMetrics(m metrics.SearchRecorder) Option {
	return func(idx *Index) {
		idx.metrics = m
	}
}

// WithTracer wraps every search in a span.
func WithTracer(t *tracer.Tracer) Option {
	return func(idx *Index) {
		idx.tracer = t
	}
}

// WithFilter applies a scalar filter to every query. Whether it runs before
// or after the vector search follows the post-filter setting.
func WithFilter(f *vectordb.FilterSet) Option {
	return func(idx *Index) {
		if f.IsEmpty() {
			idx.filter = nil
			return
		}
		idx.filter = f
	}
}
