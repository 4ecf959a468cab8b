package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ObserveSearch implements SearchRecorder.
// Example: m.ObserveSearch("top_n", metrics.OutcomeSuccess, time.Since(start), len(results))
func (m *Metrics) ObserveSearch(operation, outcome string, elapsed time.Duration, results int) {
	m.searchesTotal.WithLabelValues(operation, outcome).Inc()
	m.searchDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if outcome == OutcomeSuccess {
		m.searchResults.WithLabelValues(operation).Observe(float64(results))
	}
}

// ObserveEmbedding implements SearchRecorder.
func (m *Metrics) ObserveEmbedding(elapsed time.Duration) {
	m.embeddingDuration.Observe(elapsed.Seconds())
}

func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}
