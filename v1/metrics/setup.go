package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns an isolated Prometheus registry, the search metrics
// registered in it and the HTTP server exposing them at /metrics.
type Metrics struct {
	Server   *http.Server
	Registry *prometheus.Registry

	searchesTotal     *prometheus.CounterVec
	searchDuration    *prometheus.HistogramVec
	searchResults     *prometheus.HistogramVec
	embeddingDuration prometheus.Histogram
}

// resultBuckets covers typical top-n sizes.
var resultBuckets = []float64{0, 1, 5, 10, 25, 50, 100, 250}

// NewMetrics creates the registry, wraps it with a constant service label,
// registers the search metrics and builds the /metrics server.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "search-api"})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	m := &Metrics{
		Registry: registry,
		searchesTotal: createCounterVec(namespace, "searches_total",
			"Total number of similarity searches by operation and outcome", []string{"operation", "outcome"}),
		searchDuration: createHistogramVec(namespace, "search_duration_seconds",
			"Latency of similarity searches including embedding", []string{"operation"}, prometheus.DefBuckets),
		searchResults: createHistogramVec(namespace, "search_results",
			"Number of results returned by successful searches", []string{"operation"}, resultBuckets),
		embeddingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "embedding_duration_seconds",
			Help:      "Latency of embedding query text",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	wrapped.MustRegister(
		m.searchesTotal,
		m.searchDuration,
		m.searchResults,
		m.embeddingDuration,
	)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}

	m.Server = &http.Server{
		Addr:    address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	return m
}
