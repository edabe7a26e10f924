// Package metrics holds the Prometheus collectors exported by the catalog service.
//
// Collectors are registered once on the default registry by InitMetrics and
// scraped through promhttp at /metrics:
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// HTTP collectors are fed by the request middleware; catalog collectors are fed
// by the book use cases.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP

	// HTTPRequestsTotal counts requests by method, route and status.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes request latency by method and route.
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress is the number of requests being served.
	HTTPRequestsInProgress prometheus.Gauge

	// HTTPRequestsThrottled counts requests rejected by the rate limiter.
	HTTPRequestsThrottled prometheus.Counter

	// Catalog

	// BookMutationsTotal counts create/update/delete attempts.
	// Labels: operation (create|update|delete), result (success|invalid|duplicate|not_found|error)
	BookMutationsTotal *prometheus.CounterVec

	// BookListDuration observes listing latency, including the count query.
	BookListDuration prometheus.Histogram

	// BookListResultSize observes how many rows a listing page returned.
	BookListResultSize prometheus.Histogram

	// Events

	// CatalogEventsPublishedTotal counts broker publishes.
	// Labels: routing_key, result (success|error|skipped)
	CatalogEventsPublishedTotal *prometheus.CounterVec
)

// InitMetrics registers every collector. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests.",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "HTTP requests currently being served.",
			},
		)

		HTTPRequestsThrottled = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "http_requests_throttled_total",
				Help: "HTTP requests rejected by the rate limiter.",
			},
		)

		BookMutationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_book_mutations_total",
				Help: "Book create/update/delete attempts by outcome.",
			},
			[]string{"operation", "result"},
		)

		BookListDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "catalog_book_list_duration_seconds",
				Help:    "Book listing latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		)

		BookListResultSize = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "catalog_book_list_result_size",
				Help:    "Rows returned per listing page.",
				Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
			},
		)

		CatalogEventsPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_events_published_total",
				Help: "Catalog events sent to the broker.",
			},
			[]string{"routing_key", "result"},
		)
	})
}

// IncCounter increments a counter.
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec increments a labelled counter.
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge increments a gauge.
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge decrements a gauge.
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogram records one observation.
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec records one labelled observation.
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}

// RecordMutation counts one book mutation outcome.
func RecordMutation(operation, result string) {
	InitMetrics()
	BookMutationsTotal.With(prometheus.Labels{"operation": operation, "result": result}).Inc()
}
