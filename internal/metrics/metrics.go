// Package metrics exposes the service's Prometheus collectors. A nil *Metrics
// is valid and records nothing, so commands and middleware can be built
// without a registry in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vibefeed"

var latencyBuckets = []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5}

type Metrics struct {
	registry *prometheus.Registry

	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	rateLimitDecisions *prometheus.CounterVec
	similarityQueries  *prometheus.CounterVec
	similarityDuration *prometheus.HistogramVec
	feedStreams        *prometheus.CounterVec
	feedItems          prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route, method and status code.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   latencyBuckets,
		}, []string{"route"}),
		rateLimitDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_decisions_total",
			Help:      "Rate limiter admissions and rejections.",
		}, []string{"decision"}),
		similarityQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "similarity_queries_total",
			Help:      "Similarity queries by facet and outcome.",
		}, []string{"facet", "outcome"}),
		similarityDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "similarity_query_duration_seconds",
			Help:      "Similarity query latency in seconds, including the source embedding fetch.",
			Buckets:   latencyBuckets,
		}, []string{"facet"}),
		feedStreams: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_streams_total",
			Help:      "Feed candidate streams by kind and outcome.",
		}, []string{"kind", "outcome"}),
		feedItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_page_items",
			Help:      "Number of items returned per feed page.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.rateLimitDecisions,
		m.similarityQueries,
		m.similarityDuration,
		m.feedStreams,
		m.feedItems,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveRateLimitDecision(allowed bool) {
	if m == nil {
		return
	}
	decision := "rejected"
	if allowed {
		decision = "admitted"
	}
	m.rateLimitDecisions.WithLabelValues(decision).Inc()
}

func (m *Metrics) ObserveSimilarityQuery(facet, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.similarityQueries.WithLabelValues(facet, outcome).Inc()
	m.similarityDuration.WithLabelValues(facet).Observe(duration.Seconds())
}

func (m *Metrics) ObserveFeedStream(kind, outcome string) {
	if m == nil {
		return
	}
	m.feedStreams.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObserveFeedPage(items int) {
	if m == nil {
		return
	}
	m.feedItems.Observe(float64(items))
}
