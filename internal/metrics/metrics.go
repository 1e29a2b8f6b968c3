// Package metrics exposes Prometheus collectors for the urinfo service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	resolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urinfo_resolutions_total",
			Help: "Total number of URI resolutions, labeled by outcome.",
		},
		[]string{"outcome"},
	)

	resolutionDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "urinfo_resolution_duration_seconds",
			Help:    "Histogram of end-to-end resolution latencies (probe plus optional fetch).",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8},
		},
	)

	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urinfo_upstream_requests_total",
			Help: "Total number of outbound requests, labeled by method and result.",
		},
		[]string{"method", "result"},
	)

	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urinfo_cache_lookups_total",
			Help: "Total number of result cache lookups, labeled by result.",
		},
		[]string{"result"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests, labeled by method and code.",
		},
		[]string{"method", "code"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, labeled by method and route.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)
)

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveResolution records the outcome and latency of one resolution.
func ObserveResolution(outcome string, duration time.Duration) {
	resolutionsTotal.WithLabelValues(outcome).Inc()
	resolutionDurationSeconds.Observe(duration.Seconds())
}

// ObserveUpstream records one outbound request. result is a status class such as
// "4xx", or "error" for transport failures. Target hosts are caller supplied, so
// they are never used as a label.
func ObserveUpstream(method, result string) {
	upstreamRequestsTotal.WithLabelValues(method, result).Inc()
}

// ObserveCacheLookup records a result cache hit or miss.
func ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// StatusClass maps a status code to "2xx", "3xx" and so on.
func StatusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}
