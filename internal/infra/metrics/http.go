package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(httpRequestsTotal, httpLatencyMs) }

var httpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method and status.",
	},
	[]string{"method", "status"},
)

var httpLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_latency_ms",
		Help:    "HTTP request latency distribution in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 3000},
	},
	[]string{"method"},
)

func ObserveHTTPRequest(method string, status int, latencyMs float64) {
	httpRequestsTotal.WithLabelValues(norm(method), strconv.Itoa(status)).Inc()
	httpLatencyMs.WithLabelValues(norm(method)).Observe(latencyMs)
}
