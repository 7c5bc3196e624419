package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "humanize_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// RewriteDuration tracks upstream rewrite latency per provider.
	RewriteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "humanize_rewrite_duration_seconds",
		Help:    "Time spent on a rewrite, including the upstream call.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"provider"})

	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "humanize_input_chars",
		Help:    "Number of characters in rewrite input text.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	// RewriteFailures counts failed rewrites by error kind.
	RewriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "humanize_rewrite_failures_total",
		Help: "Failed rewrites by error kind.",
	}, []string{"kind"})

	// ProviderReady is 1 when the active provider has its credential, 0 otherwise.
	ProviderReady = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "humanize_provider_ready",
		Help: "Whether the configured provider is usable (1) or not (0).",
	}, []string{"provider"})
)
