// Package metrics registers the service's Prometheus collectors on the
// default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderCalls counts adapter invocations by provider and outcome
	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantdoc_provider_calls_total",
			Help: "Total number of provider invocations by outcome",
		},
		[]string{"provider", "outcome"},
	)

	// ProviderLatency observes how long each adapter took to settle
	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plantdoc_provider_latency_seconds",
			Help:    "Provider invocation latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"provider"},
	)

	// Analyses counts analyze requests by result
	Analyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantdoc_analyses_total",
			Help: "Total number of analysis requests by result",
		},
		[]string{"result"},
	)

	// ReportSeverity counts generated reports by severity
	ReportSeverity = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantdoc_report_severity_total",
			Help: "Generated reports by severity tier",
		},
		[]string{"severity"},
	)

	// WeatherCache counts weather cache lookups by hit or miss
	WeatherCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plantdoc_weather_cache_total",
			Help: "Weather cache lookups by result",
		},
		[]string{"result"},
	)
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Analysis result label values
const (
	ResultReport   = "report"
	ResultRejected = "rejected"
	ResultError    = "error"
)
