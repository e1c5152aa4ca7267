// Package metrics defines the Prometheus metrics for the StayFinder client.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics register with the default registry at import time; embedders that
// expose /metrics get them for free.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stayfinder"

// RequestsTotal counts API requests issued by the transport wrapper.
// Labels:
//   - method: HTTP method (GET, POST, ...)
//   - outcome: "ok" or the error kind ("timeout", "unauthorized", ...)
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of API requests, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// RequestErrorsTotal counts classified request failures.
// Label:
//   - kind: error kind ("unreachable", "timeout", "unauthorized", "validation",
//     "not_found", "server")
var RequestErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_errors_total",
		Help:      "Total number of failed API requests, by error kind.",
	},
	[]string{"kind"},
)

// RequestDuration measures wall-clock time of a single API request.
// Label:
//   - method: HTTP method
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of API requests from send to response decode.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// SessionClearsTotal counts forced session teardowns triggered by a 401
// response, as opposed to explicit logouts.
var SessionClearsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_clears_total",
		Help:      "Total number of sessions cleared after an unauthorized response.",
	},
)
