// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "secure_api"
)

var (
	// RequestDuration measures the total time to serve a request
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent serving HTTP requests",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "status"},
	)

	// RequestsTotal counts served requests by method and status code
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	// AuthResults counts auth gate decisions
	AuthResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_results_total",
			Help:      "Total number of auth gate decisions",
		},
		[]string{"strategy", "result", "reason"},
	)

	// InjectionAlerts counts requests rejected by the injection detector
	InjectionAlerts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "injection_alerts_total",
			Help:      "Total number of requests rejected as injection attempts",
		},
		[]string{"method", "token"},
	)

	// HashDuration measures PBKDF2 derivation time
	HashDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hash_duration_seconds",
			Help:      "Time spent deriving password keys",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"operation"},
	)

	// HashInFlight tracks concurrent key derivations
	HashInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hash_in_flight",
			Help:      "Number of key derivations currently running",
		},
	)

	// AuditQueueDepth tracks entries waiting for the audit sink
	AuditQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "audit_queue_depth",
			Help:      "Number of audit entries waiting to be written",
		},
	)

	// SinkErrors counts failed or dropped audit writes by kind
	SinkErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      "Total number of audit entries that could not be written",
		},
		[]string{"kind", "reason"},
	)
)

// Label values
const (
	ResultAllow = "allow"
	ResultDeny  = "deny"

	ReasonSuccess       = "success"
	ReasonMissingHeader = "missing_header"
	ReasonInvalidToken  = "invalid_token"
	ReasonExpiredToken  = "expired_token"

	OperationHash   = "hash"
	OperationVerify = "verify"

	KindAccess   = "access"
	KindSecurity = "security"

	ReasonBufferFull  = "buffer_full"
	ReasonWriteFailed = "write_failed"
	ReasonClosed      = "closed"
)
