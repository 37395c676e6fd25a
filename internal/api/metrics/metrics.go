// Package metrics defines the custom Prometheus metrics of the camp API. It
// is the single source of truth for metric names, labels and help strings.
//
// Metrics register with the default registry on import through promauto, so
// they are exposed by the /metrics handler without further setup.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "camp"

// ── Gate metrics ──────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests refused by the auth gate.
// Label:
//   - reason: "missing_token", "malformed_token", "invalid_token" or "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the auth gate, by reason.",
	},
	[]string{"reason"},
)

// TokensIssuedTotal counts access tokens handed out by POST /jwt.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of access tokens issued.",
	},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentIntentsTotal counts payment intent attempts.
// Label:
//   - result: "created", "invalid_amount" or "provider_error"
var PaymentIntentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_total",
		Help:      "Total number of payment intent requests, by result.",
	},
	[]string{"result"},
)

// PaymentsRecordedTotal counts payment records.
// Label:
//   - result: "recorded", "duplicate" or "error"
var PaymentsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of payment record attempts, by result.",
	},
	[]string{"result"},
)

// ── Enrollment metrics ────────────────────────────────────────────────────────

// EnrollmentsProcessedTotal counts seats successfully taken.
var EnrollmentsProcessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_processed_total",
		Help:      "Total number of enrollments applied to class seat counters.",
	},
)

// EnrollmentsErrorsTotal counts enrollments that could not be applied.
// Label:
//   - reason: "class_full", "class_not_found", "invalid_id" or "update_failed"
var EnrollmentsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_errors_total",
		Help:      "Total number of enrollments that failed, by reason.",
	},
	[]string{"reason"},
)

// EnrollmentsDroppedTotal counts enrollments abandoned because the caller's
// context ended while the worker channel was full.
var EnrollmentsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_dropped_total",
		Help:      "Total number of enrollments dropped before reaching a worker.",
	},
)

// EnrollmentQueueDepth tracks the enrollments waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var EnrollmentQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "enrollment_queue_depth",
		Help:      "Current number of enrollments pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EnrollmentProcessingDuration measures a single enrollment from dequeue to
// store acknowledgement.
// Label:
//   - result: "ok" or "error"
var EnrollmentProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "enrollment_processing_duration_seconds",
		Help:      "Duration of enrollment processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
