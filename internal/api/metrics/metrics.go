// Package metrics defines and registers the custom Prometheus metrics of the
// registration API. All collectors are created with promauto and therefore
// land in the default registry served under /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventos"

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrosCreatedTotal counts successful registrations.
// Label:
//   - via: "vecino_id" or "documento", depending on the endpoint used
var RegistrosCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registros_created_total",
		Help:      "Total number of resident registrations created.",
	},
	[]string{"via"},
)

// RegistrosRejectedTotal counts registration attempts that did not produce a row.
// Label:
//   - reason: "already_registered", "resident_not_found", "event_not_found" or "error"
var RegistrosRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registros_rejected_total",
		Help:      "Total number of rejected registration attempts, by reason.",
	},
	[]string{"reason"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "inactive" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TogglesTotal counts activo flips.
var TogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "toggles_total",
		Help:      "Total number of activo toggles, by entity.",
	},
	[]string{"entidad"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks entries waiting in each dispatcher worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWritesTotal counts audit persistence outcomes.
// Label:
//   - result: "ok", "error" or "dropped" (worker channel full)
var AuditWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_writes_total",
		Help:      "Total number of audit entries handled by the dispatcher, by result.",
	},
	[]string{"result"},
)

// AuditWriteDuration measures a single audit insert.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of a single audit entry insert.",
		Buckets:   prometheus.DefBuckets,
	},
)
