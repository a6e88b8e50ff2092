// Package metrics defines and registers all custom Prometheus metrics for
// the identity service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at import time (promauto); the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts successful authentications.
// Labels:
//   - auth_type: "wallet" or "anonymous"
//   - new_user: "true" when the call created the account
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful authentications.",
	},
	[]string{"auth_type", "new_user"},
)

// ConflictsTotal counts rejected requests by conflict kind
// (e.g. "USERNAME_ALREADY_EXISTS").
var ConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conflicts_total",
		Help:      "Total number of requests rejected with an identity conflict.",
	},
	[]string{"kind"},
)

// AuthenticateDuration measures end-to-end authenticate latency.
// Label:
//   - outcome: "ok", "conflict", or "error"
var AuthenticateDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "authenticate_duration_seconds",
		Help:      "Duration of authenticate calls from request to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// ── Binding metrics ───────────────────────────────────────────────────────────

// WalletLinksTotal counts successful explicit wallet links.
var WalletLinksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wallet_links_total",
		Help:      "Total number of wallets attached through the explicit link operation.",
	},
)

// RenamesTotal counts successful username renames.
var RenamesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "renames_total",
		Help:      "Total number of successful username renames.",
	},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditQueueDepth tracks events waiting in each dispatcher worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts audit events dropped because a shard was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit events dropped due to a full worker queue.",
	},
)
