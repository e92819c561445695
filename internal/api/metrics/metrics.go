// Package metrics defines and registers all custom Prometheus metrics for the
// order-intake service. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// Prometheus registry via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "intake"

// ── Intake metrics ────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts orders accepted through the web endpoint.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created from web submissions.",
	},
)

// SubmissionsRejectedTotal counts submissions rejected before an order was
// created.
// Label:
//   - reason: "bad_payload" or "bad_phone"
var SubmissionsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_rejected_total",
		Help:      "Total number of web submissions rejected, by reason.",
	},
	[]string{"reason"},
)

// SubmissionsDedupTotal counts duplicate-submission guard decisions.
// Label:
//   - result: "hit" (duplicate, swallowed) or "miss" (fresh submission)
var SubmissionsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_dedup_total",
		Help:      "Total number of duplicate-submission checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts per-recipient notification deliveries.
// Label:
//   - result: "sent" or "failed"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of per-recipient notification deliveries, by result.",
	},
	[]string{"result"},
)

// ── Bot metrics ───────────────────────────────────────────────────────────────

// CommandsTotal counts handled bot commands.
// Labels:
//   - command: the slash command without arguments (e.g. "grant")
//   - outcome: "ok", "denied", "invalid", "not_found", or "error"
var CommandsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bot_commands_total",
		Help:      "Total number of bot commands handled, by command and outcome.",
	},
	[]string{"command", "outcome"},
)

// CallbacksTotal counts handled inline-button callbacks.
// Labels:
//   - action: the parsed callback action (e.g. "order_status")
//   - outcome: "ok", "denied", "invalid", or "error"
var CallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bot_callbacks_total",
		Help:      "Total number of bot callbacks handled, by action and outcome.",
	},
	[]string{"action", "outcome"},
)
