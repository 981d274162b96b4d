// Package metrics defines and registers all custom Prometheus metrics for the
// FocusFlow API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package init
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "focusflow"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionStartsTotal counts focus sessions actually started.
// Label:
//   - tier: the caller's subscription tier ("free", "pro", "team", "enterprise")
var SessionStartsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_starts_total",
		Help:      "Total number of focus sessions started, by subscription tier.",
	},
	[]string{"tier"},
)

// SessionStartsBlockedTotal counts start attempts refused by the gate.
// Label:
//   - reason: short description of the refusal (e.g. "quota_exceeded")
var SessionStartsBlockedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_starts_blocked_total",
		Help:      "Total number of session start attempts blocked by the limit gate.",
	},
	[]string{"reason"},
)

// SessionsCompletedTotal counts sessions that reached the completed state.
var SessionsCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_completed_total",
		Help:      "Total number of focus sessions completed.",
	},
)

// QuotaChecksTotal counts gate decisions.
// Label:
//   - result: "allowed", "blocked" or "error"
var QuotaChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_checks_total",
		Help:      "Total number of session-limit gate checks, labelled by result.",
	},
	[]string{"result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsPostedTotal counts ledger entries created.
// Label:
//   - severity: "info", "success", "warning" or "error"
var NotificationsPostedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_posted_total",
		Help:      "Total number of notifications posted to the ledger, by severity.",
	},
	[]string{"severity"},
)

// NotificationQueueDepth tracks pending events per dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Coach metrics ─────────────────────────────────────────────────────────────

// CoachRequestsTotal counts AI coach requests.
// Label:
//   - result: "ok", "fallback" or "empty"
var CoachRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "coach_requests_total",
		Help:      "Total number of AI coach chat requests, labelled by result.",
	},
	[]string{"result"},
)

// CoachRequestDuration measures upstream model latency per request.
var CoachRequestDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "coach_request_duration_seconds",
		Help:      "Duration of upstream generative model calls.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
