// Package metrics defines and registers the custom Prometheus metrics of the
// kinyozi API. It is the single source of truth for metric names, labels and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kinyozi"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts requests rejected by the auth gates.
// Labels:
//   - gate: "api_key", "shop" or "employee"
//   - reason: "missing", "invalid" or "expired"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the authentication gates.",
	},
	[]string{"gate", "reason"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - role: "shop" or "employee"
//   - result: "ok", "invalid_credentials", "password_not_set" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// MailDeliveriesTotal counts email send attempts.
// Labels:
//   - template: mail template name (e.g. "reset", "inventory")
//   - status: "sent" or "failed"
var MailDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_deliveries_total",
		Help:      "Total number of email delivery attempts, by template and status.",
	},
	[]string{"template", "status"},
)

// SMSDeliveriesTotal counts SMS send attempts.
// Label:
//   - status: "sent" or "failed"
var SMSDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sms_deliveries_total",
		Help:      "Total number of SMS delivery attempts, by status.",
	},
	[]string{"status"},
)

// ── Bridge metrics ────────────────────────────────────────────────────────────

// BridgeTokenRefreshTotal counts logins against the mobile app backend.
// Label:
//   - result: "ok" or "error"
var BridgeTokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bridge_token_refresh_total",
		Help:      "Total number of mobile app bearer token refreshes, by result.",
	},
	[]string{"result"},
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// DashboardDuration measures how long assembling a dashboard takes.
var DashboardDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dashboard_duration_seconds",
		Help:      "Duration of dashboard aggregation, including the reporting transaction.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Readiness metrics ─────────────────────────────────────────────────────────

// DependencyUp is 1 when the last readiness probe reached the dependency.
// Label:
//   - dependency: "postgres", "mongodb" or "redis"
var DependencyUp = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dependency_up",
		Help:      "Whether the last readiness probe reached the dependency (1) or not (0).",
	},
	[]string{"dependency"},
)
