// Package metrics defines and registers the custom Prometheus metrics of
// the todo API. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todo"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts credential checks.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts access tokens refused by the auth middleware.
// Label:
//   - reason: "missing", "invalid_signature", "expired", "malformed" or "revoked"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of rejected access tokens, by reason.",
	},
	[]string{"reason"},
)

// AccessDeniedTotal counts guard refusals of authenticated callers.
// Label:
//   - guard: "admin"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests refused by an access guard.",
	},
	[]string{"guard"},
)

// ── Todo metrics ──────────────────────────────────────────────────────────────

// TodosCreatedTotal counts newly created todos.
var TodosCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_created_total",
		Help:      "Total number of todos created.",
	},
)

// TodosDeletedTotal counts deleted todos.
// Label:
//   - actor: "owner" or "admin"
var TodosDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_deleted_total",
		Help:      "Total number of todos deleted, by who deleted them.",
	},
	[]string{"actor"},
)
