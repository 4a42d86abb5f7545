// Package metrics defines and registers all custom Prometheus metrics for
// the SafeRide Kids API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "saferide"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "rejected", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user registrations, by role.",
	},
	[]string{"role"},
)

// ChildOperationsTotal counts owner-scoped child operations.
// Labels:
//   - operation: "create", "list", "get", "update", "delete"
//   - result: "success" or "error"
var ChildOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "child_operations_total",
		Help:      "Total number of child record operations, by operation and result.",
	},
	[]string{"operation", "result"},
)
