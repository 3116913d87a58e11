// Package metrics defines all custom Prometheus metrics for the TaskFlow API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init and
// are exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskflow"

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts successfully created tasks.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)

// TasksUpdatedTotal counts successful completion toggles.
var TasksUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_updated_total",
		Help:      "Total number of task completion updates.",
	},
)

// TasksDeletedTotal counts successfully deleted tasks.
var TasksDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_deleted_total",
		Help:      "Total number of tasks deleted.",
	},
)

// ── Push channel metrics ──────────────────────────────────────────────────────

// ConnectionsActive tracks the current number of live WebSocket connections,
// authenticated or not.
var ConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections_active",
		Help:      "Current number of open WebSocket connections.",
	},
)

// EventsDeliveredTotal counts events delivered to individual connections.
// Label:
//   - kind: "taskCreated", "taskUpdated", or "taskDeleted"
var EventsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_events_delivered_total",
		Help:      "Total number of task events delivered over the push channel.",
	},
	[]string{"kind"},
)

// EventsDroppedTotal counts events that could not be written to a connection.
// The connection is evicted; the triggering mutation is unaffected.
var EventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_events_dropped_total",
		Help:      "Total number of push deliveries that failed and evicted their connection.",
	},
)
