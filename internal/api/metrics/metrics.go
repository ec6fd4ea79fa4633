// Package metrics defines and registers all custom Prometheus metrics for the
// chat API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// init (promauto). Observe wires the event counters to the bus.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

const namespace = "chat"

// ── Event metrics ─────────────────────────────────────────────────────────────

// MessagesSentTotal counts stored messages.
var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of messages stored.",
	},
)

// StatusChangesTotal counts candidate status changes.
// Label:
//   - status: the status applied (e.g. "SELECTED")
var StatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_changes_total",
		Help:      "Total number of candidate status changes, by new status.",
	},
	[]string{"status"},
)

// ── Bulk metrics ──────────────────────────────────────────────────────────────

// BulkMessagesTotal counts bulk send outcomes.
// Label:
//   - outcome: "targeted" or "sent"
var BulkMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bulk_messages_total",
		Help:      "Candidates targeted and messages actually sent by bulk campaigns.",
	},
	[]string{"outcome"},
)

// BulkIncompleteTotal counts bulk sends that stopped before reaching every target.
var BulkIncompleteTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bulk_incomplete_total",
		Help:      "Total number of bulk sends that stopped on a failure.",
	},
)

// BulkStatusUpdatesTotal counts bulk status outcomes.
// Label:
//   - outcome: "updated" or "skipped"
var BulkStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bulk_status_updates_total",
		Help:      "Candidates updated or skipped by bulk status changes.",
	},
	[]string{"outcome"},
)

// ── Stream metrics ────────────────────────────────────────────────────────────

// StreamConnections tracks open websocket event streams.
var StreamConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stream_connections",
		Help:      "Current number of open event stream connections.",
	},
)

// StreamDroppedTotal counts events not delivered to a slow stream client.
var StreamDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stream_dropped_total",
		Help:      "Total number of events dropped because a stream client fell behind.",
	},
)

// Observe subscribes the event counters to sub. The returned func detaches them.
func Observe(sub ports.EventSubscriber) func() {
	offMsg := sub.Subscribe(domain.EventMessageSent, func(_ context.Context, _ domain.Event) {
		MessagesSentTotal.Inc()
	})
	offStatus := sub.Subscribe(domain.EventUserStatusChanged, func(_ context.Context, e domain.Event) {
		if ev, ok := e.(domain.UserStatusChanged); ok {
			StatusChangesTotal.WithLabelValues(string(ev.User.Status)).Inc()
		}
	})
	return func() {
		offMsg()
		offStatus()
	}
}
