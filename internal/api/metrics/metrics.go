// Package metrics defines the custom Prometheus metrics for the Alzia
// storefront API. Metrics register with the default registry on package init
// through promauto and are served by the echo-contrib prometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "alzia"

// ── Access gate ───────────────────────────────────────────────────────────────

// GateDecisionsTotal counts gate outcomes on protected areas.
// Labels:
//   - area: "account", "admin" or "wholesale"
//   - decision: "allow", "login" or "unauthorized"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access gate decisions on protected areas.",
	},
	[]string{"area", "decision"},
)

// ── Virtual try-on ────────────────────────────────────────────────────────────

// TryOnJobsTotal counts try-on requests by outcome.
// Label:
//   - result: "success", "no_credits", "invalid" or "error"
var TryOnJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tryon_jobs_total",
		Help:      "Total number of virtual try-on requests, by result.",
	},
	[]string{"result"},
)

// TryOnDuration measures a try-on request from upload to stored result.
var TryOnDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tryon_duration_seconds",
		Help:      "Duration of virtual try-on requests.",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
	},
)

// ── Image tokens ──────────────────────────────────────────────────────────────

// ImageTokensIssuedTotal counts one-time image tokens handed out.
var ImageTokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_tokens_issued_total",
		Help:      "Total number of one-time image tokens issued.",
	},
)

// ImageTokensRedeemedTotal counts redemption attempts.
// Label:
//   - result: "ok", "invalid", "used", "expired" or "error"
var ImageTokensRedeemedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_tokens_redeemed_total",
		Help:      "Total number of image token redemption attempts, by result.",
	},
	[]string{"result"},
)

// ── Order events ──────────────────────────────────────────────────────────────

// OrderEventsProcessedTotal counts status events written to the audit trail.
// Label:
//   - status: the order status carried by the event
var OrderEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_events_processed_total",
		Help:      "Total number of order status events recorded.",
	},
	[]string{"status"},
)

// OrderEventsErrorsTotal counts events the dispatcher failed to record.
var OrderEventsErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_events_errors_total",
		Help:      "Total number of order status events that failed to record.",
	},
)

// OrderEventsDroppedTotal counts events published after the dispatcher stopped.
var OrderEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_events_dropped_total",
		Help:      "Total number of order status events dropped because the dispatcher was stopping.",
	},
)

// OrderEventsQueueDepth tracks pending events per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var OrderEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "order_events_queue_depth",
		Help:      "Current number of order events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Orders ────────────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts successful checkouts.
// Label:
//   - role: the buyer role ("normal" or "wholesaler")
var OrdersPlacedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed, by buyer role.",
	},
	[]string{"role"},
)
