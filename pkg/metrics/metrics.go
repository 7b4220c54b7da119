// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ramp"

var (
	// WalletValidations counts off-ramp wallet checks by outcome
	// (ok, insufficient_token, insufficient_gas, insufficient_combined, unverifiable, unsupported).
	WalletValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wallet_validations_total",
		Help:      "Off-ramp wallet validations by outcome.",
	}, []string{"token", "outcome"})

	// BalanceReadings counts oracle readings by result (known, unknown).
	// Transport-level latency and failures live in the upstream_* series.
	BalanceReadings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "balance_readings_total",
		Help:      "Balance oracle readings by token and result.",
	}, []string{"token", "result"})

	// Transitions counts lifecycle state changes.
	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transaction_transitions_total",
		Help:      "Transaction state transitions.",
	}, []string{"direction", "from", "to"})

	// AlertsCreated counts treasury alerts written by the monitor.
	AlertsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "treasury_alerts_created_total",
		Help:      "Treasury alerts created.",
	}, []string{"type", "severity"})

	// UpstreamFailures counts failed calls to external collaborators.
	UpstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_failures_total",
		Help:      "Failed calls to chain, gateway and price dependencies.",
	}, []string{"dependency"})

	// UpstreamDuration observes latency of external calls.
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_duration_seconds",
		Help:      "Latency of calls to external collaborators.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"dependency"})

	// MonitorRuns counts treasury monitor runs by result.
	MonitorRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "treasury_monitor_runs_total",
		Help:      "Treasury monitor runs by result.",
	}, []string{"result"})
)
