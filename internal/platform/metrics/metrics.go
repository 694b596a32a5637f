// Package metrics exposes the Prometheus instruments for the ledger core.
// Everything is registered on the default registry and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReferencesAllocated counts sequence references handed out, per prefix.
	ReferencesAllocated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "erp",
		Subsystem: "ledger",
		Name:      "references_allocated_total",
		Help:      "Number of sequence references allocated, by prefix.",
	}, []string{"prefix"})

	// EntriesPosted counts journal entries that reached POSTED.
	EntriesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "erp",
		Subsystem: "ledger",
		Name:      "journal_entries_posted_total",
		Help:      "Number of journal entries posted.",
	})

	// TransactionsApproved counts standalone transactions that reached APPROVED.
	TransactionsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "erp",
		Subsystem: "ledger",
		Name:      "transactions_approved_total",
		Help:      "Number of standalone transactions approved.",
	})

	// BalanceRecomputes counts explicit recompute-from-history runs, by outcome.
	BalanceRecomputes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "erp",
		Subsystem: "ledger",
		Name:      "balance_recomputes_total",
		Help:      "Number of account balance recomputations, by outcome.",
	}, []string{"outcome"})

	// LockTimeouts counts row-lock acquisitions that hit lock_timeout, by operation.
	LockTimeouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "erp",
		Subsystem: "ledger",
		Name:      "lock_timeouts_total",
		Help:      "Number of operations aborted by a row lock timeout.",
	}, []string{"operation"})

	// RequestDuration observes HTTP request latency, by method, route and status.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "erp",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
