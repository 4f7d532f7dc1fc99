// Package metrics exposes the ledger's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ledger metrics
	DepositsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fxledger_deposits_total",
		Help: "Total number of successful deposits",
	})
	WithdrawalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fxledger_withdrawals_total",
		Help: "Total number of successful withdrawals",
	})
	LedgerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxledger_ledger_errors_total",
			Help: "Total ledger operation errors by kind",
		},
		[]string{"operation", "error_kind"},
	)

	// Exchange metrics
	ExchangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxledger_exchanges_total",
			Help: "Total number of successful currency exchanges by rate mode",
		},
		[]string{"mode"},
	)
	ExchangeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxledger_exchange_errors_total",
			Help: "Total exchange errors by kind",
		},
		[]string{"error_kind"},
	)
	ExchangeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fxledger_exchange_duration_seconds",
		Help:    "Duration of exchange operations",
		Buckets: prometheus.DefBuckets,
	})

	// Rate provider metrics
	RateFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fxledger_rate_fetch_duration_seconds",
			Help:    "Duration of exchange rate lookups by provider",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
	RateFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxledger_rate_fetch_errors_total",
			Help: "Total failed exchange rate fetches by provider",
		},
		[]string{"provider"},
	)

	// Seeding metrics
	AccountsSeeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fxledger_accounts_seeded_total",
		Help: "Total number of accounts created by the initial data loader",
	})
)
