// Package rates provides the exchange rate sources: a statically
// configured table and a client for the remote rate API. Both satisfy
// usecase.RateProvider.
package rates

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/infrastructure/metrics"
)

// RateTable is a directed (from, to) -> rate mapping. Entries are
// independent in each direction: table[A][B] is not required to be the
// reciprocal of table[B][A].
type RateTable map[domain.Currency]map[domain.Currency]decimal.Decimal

// FixedRateTable resolves rates from an in-memory table populated at
// startup.
type FixedRateTable struct {
	table RateTable
}

// NewFixedRateTable creates a FixedRateTable over the given table.
func NewFixedRateTable(table RateTable) *FixedRateTable {
	return &FixedRateTable{table: table}
}

// Rate returns the configured rate for the pair. The identity pair is
// always 1. A missing or non-positive entry is ErrRateUnavailable.
func (t *FixedRateTable) Rate(_ context.Context, from, to domain.Currency) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	rate, ok := t.table[from][to]
	if !ok || !rate.IsPositive() {
		metrics.RateFetchErrors.WithLabelValues("fixed").Inc()
		return decimal.Zero, fmt.Errorf("%w: no fixed rate for %s -> %s", domain.ErrRateUnavailable, from, to)
	}

	return rate, nil
}

// DefaultFixedRates returns the built-in rate table.
func DefaultFixedRates() RateTable {
	return RateTable{
		domain.EUR: {
			domain.USD: decimal.RequireFromString("1.10"),
			domain.SEK: decimal.RequireFromString("11.50"),
			domain.RUB: decimal.RequireFromString("95.00"),
			domain.KRW: decimal.RequireFromString("1450.00"),
		},
		domain.USD: {
			domain.EUR: decimal.RequireFromString("0.91"),
			domain.SEK: decimal.RequireFromString("10.45"),
			domain.RUB: decimal.RequireFromString("86.36"),
			domain.KRW: decimal.RequireFromString("1318.18"),
		},
		domain.SEK: {
			domain.EUR: decimal.RequireFromString("0.087"),
			domain.USD: decimal.RequireFromString("0.096"),
			domain.RUB: decimal.RequireFromString("8.27"),
			domain.KRW: decimal.RequireFromString("126.19"),
		},
		domain.RUB: {
			domain.EUR: decimal.RequireFromString("0.0105"),
			domain.USD: decimal.RequireFromString("0.0116"),
			domain.SEK: decimal.RequireFromString("0.121"),
			domain.KRW: decimal.RequireFromString("15.25"),
		},
		domain.KRW: {
			domain.EUR: decimal.RequireFromString("0.00069"),
			domain.USD: decimal.RequireFromString("0.00076"),
			domain.SEK: decimal.RequireFromString("0.0079"),
			domain.RUB: decimal.RequireFromString("0.066"),
		},
	}
}
