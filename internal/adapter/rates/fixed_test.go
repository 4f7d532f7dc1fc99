package rates

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
)

func TestFixedRateTable_Rate(t *testing.T) {
	table := NewFixedRateTable(DefaultFixedRates())

	tests := []struct {
		name    string
		from    domain.Currency
		to      domain.Currency
		want    string
		wantErr bool
	}{
		{"usd to eur", domain.USD, domain.EUR, "0.91", false},
		{"eur to usd is not the reciprocal", domain.EUR, domain.USD, "1.10", false},
		{"sek to krw", domain.SEK, domain.KRW, "126.19", false},
		{"identity", domain.EUR, domain.EUR, "1", false},
		{"identity outside the table", domain.JPY, domain.JPY, "1", false},
		{"missing pair", domain.EUR, domain.JPY, "", true},
		{"unknown base", domain.GBP, domain.EUR, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := table.Rate(context.Background(), tt.from, tt.to)

			if tt.wantErr {
				if !errors.Is(err, domain.ErrRateUnavailable) {
					t.Fatalf("expected ErrRateUnavailable, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !rate.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Rate(%s, %s) = %s, want %s", tt.from, tt.to, rate, tt.want)
			}
		})
	}
}

func TestFixedRateTable_NonPositiveRate(t *testing.T) {
	table := NewFixedRateTable(RateTable{
		domain.EUR: {
			domain.USD: decimal.Zero,
			domain.SEK: decimal.RequireFromString("-1"),
		},
	})

	if _, err := table.Rate(context.Background(), domain.EUR, domain.USD); !errors.Is(err, domain.ErrRateUnavailable) {
		t.Errorf("expected ErrRateUnavailable for zero rate, got %v", err)
	}

	if _, err := table.Rate(context.Background(), domain.EUR, domain.SEK); !errors.Is(err, domain.ErrRateUnavailable) {
		t.Errorf("expected ErrRateUnavailable for negative rate, got %v", err)
	}
}
