package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

func TestRandomBalanceGenerator_Currency(t *testing.T) {
	gen := usecase.NewRandomBalanceGenerator(testCurrencies(t))

	exclude := []domain.Currency{domain.EUR, domain.USD, domain.SEK, domain.RUB, domain.GBP, domain.JPY, domain.CNY}

	for range 50 {
		got := gen.Currency(exclude)
		if got != domain.KRW {
			t.Fatalf("Currency with all but KRW excluded = %s", got)
		}
	}
}

func TestRandomBalanceGenerator_Amount(t *testing.T) {
	gen := usecase.NewRandomBalanceGenerator(testCurrencies(t))

	ceilings := map[domain.Currency]int64{
		domain.EUR: 1_000,
		domain.SEK: 10_000,
		domain.RUB: 100_000,
		domain.JPY: 1_000_000,
		domain.KRW: 1_000_000,
	}

	for currency, ceiling := range ceilings {
		max := decimal.NewFromInt(ceiling)

		for range 50 {
			amount := gen.Amount(currency)

			if !amount.IsPositive() {
				t.Fatalf("%s amount %s is not positive", currency, amount)
			}
			if amount.GreaterThan(max) {
				t.Fatalf("%s amount %s exceeds ceiling %s", currency, amount, max)
			}
			if amount.Exponent() < -2 {
				t.Fatalf("%s amount %s has more than two decimal places", currency, amount)
			}
		}
	}
}
