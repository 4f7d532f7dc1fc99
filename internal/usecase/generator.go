package usecase

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
)

// RandomBalanceGenerator produces random currencies and plausible amounts
// for demo seeding. Amount magnitude scales with the currency so that JPY
// or KRW balances look like JPY or KRW balances.
type RandomBalanceGenerator struct {
	currencies *domain.CurrencySet
}

// NewRandomBalanceGenerator creates a generator over the supported set.
func NewRandomBalanceGenerator(currencies *domain.CurrencySet) *RandomBalanceGenerator {
	return &RandomBalanceGenerator{currencies: currencies}
}

// Currency picks a random supported currency not in the exclude list.
func (g *RandomBalanceGenerator) Currency(exclude []domain.Currency) domain.Currency {
	all := g.currencies.All()

	for {
		candidate := all[rand.IntN(len(all))]

		excluded := false
		for _, c := range exclude {
			if candidate == c {
				excluded = true
				break
			}
		}

		if !excluded {
			return candidate
		}
	}
}

// Amount generates a random balance amount for the currency, rounded to
// two decimal places.
func (g *RandomBalanceGenerator) Amount(currency domain.Currency) decimal.Decimal {
	var ceiling int64

	switch currency {
	case domain.SEK:
		ceiling = 10_000
	case domain.RUB:
		ceiling = 100_000
	case domain.JPY, domain.KRW:
		ceiling = 1_000_000
	default:
		ceiling = 1_000
	}

	return decimal.NewFromInt(ceiling).
		Mul(decimal.NewFromInt(int64(rand.IntN(10_000) + 1))).
		Div(decimal.NewFromInt(10_000)).
		Round(2)
}
