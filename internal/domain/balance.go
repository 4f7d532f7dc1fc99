package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the amount an account holds in one specific currency.
// There is at most one Balance per (account, currency) pair.
type Balance struct {
	ID             string
	AccountID      string
	Currency       Currency
	Amount         decimal.Decimal
	CreatedBy      string
	CreatedAt      time.Time
	LastModifiedBy string
	LastModifiedAt time.Time
}

// CanDebit reports whether the balance covers the amount. An amount equal
// to the balance is allowed and leaves the balance at exactly zero.
func (b *Balance) CanDebit(amount decimal.Decimal) bool {
	return b.Amount.GreaterThanOrEqual(amount)
}

// ValidateDebit checks that debiting amount would not drive the balance
// negative.
func (b *Balance) ValidateDebit(amount decimal.Decimal) error {
	if !b.CanDebit(amount) {
		return ErrInsufficientBalance
	}

	return nil
}

// ApplyDebit returns the balance amount after a debit.
func (b *Balance) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return b.Amount.Sub(amount)
}

// ApplyCredit returns the balance amount after a credit.
func (b *Balance) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return b.Amount.Add(amount)
}

// DisplayAmount is the amount rounded half-up to two decimal places.
// Stored amounts keep full precision; rounding happens only here, at the
// reporting boundary.
func (b *Balance) DisplayAmount() decimal.Decimal {
	return b.Amount.Round(2)
}
