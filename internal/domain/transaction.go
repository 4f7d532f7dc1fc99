package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a history row.
type TransactionType string

const (
	TransactionCredit   TransactionType = "CREDIT"
	TransactionDebit    TransactionType = "DEBIT"
	TransactionExchange TransactionType = "EXCHANGE"
)

// Transaction records one balance mutation for audit/history purposes.
// An exchange produces two rows, one per leg.
type Transaction struct {
	ID        string
	AccountID string
	Type      TransactionType
	Currency  Currency
	Amount    decimal.Decimal
	CreatedBy string
	CreatedAt time.Time
}
