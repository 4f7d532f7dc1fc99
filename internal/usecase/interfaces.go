package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	Count(ctx context.Context) (int64, error)
}

// BalanceRepository defines data access for per-currency account balances.
// There is at most one row per (account, currency) pair.
type BalanceRepository interface {
	Create(ctx context.Context, tx Transaction, balance *domain.Balance) error
	GetByAccountAndCurrency(ctx context.Context, accountID string, currency domain.Currency) (*domain.Balance, error)
	// GetForUpdate locks the balance row for the duration of the transaction.
	GetForUpdate(ctx context.Context, tx Transaction, accountID string, currency domain.Currency) (*domain.Balance, error)
	GetAllByAccount(ctx context.Context, accountID string) ([]*domain.Balance, error)
	UpdateAmount(ctx context.Context, tx Transaction, id string, amount decimal.Decimal, modifiedBy string, modifiedAt time.Time) error
}

// TransactionRepository defines data access for balance mutation history.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

// RateProvider resolves an exchange rate between two currencies. Both the
// fixed table and the remote rate API implement it; the exchange flow is
// identical for either source.
type RateProvider interface {
	Rate(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error)
}

// BalanceGenerator produces sample currencies and amounts for data seeding.
// It is a demo collaborator, not part of the ledger's correctness surface.
type BalanceGenerator interface {
	Currency(exclude []domain.Currency) domain.Currency
	Amount(currency domain.Currency) decimal.Decimal
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation after transient database failures such as
// deadlocks. Non-retryable errors pass through on the first attempt.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
