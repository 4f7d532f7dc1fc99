package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/infrastructure/metrics"
)

// BalanceUseCase applies deposit and withdrawal operations against the
// balance store, enforcing sufficiency invariants.
type BalanceUseCase struct {
	txManager   TransactionManager
	balanceRepo BalanceRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	currencies  *domain.CurrencySet
	logger      zerolog.Logger
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(
	txManager TransactionManager,
	balanceRepo BalanceRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	currencies *domain.CurrencySet,
	logger zerolog.Logger,
) *BalanceUseCase {
	return &BalanceUseCase{
		txManager:   txManager,
		balanceRepo: balanceRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
		currencies:  currencies,
		logger:      logger,
	}
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountID string
	Currency  domain.Currency
	Amount    decimal.Decimal
	Actor     string
}

// Deposit credits the account's balance for the given currency, creating
// the balance row on first touch. It never fails for lack of funds.
func (uc *BalanceUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Balance, error) {
	if err := uc.currencies.Validate(input.Currency); err != nil {
		metrics.LedgerErrors.WithLabelValues("deposit", errorKind(err)).Inc()
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		metrics.LedgerErrors.WithLabelValues("deposit", errorKind(err)).Inc()
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	balance, err := uc.balanceRepo.GetForUpdate(ctx, tx, input.AccountID, input.Currency)

	switch {
	case errors.Is(err, domain.ErrBalanceNotFound):
		balance = uc.newBalance(input.AccountID, input.Currency, input.Amount, input.Actor, now)
		if err := uc.balanceRepo.Create(ctx, tx, balance); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		newAmount := balance.ApplyCredit(input.Amount)
		if err := uc.balanceRepo.UpdateAmount(ctx, tx, balance.ID, newAmount, input.Actor, now); err != nil {
			return nil, err
		}

		balance.Amount = newAmount
		balance.LastModifiedBy = input.Actor
		balance.LastModifiedAt = now
	}

	err = uc.txnRepo.Create(ctx, tx, &domain.Transaction{
		ID:        uc.idGen.Generate(),
		AccountID: input.AccountID,
		Type:      domain.TransactionCredit,
		Currency:  input.Currency,
		Amount:    input.Amount,
		CreatedBy: input.Actor,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.DepositsTotal.Inc()
	uc.logger.Debug().
		Str("account_id", input.AccountID).
		Str("currency", input.Currency.String()).
		Msg("deposit applied")

	return balance, nil
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	AccountID string
	Currency  domain.Currency
	Amount    decimal.Decimal
	Actor     string
}

// Withdraw debits the account's balance for the given currency. A missing
// balance row is reported as ErrBalanceNotFound, distinct from
// ErrInsufficientBalance; neither leaves any partial mutation behind.
func (uc *BalanceUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Balance, error) {
	if err := uc.currencies.Validate(input.Currency); err != nil {
		metrics.LedgerErrors.WithLabelValues("withdraw", errorKind(err)).Inc()
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		metrics.LedgerErrors.WithLabelValues("withdraw", errorKind(err)).Inc()
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	balance, err := uc.balanceRepo.GetForUpdate(ctx, tx, input.AccountID, input.Currency)
	if err != nil {
		metrics.LedgerErrors.WithLabelValues("withdraw", errorKind(err)).Inc()
		return nil, err
	}

	if err := balance.ValidateDebit(input.Amount); err != nil {
		metrics.LedgerErrors.WithLabelValues("withdraw", errorKind(err)).Inc()
		return nil, err
	}

	now := time.Now().UTC()
	newAmount := balance.ApplyDebit(input.Amount)

	if err := uc.balanceRepo.UpdateAmount(ctx, tx, balance.ID, newAmount, input.Actor, now); err != nil {
		return nil, err
	}

	err = uc.txnRepo.Create(ctx, tx, &domain.Transaction{
		ID:        uc.idGen.Generate(),
		AccountID: input.AccountID,
		Type:      domain.TransactionDebit,
		Currency:  input.Currency,
		Amount:    input.Amount,
		CreatedBy: input.Actor,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	balance.Amount = newAmount
	balance.LastModifiedBy = input.Actor
	balance.LastModifiedAt = now

	metrics.WithdrawalsTotal.Inc()
	uc.logger.Debug().
		Str("account_id", input.AccountID).
		Str("currency", input.Currency.String()).
		Msg("withdrawal applied")

	return balance, nil
}

// GetBalances returns one balance per supported currency, in configuration
// order. Currencies with no prior activity are reported with amount 0.
func (uc *BalanceUseCase) GetBalances(ctx context.Context, accountID string) ([]*domain.Balance, error) {
	rows, err := uc.balanceRepo.GetAllByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	byCurrency := make(map[domain.Currency]*domain.Balance, len(rows))
	for _, row := range rows {
		byCurrency[row.Currency] = row
	}

	balances := make([]*domain.Balance, 0, len(uc.currencies.All()))
	for _, currency := range uc.currencies.All() {
		if row, ok := byCurrency[currency]; ok {
			balances = append(balances, row)
			continue
		}

		balances = append(balances, &domain.Balance{
			AccountID: accountID,
			Currency:  currency,
			Amount:    decimal.Zero,
		})
	}

	return balances, nil
}

// ListTransactionsInput represents input for listing transaction history.
type ListTransactionsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactions lists balance mutation history for an account.
func (uc *BalanceUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.txnRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}

func (uc *BalanceUseCase) newBalance(accountID string, currency domain.Currency, amount decimal.Decimal, actor string, now time.Time) *domain.Balance {
	return &domain.Balance{
		ID:             uc.idGen.Generate(),
		AccountID:      accountID,
		Currency:       currency,
		Amount:         amount,
		CreatedBy:      actor,
		CreatedAt:      now,
		LastModifiedBy: actor,
		LastModifiedAt: now,
	}
}

// errorKind maps domain errors to stable metric labels.
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInvalidCurrency):
		return "invalid_currency"
	case errors.Is(err, domain.ErrInvalidRateMode):
		return "invalid_rate_mode"
	case errors.Is(err, domain.ErrBalanceNotFound):
		return "balance_not_found"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrRateUnavailable):
		return "rate_unavailable"
	default:
		return "infrastructure"
	}
}
