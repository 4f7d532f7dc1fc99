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

// ExchangeUseCase orchestrates currency conversions: it resolves a rate
// from the provider selected by the request mode, then debits the source
// and credits the target balance as one atomic unit.
//
// The rate is fetched before any balance mutation, so a rate failure
// leaves the ledger untouched and no compensating action is ever needed.
// The small window in which a remote rate can go stale between fetch and
// commit is accepted; in return no row lock is held across network I/O.
type ExchangeUseCase struct {
	txManager   TransactionManager
	balanceRepo BalanceRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	fixedRates  RateProvider
	remoteRates RateProvider
	retrier     Retrier
	currencies  *domain.CurrencySet
	logger      zerolog.Logger
}

// NewExchangeUseCase creates a new ExchangeUseCase.
func NewExchangeUseCase(
	txManager TransactionManager,
	balanceRepo BalanceRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	fixedRates RateProvider,
	remoteRates RateProvider,
	retrier Retrier,
	currencies *domain.CurrencySet,
	logger zerolog.Logger,
) *ExchangeUseCase {
	return &ExchangeUseCase{
		txManager:   txManager,
		balanceRepo: balanceRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
		fixedRates:  fixedRates,
		remoteRates: remoteRates,
		retrier:     retrier,
		currencies:  currencies,
		logger:      logger,
	}
}

// ExchangeInput represents a currency exchange request.
type ExchangeInput struct {
	AccountID string
	From      domain.Currency
	To        domain.Currency
	Amount    decimal.Decimal
	Mode      domain.RateMode
	Actor     string
}

// ExchangeResult carries the applied rate and the updated balances of
// both currencies. Amounts are full precision; rounding to two decimal
// places happens at the reporting boundary.
type ExchangeResult struct {
	Rate        decimal.Decimal
	FromBalance *domain.Balance
	ToBalance   *domain.Balance
}

// Convert performs a currency exchange for one account.
func (uc *ExchangeUseCase) Convert(ctx context.Context, input ExchangeInput) (*ExchangeResult, error) {
	start := time.Now()

	result, err := uc.convert(ctx, input)
	if err != nil {
		metrics.ExchangeErrors.WithLabelValues(errorKind(err)).Inc()
		return nil, err
	}

	metrics.ExchangesTotal.WithLabelValues(string(input.Mode)).Inc()
	metrics.ExchangeDuration.Observe(time.Since(start).Seconds())

	return result, nil
}

func (uc *ExchangeUseCase) convert(ctx context.Context, input ExchangeInput) (*ExchangeResult, error) {
	if err := domain.ValidateRateMode(input.Mode); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := uc.currencies.Validate(input.From); err != nil {
		return nil, err
	}

	if err := uc.currencies.Validate(input.To); err != nil {
		return nil, err
	}

	rate, err := uc.resolveRate(ctx, input)
	if err != nil {
		return nil, err
	}

	converted := input.Amount.Mul(rate)

	if input.From == input.To {
		return uc.convertIdentity(ctx, input, rate)
	}

	// The two-row section can deadlock against concurrent exchanges despite
	// ordered locking, so it runs under the retrier. Each attempt is a fresh
	// transaction.
	var result *ExchangeResult

	err = uc.retrier.Retry(ctx, func() error {
		var attemptErr error
		result, attemptErr = uc.applyExchange(ctx, input, rate, converted)
		return attemptErr
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *ExchangeUseCase) applyExchange(ctx context.Context, input ExchangeInput, rate, converted decimal.Decimal) (*ExchangeResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	fromBalance, toBalance, err := uc.lockBalances(ctx, tx, input)
	if err != nil {
		return nil, err
	}

	if err := fromBalance.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	newFromAmount := fromBalance.ApplyDebit(input.Amount)
	if err := uc.balanceRepo.UpdateAmount(ctx, tx, fromBalance.ID, newFromAmount, input.Actor, now); err != nil {
		return nil, err
	}

	if toBalance == nil {
		toBalance = &domain.Balance{
			ID:             uc.idGen.Generate(),
			AccountID:      input.AccountID,
			Currency:       input.To,
			Amount:         converted,
			CreatedBy:      input.Actor,
			CreatedAt:      now,
			LastModifiedBy: input.Actor,
			LastModifiedAt: now,
		}

		if err := uc.balanceRepo.Create(ctx, tx, toBalance); err != nil {
			uc.logCreditFailure(input, err)
			return nil, err
		}
	} else {
		newToAmount := toBalance.ApplyCredit(converted)
		if err := uc.balanceRepo.UpdateAmount(ctx, tx, toBalance.ID, newToAmount, input.Actor, now); err != nil {
			uc.logCreditFailure(input, err)
			return nil, err
		}

		toBalance.Amount = newToAmount
		toBalance.LastModifiedBy = input.Actor
		toBalance.LastModifiedAt = now
	}

	if err := uc.recordLegs(ctx, tx, input, converted, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		uc.logCreditFailure(input, err)
		return nil, err
	}

	fromBalance.Amount = newFromAmount
	fromBalance.LastModifiedBy = input.Actor
	fromBalance.LastModifiedAt = now

	uc.logger.Info().
		Str("account_id", input.AccountID).
		Str("from", input.From.String()).
		Str("to", input.To.String()).
		Str("mode", string(input.Mode)).
		Str("rate", rate.String()).
		Msg("exchange applied")

	return &ExchangeResult{
		Rate:        rate,
		FromBalance: fromBalance,
		ToBalance:   toBalance,
	}, nil
}

// resolveRate picks the provider by mode. The identity pair short-circuits
// to 1 without touching any provider.
func (uc *ExchangeUseCase) resolveRate(ctx context.Context, input ExchangeInput) (decimal.Decimal, error) {
	if input.From == input.To {
		return decimal.NewFromInt(1), nil
	}

	provider := uc.fixedRates
	if input.Mode == domain.RateModeExternal {
		provider = uc.remoteRates
	}

	return provider.Rate(ctx, input.From, input.To)
}

// convertIdentity handles from == to: a valid conversion at rate 1 that
// leaves the balance amount unchanged. Sufficiency is still enforced and
// both legs are recorded.
func (uc *ExchangeUseCase) convertIdentity(ctx context.Context, input ExchangeInput, rate decimal.Decimal) (*ExchangeResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	balance, err := uc.balanceRepo.GetForUpdate(ctx, tx, input.AccountID, input.From)
	if err != nil {
		return nil, err
	}

	if err := balance.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if err := uc.balanceRepo.UpdateAmount(ctx, tx, balance.ID, balance.Amount, input.Actor, now); err != nil {
		return nil, err
	}

	if err := uc.recordLegs(ctx, tx, input, input.Amount, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	balance.LastModifiedBy = input.Actor
	balance.LastModifiedAt = now

	return &ExchangeResult{
		Rate:        rate,
		FromBalance: balance,
		ToBalance:   balance,
	}, nil
}

// lockBalances locks both balance rows in lexicographic currency order so
// that two opposite-direction exchanges on the same account cannot
// deadlock. A missing target balance is created lazily by the caller; a
// missing source balance is an error.
func (uc *ExchangeUseCase) lockBalances(ctx context.Context, tx Transaction, input ExchangeInput) (*domain.Balance, *domain.Balance, error) {
	order := []domain.Currency{input.From, input.To}
	if order[1] < order[0] {
		order[0], order[1] = order[1], order[0]
	}

	var fromBalance, toBalance *domain.Balance

	for _, currency := range order {
		balance, err := uc.balanceRepo.GetForUpdate(ctx, tx, input.AccountID, currency)
		if err != nil {
			if currency == input.To && errors.Is(err, domain.ErrBalanceNotFound) {
				continue
			}

			return nil, nil, err
		}

		if currency == input.From {
			fromBalance = balance
		} else {
			toBalance = balance
		}
	}

	return fromBalance, toBalance, nil
}

func (uc *ExchangeUseCase) recordLegs(ctx context.Context, tx Transaction, input ExchangeInput, converted decimal.Decimal, now time.Time) error {
	debitLeg := &domain.Transaction{
		ID:        uc.idGen.Generate(),
		AccountID: input.AccountID,
		Type:      domain.TransactionExchange,
		Currency:  input.From,
		Amount:    input.Amount.Neg(),
		CreatedBy: input.Actor,
		CreatedAt: now,
	}

	creditLeg := &domain.Transaction{
		ID:        uc.idGen.Generate(),
		AccountID: input.AccountID,
		Type:      domain.TransactionExchange,
		Currency:  input.To,
		Amount:    converted,
		CreatedBy: input.Actor,
		CreatedAt: now,
	}

	if err := uc.txnRepo.Create(ctx, tx, debitLeg); err != nil {
		return err
	}

	return uc.txnRepo.Create(ctx, tx, creditLeg)
}

// logCreditFailure flags a failure on the credit side of an exchange. The
// surrounding transaction rolls the debit back, but an error here means a
// conversion was accepted and could not complete, so it is surfaced loudly
// for reconciliation.
func (uc *ExchangeUseCase) logCreditFailure(input ExchangeInput, err error) {
	uc.logger.Error().
		Err(err).
		Str("account_id", input.AccountID).
		Str("from", input.From.String()).
		Str("to", input.To.String()).
		Str("amount", input.Amount.String()).
		Msg("exchange credit step failed after debit; transaction aborted")
}
