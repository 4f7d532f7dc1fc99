package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/infrastructure/metrics"
)

// SeedActor is the actor recorded on rows created by the initial data
// loader.
const SeedActor = "initial data loader"

var seedHolders = []string{"Mart Tamm", "Mari Maasikas", "Siim Sepp", "Kati Kask"}

// SeedUseCase loads sample accounts and balances on an empty database.
// Run is idempotent: any existing account makes it a no-op, so it is safe
// to invoke on every process start.
type SeedUseCase struct {
	accountRepo AccountRepository
	accountUC   *AccountUseCase
	balanceUC   *BalanceUseCase
	generator   BalanceGenerator
	logger      zerolog.Logger
}

// NewSeedUseCase creates a new SeedUseCase.
func NewSeedUseCase(
	accountRepo AccountRepository,
	accountUC *AccountUseCase,
	balanceUC *BalanceUseCase,
	generator BalanceGenerator,
	logger zerolog.Logger,
) *SeedUseCase {
	return &SeedUseCase{
		accountRepo: accountRepo,
		accountUC:   accountUC,
		balanceUC:   balanceUC,
		generator:   generator,
		logger:      logger,
	}
}

// Run creates the sample data unless accounts already exist.
func (uc *SeedUseCase) Run(ctx context.Context) error {
	count, err := uc.accountRepo.Count(ctx)
	if err != nil {
		return err
	}

	if count > 0 {
		uc.logger.Debug().Msg("skipping initial data load (already set up)")
		return nil
	}

	uc.logger.Info().Msg("loading initial data")

	for _, holder := range seedHolders {
		account, err := uc.accountUC.CreateAccount(ctx, CreateAccountInput{
			Holder: holder,
			Actor:  SeedActor,
		})
		if err != nil {
			return err
		}

		// Two balances per account, in distinct currencies.
		first := uc.generator.Currency(nil)
		second := uc.generator.Currency([]domain.Currency{first})

		for _, currency := range []domain.Currency{first, second} {
			_, err := uc.balanceUC.Deposit(ctx, DepositInput{
				AccountID: account.ID,
				Currency:  currency,
				Amount:    uc.generator.Amount(currency),
				Actor:     SeedActor,
			})
			if err != nil {
				return err
			}
		}

		metrics.AccountsSeeded.Inc()
	}

	uc.logger.Info().Msg("initial data loaded successfully")

	return nil
}
