package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

// BalanceRepository implements usecase.BalanceRepository.
type BalanceRepository struct {
	pool *pgxpool.Pool
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{pool: pool}
}

const balanceColumns = `id, account_id, currency, amount, created_by, created_at, last_modified_by, last_modified_at`

// Create inserts a new balance row inside the given transaction.
func (r *BalanceRepository) Create(ctx context.Context, tx usecase.Transaction, balance *domain.Balance) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO balances (`+balanceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		balance.ID,
		balance.AccountID,
		balance.Currency.String(),
		decimalToNumeric(balance.Amount),
		balance.CreatedBy,
		timeToPgTimestamptz(balance.CreatedAt),
		balance.LastModifiedBy,
		timeToPgTimestamptz(balance.LastModifiedAt),
	)

	return err
}

// GetByAccountAndCurrency retrieves a balance without locking it.
func (r *BalanceRepository) GetByAccountAndCurrency(ctx context.Context, accountID string, currency domain.Currency) (*domain.Balance, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+balanceColumns+`
		FROM balances
		WHERE account_id = $1 AND currency = $2`,
		accountID, currency.String(),
	)

	return scanBalance(row)
}

// GetForUpdate retrieves a balance with a FOR UPDATE row lock.
func (r *BalanceRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, accountID string, currency domain.Currency) (*domain.Balance, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+balanceColumns+`
		FROM balances
		WHERE account_id = $1 AND currency = $2
		FOR UPDATE`,
		accountID, currency.String(),
	)

	return scanBalance(row)
}

// GetAllByAccount retrieves all balances of an account ordered by currency.
func (r *BalanceRepository) GetAllByAccount(ctx context.Context, accountID string) ([]*domain.Balance, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+balanceColumns+`
		FROM balances
		WHERE account_id = $1
		ORDER BY currency`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []*domain.Balance

	for rows.Next() {
		balance, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}

		balances = append(balances, balance)
	}

	return balances, rows.Err()
}

// UpdateAmount updates the amount of a balance row inside the given
// transaction.
func (r *BalanceRepository) UpdateAmount(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, modifiedBy string, modifiedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE balances
		SET amount = $2, last_modified_by = $3, last_modified_at = $4
		WHERE id = $1`,
		id,
		decimalToNumeric(amount),
		modifiedBy,
		timeToPgTimestamptz(modifiedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBalanceNotFound
	}

	return nil
}

func scanBalance(row pgx.Row) (*domain.Balance, error) {
	var (
		balance        domain.Balance
		currency       string
		amount         pgtype.Numeric
		createdAt      pgtype.Timestamptz
		lastModifiedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&balance.ID,
		&balance.AccountID,
		&currency,
		&amount,
		&balance.CreatedBy,
		&createdAt,
		&balance.LastModifiedBy,
		&lastModifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBalanceNotFound
		}

		return nil, err
	}

	balance.Currency = domain.Currency(currency)
	balance.Amount = numericToDecimal(amount)
	balance.CreatedAt = createdAt.Time
	balance.LastModifiedAt = lastModifiedAt.Time

	return &balance, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
