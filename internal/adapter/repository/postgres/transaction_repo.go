package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create records a history row inside the given transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO transactions (id, account_id, type, currency, amount, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		txn.ID,
		txn.AccountID,
		string(txn.Type),
		txn.Currency.String(),
		decimalToNumeric(txn.Amount),
		txn.CreatedBy,
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// ListByAccount lists history rows of an account, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, type, currency, amount, created_by, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction

	for rows.Next() {
		var (
			txn       domain.Transaction
			txnType   string
			currency  string
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&txn.ID,
			&txn.AccountID,
			&txnType,
			&currency,
			&amount,
			&txn.CreatedBy,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		txn.Type = domain.TransactionType(txnType)
		txn.Currency = domain.Currency(currency)
		txn.Amount = numericToDecimal(amount)
		txn.CreatedAt = createdAt.Time

		txns = append(txns, &txn)
	}

	return txns, rows.Err()
}
