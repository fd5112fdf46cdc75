package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Save(ctx context.Context, tx domain.Transaction) error {
	const query = `
INSERT INTO transactions (id, type, amount, account_id, source_account_id, destination_account_id, created_at)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
ON CONFLICT (id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query,
		tx.ID,
		string(tx.Type),
		tx.Amount,
		tx.AccountID,
		tx.SourceAccountID,
		tx.DestinationAccountID,
		tx.Timestamp,
	); err != nil {
		return fmt.Errorf("save transaction %s: %w", tx.ID, err)
	}
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (domain.Transaction, error) {
	const query = `
SELECT id, type, amount, account_id, COALESCE(source_account_id, ''), COALESCE(destination_account_id, ''), created_at
FROM transactions
WHERE id = $1`

	var entry domain.Transaction
	var txType string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID,
		&txType,
		&entry.Amount,
		&entry.AccountID,
		&entry.SourceAccountID,
		&entry.DestinationAccountID,
		&entry.Timestamp,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Transaction{}, domain.ErrRecordNotFound
	}
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("get transaction %s: %w", id, err)
	}
	entry.Type = domain.TransactionType(txType)
	return entry, nil
}

func (r *TransactionRepository) GetByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return r.query(ctx, `
SELECT id, type, amount, account_id, COALESCE(source_account_id, ''), COALESCE(destination_account_id, ''), created_at
FROM transactions
WHERE account_id = $1
ORDER BY created_at, id`, accountID)
}

func (r *TransactionRepository) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	return r.query(ctx, `
SELECT id, type, amount, account_id, COALESCE(source_account_id, ''), COALESCE(destination_account_id, ''), created_at
FROM transactions
ORDER BY created_at, id`)
}

func (r *TransactionRepository) query(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var entries []domain.Transaction
	for rows.Next() {
		var entry domain.Transaction
		var txType string
		if err := rows.Scan(
			&entry.ID,
			&txType,
			&entry.Amount,
			&entry.AccountID,
			&entry.SourceAccountID,
			&entry.DestinationAccountID,
			&entry.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		entry.Type = domain.TransactionType(txType)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
