package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) error {
	return r.SaveAll(ctx, []*domain.Account{account})
}

// SaveAll upserts every account and appends its unseen ledger entries in a
// single SQL transaction, so a transfer's two sides commit together or not
// at all.
func (r *AccountRepository) SaveAll(ctx context.Context, accounts []*domain.Account) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save accounts: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertAccount = `
INSERT INTO accounts (id, kind, balance, status, tier, accrued_interest, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	balance = EXCLUDED.balance,
	status = EXCLUDED.status,
	tier = EXCLUDED.tier,
	accrued_interest = EXCLUDED.accrued_interest`

	const insertEntry = `
INSERT INTO transactions (id, type, amount, account_id, source_account_id, destination_account_id, created_at)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
ON CONFLICT (id) DO NOTHING`

	for _, account := range accounts {
		if _, err := tx.ExecContext(ctx, upsertAccount,
			account.ID,
			string(account.Kind),
			account.Balance,
			string(account.Status),
			string(account.Tier),
			account.AccruedInterest,
			account.CreatedAt,
		); err != nil {
			return fmt.Errorf("upsert account %s: %w", account.ID, err)
		}

		for _, entry := range account.Transactions {
			if _, err := tx.ExecContext(ctx, insertEntry,
				entry.ID,
				string(entry.Type),
				entry.Amount,
				entry.AccountID,
				entry.SourceAccountID,
				entry.DestinationAccountID,
				entry.Timestamp,
			); err != nil {
				return fmt.Errorf("insert transaction %s: %w", entry.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save accounts: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `
SELECT id, kind, balance, status, tier, accrued_interest, created_at
FROM accounts
WHERE id = $1`

	account := &domain.Account{}
	var kind, status, tier string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&kind,
		&account.Balance,
		&status,
		&tier,
		&account.AccruedInterest,
		&account.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account %s: %w", id, err)
	}
	account.Kind = domain.AccountKind(kind)
	account.Status = domain.AccountStatus(status)
	account.Tier = domain.NotificationTier(tier)

	entries, err := r.entriesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	account.Transactions = entries

	return account, nil
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]*domain.Account, error) {
	const query = `
SELECT id, kind, balance, status, tier, accrued_interest, created_at
FROM accounts
ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []*domain.Account
	for rows.Next() {
		account := &domain.Account{}
		var kind, status, tier string
		if err := rows.Scan(
			&account.ID,
			&kind,
			&account.Balance,
			&status,
			&tier,
			&account.AccruedInterest,
			&account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		account.Kind = domain.AccountKind(kind)
		account.Status = domain.AccountStatus(status)
		account.Tier = domain.NotificationTier(tier)
		out = append(out, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	for _, account := range out {
		entries, err := r.entriesFor(ctx, account.ID)
		if err != nil {
			return nil, err
		}
		account.Transactions = entries
	}
	return out, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account %s: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) entriesFor(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	const query = `
SELECT id, type, amount, account_id, COALESCE(source_account_id, ''), COALESCE(destination_account_id, ''), created_at
FROM transactions
WHERE account_id = $1
ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("load transactions for %s: %w", accountID, err)
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
