package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionLimitRepository backs limit enforcement with one row per
// account. Accounts without a row fall back to the configured defaults.
type TransactionLimitRepository struct {
	db            *sql.DB
	defaultLimits domain.TransactionLimits
}

func NewTransactionLimitRepository(db *sql.DB, defaultLimits domain.TransactionLimits) *TransactionLimitRepository {
	return &TransactionLimitRepository{db: db, defaultLimits: defaultLimits}
}

func (r *TransactionLimitRepository) GetLimits(ctx context.Context, accountID string) (domain.TransactionLimits, error) {
	const query = `SELECT daily_limit, monthly_limit FROM account_limits WHERE account_id = $1`

	var limits domain.TransactionLimits
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(&limits.Daily, &limits.Monthly)
	if errors.Is(err, sql.ErrNoRows) {
		return r.defaultLimits, nil
	}
	if err != nil {
		return domain.TransactionLimits{}, fmt.Errorf("get limits for %s: %w", accountID, err)
	}
	return limits, nil
}

func (r *TransactionLimitRepository) SetLimits(ctx context.Context, accountID string, limits domain.TransactionLimits) error {
	const query = `
INSERT INTO account_limits (account_id, daily_limit, monthly_limit, daily_usage, monthly_usage)
VALUES ($1, $2, $3, 0, 0)
ON CONFLICT (account_id) DO UPDATE SET
	daily_limit = EXCLUDED.daily_limit,
	monthly_limit = EXCLUDED.monthly_limit`

	if _, err := r.db.ExecContext(ctx, query, accountID, limits.Daily, limits.Monthly); err != nil {
		return fmt.Errorf("set limits for %s: %w", accountID, err)
	}
	return nil
}

func (r *TransactionLimitRepository) GetUsage(ctx context.Context, accountID string) (domain.LimitUsage, error) {
	const query = `SELECT daily_usage, monthly_usage FROM account_limits WHERE account_id = $1`

	var usage domain.LimitUsage
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(&usage.Daily, &usage.Monthly)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LimitUsage{Daily: decimal.Zero, Monthly: decimal.Zero}, nil
	}
	if err != nil {
		return domain.LimitUsage{}, fmt.Errorf("get usage for %s: %w", accountID, err)
	}
	return usage, nil
}

func (r *TransactionLimitRepository) AddUsage(ctx context.Context, accountID string, amount decimal.Decimal) error {
	const query = `
INSERT INTO account_limits (account_id, daily_limit, monthly_limit, daily_usage, monthly_usage)
VALUES ($1, $2, $3, $4, $4)
ON CONFLICT (account_id) DO UPDATE SET
	daily_usage = account_limits.daily_usage + EXCLUDED.daily_usage,
	monthly_usage = account_limits.monthly_usage + EXCLUDED.monthly_usage`

	if _, err := r.db.ExecContext(ctx, query, accountID, r.defaultLimits.Daily, r.defaultLimits.Monthly, amount); err != nil {
		return fmt.Errorf("add usage for %s: %w", accountID, err)
	}
	return nil
}

func (r *TransactionLimitRepository) ResetDaily(ctx context.Context, accountID string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE account_limits SET daily_usage = 0 WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("reset daily usage for %s: %w", accountID, err)
	}
	return nil
}

func (r *TransactionLimitRepository) ResetMonthly(ctx context.Context, accountID string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE account_limits SET monthly_usage = 0 WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("reset monthly usage for %s: %w", accountID, err)
	}
	return nil
}
