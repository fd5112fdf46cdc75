package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/shopspring/decimal"
)

type InterestRateRepository struct {
	db *sql.DB
}

func NewInterestRateRepository(db *sql.DB) *InterestRateRepository {
	return &InterestRateRepository{db: db}
}

func (r *InterestRateRepository) GetRate(ctx context.Context, kind domain.AccountKind) (decimal.Decimal, error) {
	const query = `SELECT rate FROM interest_rates WHERE account_kind = $1`

	var rate decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, string(kind)).Scan(&rate)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, domain.ErrRateNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("get rate for %s: %w", kind, err)
	}
	return rate, nil
}

func (r *InterestRateRepository) SetRate(ctx context.Context, kind domain.AccountKind, rate decimal.Decimal) error {
	const query = `
INSERT INTO interest_rates (account_kind, rate)
VALUES ($1, $2)
ON CONFLICT (account_kind) DO UPDATE SET rate = EXCLUDED.rate`

	if _, err := r.db.ExecContext(ctx, query, string(kind), rate); err != nil {
		return fmt.Errorf("set rate for %s: %w", kind, err)
	}
	return nil
}
