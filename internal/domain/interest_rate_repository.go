package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// InterestRateRepository resolves annual interest rates per account kind.
// GetRate fails with ErrRateNotFound when no rate is configured for the kind.
type InterestRateRepository interface {
	GetRate(ctx context.Context, kind AccountKind) (decimal.Decimal, error)
	SetRate(ctx context.Context, kind AccountKind, rate decimal.Decimal) error
}
