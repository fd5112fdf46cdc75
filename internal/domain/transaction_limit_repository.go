package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// TransactionLimitRepository is the durable backing store for per-account
// transaction limits and usage counters.
type TransactionLimitRepository interface {
	GetLimits(ctx context.Context, accountID string) (TransactionLimits, error)
	SetLimits(ctx context.Context, accountID string, limits TransactionLimits) error
	GetUsage(ctx context.Context, accountID string) (LimitUsage, error)
	// AddUsage adds amount to both the daily and the monthly counter.
	// A negative amount compensates a previously recorded usage.
	AddUsage(ctx context.Context, accountID string, amount decimal.Decimal) error
	ResetDaily(ctx context.Context, accountID string) error
	ResetMonthly(ctx context.Context, accountID string) error
}
