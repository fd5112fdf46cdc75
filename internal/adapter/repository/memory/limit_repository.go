package memory

import (
	"context"
	"sync"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionLimitRepository stores limits and usage counters per account.
// Accounts without explicit limits fall back to the configured defaults.
type TransactionLimitRepository struct {
	mu            sync.RWMutex
	limits        map[string]domain.TransactionLimits
	usage         map[string]domain.LimitUsage
	defaultLimits domain.TransactionLimits
}

func NewTransactionLimitRepository(defaultLimits domain.TransactionLimits) *TransactionLimitRepository {
	return &TransactionLimitRepository{
		limits:        make(map[string]domain.TransactionLimits),
		usage:         make(map[string]domain.LimitUsage),
		defaultLimits: defaultLimits,
	}
}

func (r *TransactionLimitRepository) GetLimits(_ context.Context, accountID string) (domain.TransactionLimits, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limits, ok := r.limits[accountID]; ok {
		return limits, nil
	}
	return r.defaultLimits, nil
}

func (r *TransactionLimitRepository) SetLimits(_ context.Context, accountID string, limits domain.TransactionLimits) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limits[accountID] = limits
	return nil
}

func (r *TransactionLimitRepository) GetUsage(_ context.Context, accountID string) (domain.LimitUsage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if usage, ok := r.usage[accountID]; ok {
		return usage, nil
	}
	return domain.LimitUsage{Daily: decimal.Zero, Monthly: decimal.Zero}, nil
}

func (r *TransactionLimitRepository) AddUsage(_ context.Context, accountID string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	usage, ok := r.usage[accountID]
	if !ok {
		usage = domain.LimitUsage{Daily: decimal.Zero, Monthly: decimal.Zero}
	}
	usage.Daily = usage.Daily.Add(amount)
	usage.Monthly = usage.Monthly.Add(amount)
	r.usage[accountID] = usage
	return nil
}

func (r *TransactionLimitRepository) ResetDaily(_ context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	usage := r.usage[accountID]
	usage.Daily = decimal.Zero
	r.usage[accountID] = usage
	return nil
}

func (r *TransactionLimitRepository) ResetMonthly(_ context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	usage := r.usage[accountID]
	usage.Monthly = decimal.Zero
	r.usage[accountID] = usage
	return nil
}
