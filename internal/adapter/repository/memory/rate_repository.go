package memory

import (
	"context"
	"sync"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/shopspring/decimal"
)

type InterestRateRepository struct {
	mu    sync.RWMutex
	rates map[domain.AccountKind]decimal.Decimal
}

func NewInterestRateRepository() *InterestRateRepository {
	return &InterestRateRepository{rates: make(map[domain.AccountKind]decimal.Decimal)}
}

func (r *InterestRateRepository) GetRate(_ context.Context, kind domain.AccountKind) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rate, ok := r.rates[kind]
	if !ok {
		return decimal.Zero, domain.ErrRateNotFound
	}
	return rate, nil
}

func (r *InterestRateRepository) SetRate(_ context.Context, kind domain.AccountKind, rate decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates[kind] = rate
	return nil
}
