package memory

import (
	"context"
	"sync"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
)

// AccountRepository keeps account aggregates in process memory. Every read
// hands out a deep copy and every write stores one, so callers can only
// mutate shared state through the ledger's per-account locks.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]*domain.Account)}
}

func (r *AccountRepository) Save(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.ID] = account.Clone()
	return nil
}

func (r *AccountRepository) SaveAll(_ context.Context, accounts []*domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range accounts {
		r.accounts[account.ID] = account.Clone()
	}
	return nil
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account.Clone(), nil
}

func (r *AccountRepository) GetAll(_ context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		out = append(out, account.Clone())
	}
	return out, nil
}

func (r *AccountRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}
