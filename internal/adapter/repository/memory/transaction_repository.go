package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
)

type TransactionRepository struct {
	mu      sync.RWMutex
	entries map[string]domain.Transaction
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{entries: make(map[string]domain.Transaction)}
}

// Save is idempotent by transaction ID: re-projecting an entry that already
// exists is a no-op.
func (r *TransactionRepository) Save(_ context.Context, tx domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[tx.ID]; ok {
		return nil
	}
	r.entries[tx.ID] = tx
	return nil
}

func (r *TransactionRepository) GetByID(_ context.Context, id string) (domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tx, ok := r.entries[id]
	if !ok {
		return domain.Transaction{}, domain.ErrRecordNotFound
	}
	return tx, nil
}

func (r *TransactionRepository) GetByAccountID(_ context.Context, accountID string) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Transaction, 0)
	for _, tx := range r.entries {
		if tx.AccountID == accountID {
			out = append(out, tx)
		}
	}
	sortByTimestamp(out)
	return out, nil
}

func (r *TransactionRepository) GetAll(_ context.Context) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Transaction, 0, len(r.entries))
	for _, tx := range r.entries {
		out = append(out, tx)
	}
	sortByTimestamp(out)
	return out, nil
}

func sortByTimestamp(entries []domain.Transaction) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
}
