package domain

import "context"

// TransactionRepository is the read-optimized projection of ledger entries.
// The account aggregate owns the authoritative history; Save is idempotent
// by transaction ID so re-projecting an already stored entry is harmless.
type TransactionRepository interface {
	Save(ctx context.Context, tx Transaction) error
	GetByID(ctx context.Context, id string) (Transaction, error)
	GetByAccountID(ctx context.Context, accountID string) ([]Transaction, error)
	GetAll(ctx context.Context) ([]Transaction, error)
}
