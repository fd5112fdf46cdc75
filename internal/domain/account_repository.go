package domain

import "context"

// AccountRepository persists the account aggregate together with its
// transaction history. Save and SaveAll are upserts; SaveAll applies every
// account (and its appended entries) as one atomic unit or not at all,
// which is what keeps a transfer from committing only one side.
type AccountRepository interface {
	Save(ctx context.Context, account *Account) error
	SaveAll(ctx context.Context, accounts []*Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetAll(ctx context.Context) ([]*Account, error)
	Delete(ctx context.Context, id string) error
}
