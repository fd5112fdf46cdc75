package domain

import (
	"context"
	"time"
)

// User carries the credentials needed to authorize ledger operations.
// Login and session handling live outside this core; only the transaction
// PIN concern is kept here.
type User struct {
	ID        string
	Username  string
	PinHash   string
	CreatedAt time.Time
}

type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	UpdatePinHash(ctx context.Context, username, pinHash string) error
}
