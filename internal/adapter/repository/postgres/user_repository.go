package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/lib/pq"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const query = `
INSERT INTO users (id, username, pin_hash, created_at)
VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.PinHash, user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("username %q already exists", user.Username)
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	const query = `SELECT id, username, pin_hash, created_at FROM users WHERE username = $1`

	var user domain.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PinHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrRecordNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user %s: %w", username, err)
	}
	return user, nil
}

func (r *UserRepository) UpdatePinHash(ctx context.Context, username, pinHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET pin_hash = $2 WHERE username = $1`, username, pinHash)
	if err != nil {
		return fmt.Errorf("update pin for %s: %w", username, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update pin for %s: %w", username, err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
