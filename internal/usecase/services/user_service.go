package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/genericodex/Group5-SWConstruction/internal/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService manages the transaction PIN used to authorize ledger
// operations. PINs are stored as bcrypt hashes only.
type UserService struct {
	userRepo domain.UserRepository
}

func NewUserService(userRepo domain.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) RegisterUser(ctx context.Context, username, pin string) (domain.User, error) {
	username = strings.TrimSpace(username)
	pin = strings.TrimSpace(pin)

	if username == "" {
		return domain.User{}, fmt.Errorf("username is required")
	}
	if err := validatePin(pin); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash transaction pin: %w", err)
	}

	user, err := s.userRepo.Create(ctx, domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		PinHash:   string(hash),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	logger.Info("user service user registered", logger.Fields{
		"userId":   user.ID,
		"username": user.Username,
	})
	return user, nil
}

func (s *UserService) VerifyPin(ctx context.Context, username, pin string) error {
	username = strings.TrimSpace(username)
	pin = strings.TrimSpace(pin)

	if username == "" || pin == "" {
		return fmt.Errorf("username and pin are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Info("user service verify pin mismatch", logger.Fields{"username": username})
			return fmt.Errorf("invalid pin")
		}
		return fmt.Errorf("verify pin: %w", err)
	}

	return nil
}

func (s *UserService) ChangePin(ctx context.Context, username, currentPin, newPin string) error {
	if err := s.VerifyPin(ctx, username, currentPin); err != nil {
		return err
	}
	if err := validatePin(strings.TrimSpace(newPin)); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(newPin)), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash transaction pin: %w", err)
	}
	if err := s.userRepo.UpdatePinHash(ctx, strings.TrimSpace(username), string(hash)); err != nil {
		return fmt.Errorf("update pin: %w", err)
	}

	logger.Info("user service pin changed", logger.Fields{"username": username})
	return nil
}

func validatePin(pin string) error {
	if len(pin) < 4 || len(pin) > 6 {
		return fmt.Errorf("pin must be 4 to 6 digits")
	}
	for _, ch := range pin {
		if ch < '0' || ch > '9' {
			return fmt.Errorf("pin must be 4 to 6 digits")
		}
	}
	return nil
}
