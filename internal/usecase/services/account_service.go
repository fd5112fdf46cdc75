package services

import (
	"context"
	"fmt"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/genericodex/Group5-SWConstruction/internal/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService opens, fetches and closes accounts. Opening an account also
// installs its default transaction limits so the ledger can enforce them from
// the first operation.
type AccountService struct {
	accountRepo   domain.AccountRepository
	limitRepo     domain.TransactionLimitRepository
	defaultLimits domain.TransactionLimits
}

func NewAccountService(
	accountRepo domain.AccountRepository,
	limitRepo domain.TransactionLimitRepository,
	defaultLimits domain.TransactionLimits,
) *AccountService {
	return &AccountService{
		accountRepo:   accountRepo,
		limitRepo:     limitRepo,
		defaultLimits: defaultLimits,
	}
}

// OpenAccount creates an active account of the given kind. A savings account
// must open with at least the minimum balance; an opening deposit below it is
// rejected here, at creation time, not later.
func (s *AccountService) OpenAccount(ctx context.Context, kind domain.AccountKind, initialDeposit decimal.Decimal, tier domain.NotificationTier) (*domain.Account, error) {
	switch kind {
	case domain.AccountKindChecking, domain.AccountKindSavings:
	default:
		return nil, fmt.Errorf("unsupported account kind %q", kind)
	}
	if initialDeposit.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if kind == domain.AccountKindSavings && initialDeposit.LessThan(domain.MinimumBalance) {
		return nil, fmt.Errorf("%w: savings accounts require an opening deposit of at least %s",
			domain.ErrInsufficientFunds, domain.MinimumBalance.String())
	}

	account := domain.NewAccount(uuid.NewString(), kind, initialDeposit, tier)

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("persist account: %w", err)
	}
	if err := s.limitRepo.SetLimits(ctx, account.ID, s.defaultLimits); err != nil {
		return nil, fmt.Errorf("install default limits: %w", err)
	}

	logger.Info("account service account opened", logger.Fields{
		"accountId": account.ID,
		"kind":      string(kind),
		"tier":      string(account.Tier),
		"balance":   account.Balance.String(),
	})
	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.accountRepo.GetAll(ctx)
}

// CloseAccount marks the account closed. Closed accounts reject every
// further mutating operation.
func (s *AccountService) CloseAccount(ctx context.Context, id string) error {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	account.Close()
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return fmt.Errorf("persist account: %w", err)
	}

	logger.Info("account service account closed", logger.Fields{"accountId": id})
	return nil
}
