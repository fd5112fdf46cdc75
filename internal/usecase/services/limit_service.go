package services

import (
	"context"
	"fmt"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/genericodex/Group5-SWConstruction/internal/logger"
	"github.com/shopspring/decimal"
)

// LimitEnforcementService guards the ledger against transactions that would
// breach an account's daily or monthly ceiling. It sits between structural
// request validation and the account aggregate: the ledger consults it before
// touching a balance, so a limit violation never reaches the account.
type LimitEnforcementService struct {
	limitRepo domain.TransactionLimitRepository
}

func NewLimitEnforcementService(limitRepo domain.TransactionLimitRepository) *LimitEnforcementService {
	return &LimitEnforcementService{limitRepo: limitRepo}
}

// CheckLimit verifies the daily ceiling first, then the monthly one. A
// transaction landing exactly on a ceiling is allowed. No usage is recorded
// here; recording happens only after the whole operation is accepted.
func (s *LimitEnforcementService) CheckLimit(ctx context.Context, accountID string, amount decimal.Decimal) error {
	limits, err := s.limitRepo.GetLimits(ctx, accountID)
	if err != nil {
		return fmt.Errorf("get limits: %w", err)
	}
	usage, err := s.limitRepo.GetUsage(ctx, accountID)
	if err != nil {
		return fmt.Errorf("get usage: %w", err)
	}

	if usage.Daily.Add(amount).GreaterThan(limits.Daily) {
		err := &domain.LimitExceededError{
			Boundary: domain.LimitBoundaryDaily,
			Usage:    usage.Daily,
			Amount:   amount,
			Limit:    limits.Daily,
		}
		logger.Warn("limit service check limit rejected", logger.Fields{
			"accountId": accountID,
			"boundary":  err.Boundary,
			"amount":    amount.String(),
			"usage":     usage.Daily.String(),
			"limit":     limits.Daily.String(),
		})
		return err
	}

	if usage.Monthly.Add(amount).GreaterThan(limits.Monthly) {
		err := &domain.LimitExceededError{
			Boundary: domain.LimitBoundaryMonthly,
			Usage:    usage.Monthly,
			Amount:   amount,
			Limit:    limits.Monthly,
		}
		logger.Warn("limit service check limit rejected", logger.Fields{
			"accountId": accountID,
			"boundary":  err.Boundary,
			"amount":    amount.String(),
			"usage":     usage.Monthly.String(),
			"limit":     limits.Monthly.String(),
		})
		return err
	}

	return nil
}

// RecordUsage counts an accepted amount against both running totals. It must
// be called exactly once per accepted transaction.
func (s *LimitEnforcementService) RecordUsage(ctx context.Context, accountID string, amount decimal.Decimal) error {
	if err := s.limitRepo.AddUsage(ctx, accountID, amount); err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// CompensateUsage reverses a previously recorded usage when a later step of
// the operation fails.
func (s *LimitEnforcementService) CompensateUsage(ctx context.Context, accountID string, amount decimal.Decimal) error {
	if err := s.limitRepo.AddUsage(ctx, accountID, amount.Neg()); err != nil {
		return fmt.Errorf("compensate usage: %w", err)
	}
	return nil
}

// ResetDaily zeroes the daily counter. Invoked by an external scheduler;
// the monthly counter is untouched.
func (s *LimitEnforcementService) ResetDaily(ctx context.Context, accountID string) error {
	if err := s.limitRepo.ResetDaily(ctx, accountID); err != nil {
		return fmt.Errorf("reset daily usage: %w", err)
	}
	logger.Info("limit service reset daily usage", logger.Fields{"accountId": accountID})
	return nil
}

// ResetMonthly zeroes the monthly counter; the daily counter is untouched.
func (s *LimitEnforcementService) ResetMonthly(ctx context.Context, accountID string) error {
	if err := s.limitRepo.ResetMonthly(ctx, accountID); err != nil {
		return fmt.Errorf("reset monthly usage: %w", err)
	}
	logger.Info("limit service reset monthly usage", logger.Fields{"accountId": accountID})
	return nil
}

func (s *LimitEnforcementService) GetStatus(ctx context.Context, accountID string) (domain.TransactionLimits, domain.LimitUsage, error) {
	limits, err := s.limitRepo.GetLimits(ctx, accountID)
	if err != nil {
		return domain.TransactionLimits{}, domain.LimitUsage{}, fmt.Errorf("get limits: %w", err)
	}
	usage, err := s.limitRepo.GetUsage(ctx, accountID)
	if err != nil {
		return domain.TransactionLimits{}, domain.LimitUsage{}, fmt.Errorf("get usage: %w", err)
	}
	return limits, usage, nil
}

// UpdateLimits replaces both ceilings. Values must be positive and the daily
// ceiling may not exceed the monthly one.
func (s *LimitEnforcementService) UpdateLimits(ctx context.Context, accountID string, daily, monthly decimal.Decimal) error {
	if daily.LessThanOrEqual(decimal.Zero) || monthly.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidLimit
	}
	if daily.GreaterThan(monthly) {
		return fmt.Errorf("%w: daily limit cannot exceed monthly limit", domain.ErrInvalidLimit)
	}

	if err := s.limitRepo.SetLimits(ctx, accountID, domain.TransactionLimits{Daily: daily, Monthly: monthly}); err != nil {
		return fmt.Errorf("set limits: %w", err)
	}

	logger.Info("limit service limits updated", logger.Fields{
		"accountId":    accountID,
		"dailyLimit":   daily.String(),
		"monthlyLimit": monthly.String(),
	})
	return nil
}
