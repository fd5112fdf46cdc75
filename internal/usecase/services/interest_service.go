package services

import (
	"context"
	"sync"
	"time"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/genericodex/Group5-SWConstruction/internal/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const batchInterestConcurrency = 4

// InterestService accrues interest on eligible accounts. The computed amount
// is posted through the ledger's deposit path, so it observes the same
// status, limit and notification rules as any other credit.
type InterestService struct {
	accountRepo domain.AccountRepository
	rateRepo    domain.InterestRateRepository
	ledger      *LedgerService
}

func NewInterestService(
	accountRepo domain.AccountRepository,
	rateRepo domain.InterestRateRepository,
	ledger *LedgerService,
) *InterestService {
	return &InterestService{
		accountRepo: accountRepo,
		rateRepo:    rateRepo,
		ledger:      ledger,
	}
}

// ApplyInterest accrues interest for one account over the given period,
// defaulting to the previous calendar month when the period is zero.
// Checking accounts carry no strategy and accrue nothing.
func (s *InterestService) ApplyInterest(ctx context.Context, accountID string, start, end time.Time) (decimal.Decimal, error) {
	if start.IsZero() || end.IsZero() {
		start, end = previousMonth(time.Now().UTC())
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	strategy := s.strategyFor(account)
	if strategy == nil {
		logger.Info("interest service account not eligible", logger.Fields{
			"accountId": accountID,
			"kind":      string(account.Kind),
		})
		return decimal.Zero, nil
	}

	interest, err := strategy.CalculateInterest(ctx, account.Balance, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	interest = interest.Round(2)
	if interest.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	if _, err := s.ledger.PostInterest(ctx, accountID, interest); err != nil {
		return decimal.Zero, err
	}

	logger.Info("interest service interest applied", logger.Fields{
		"accountId": accountID,
		"interest":  interest.String(),
		"start":     start.Format(time.RFC3339),
		"end":       end.Format(time.RFC3339),
	})
	return interest, nil
}

// ApplyInterestBatch accrues interest for many accounts with bounded
// concurrency. Per-account failures are collected, not fatal to the batch.
func (s *InterestService) ApplyInterestBatch(ctx context.Context, accountIDs []string, start, end time.Time) (map[string]decimal.Decimal, map[string]error) {
	results := make(map[string]decimal.Decimal, len(accountIDs))
	failures := make(map[string]error)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchInterestConcurrency)

	for _, accountID := range accountIDs {
		accountID := accountID
		g.Go(func() error {
			interest, err := s.ApplyInterest(gctx, accountID, start, end)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[accountID] = err
				logger.Error("interest service batch application failed", err, logger.Fields{
					"accountId": accountID,
				})
				return nil
			}
			results[accountID] = interest
			return nil
		})
	}

	_ = g.Wait()
	return results, failures
}

func (s *InterestService) strategyFor(account *domain.Account) domain.InterestStrategy {
	if account.InterestStrategy != nil {
		return account.InterestStrategy
	}
	// Persistence does not carry wiring; savings accounts default to the
	// dynamic per-kind rate lookup.
	if account.Kind == domain.AccountKindSavings {
		return domain.NewDynamicRateStrategy(account.Kind, s.rateRepo)
	}
	return nil
}

// previousMonth returns the prior calendar month as a half-open interval,
// ending on the first of the current month so every day of the month is
// counted.
func previousMonth(now time.Time) (time.Time, time.Time) {
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -1, 0)
	return start, end
}
