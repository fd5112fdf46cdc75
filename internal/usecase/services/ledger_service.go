package services

import (
	"context"
	"fmt"

	"github.com/genericodex/Group5-SWConstruction/internal/commons"
	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/genericodex/Group5-SWConstruction/internal/logger"
	"github.com/shopspring/decimal"
)

// LedgerService orchestrates every balance-mutating operation:
//
//	limit check -> account mutation -> usage recording -> persistence -> notification
//
// All of it runs under the account's lock (both accounts' locks for a
// transfer, acquired in a fixed global order), so balance-check-then-mutate
// is atomic per account while unrelated accounts proceed in parallel.
// Mutations happen on a copy loaded from the repository and are only saved
// on success, so a persistence failure leaves durable state and the next
// read consistent.
type LedgerService struct {
	accountRepo     domain.AccountRepository
	transactionRepo domain.TransactionRepository
	limits          *LimitEnforcementService
	dispatcher      domain.EventDispatcher
	locks           *commons.KeyedMutex
}

func NewLedgerService(
	accountRepo domain.AccountRepository,
	transactionRepo domain.TransactionRepository,
	limits *LimitEnforcementService,
	dispatcher domain.EventDispatcher,
) *LedgerService {
	return &LedgerService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		limits:          limits,
		dispatcher:      dispatcher,
		locks:           commons.NewKeyedMutex(),
	}
}

func (s *LedgerService) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (domain.Transaction, error) {
	return s.post(ctx, accountID, amount, domain.TransactionTypeDeposit, false)
}

func (s *LedgerService) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (domain.Transaction, error) {
	return s.post(ctx, accountID, amount, domain.TransactionTypeWithdraw, false)
}

// PostInterest credits accrued interest through the normal deposit path, so
// it is subject to the same status, limit and notification rules, and bumps
// the account's running interest total in the same atomic unit.
func (s *LedgerService) PostInterest(ctx context.Context, accountID string, amount decimal.Decimal) (domain.Transaction, error) {
	return s.post(ctx, accountID, amount, domain.TransactionTypeDeposit, true)
}

func (s *LedgerService) post(ctx context.Context, accountID string, amount decimal.Decimal, txType domain.TransactionType, interest bool) (domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	unlock, err := s.locks.Lock(ctx, accountID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %v", domain.ErrLockTimeout, err)
	}
	defer unlock()

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return domain.Transaction{}, err
	}

	if err := s.limits.CheckLimit(ctx, accountID, amount); err != nil {
		return domain.Transaction{}, err
	}

	var tx domain.Transaction
	switch txType {
	case domain.TransactionTypeWithdraw:
		tx, err = account.Withdraw(amount)
	default:
		tx, err = account.Deposit(amount)
	}
	if err != nil {
		return domain.Transaction{}, err
	}
	if interest {
		account.AccruedInterest = account.AccruedInterest.Add(amount)
	}

	if err := s.limits.RecordUsage(ctx, accountID, amount); err != nil {
		return domain.Transaction{}, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		if cErr := s.limits.CompensateUsage(ctx, accountID, amount); cErr != nil {
			logger.Error("ledger service usage compensation failed", cErr, logger.Fields{
				"accountId":     accountID,
				"transactionId": tx.ID,
			})
		}
		return domain.Transaction{}, fmt.Errorf("persist account: %w", err)
	}

	s.project(ctx, tx)
	s.dispatcher.Dispatch(ctx, domain.TransactionPosted{
		Transaction: tx,
		AccountID:   account.ID,
		Kind:        account.Kind,
		Tier:        account.Tier,
		Balance:     account.Balance,
	})

	logger.Info("ledger service transaction posted", logger.Fields{
		"accountId":     accountID,
		"transactionId": tx.ID,
		"type":          string(tx.Type),
		"amount":        amount.String(),
		"balance":       account.Balance.String(),
	})
	return tx, nil
}

// Transfer debits the source and credits the destination as one atomic unit,
// appending one transfer leg to each history. The amount is counted against
// the source account's limits only. Returns the source-side leg.
func (s *LedgerService) Transfer(ctx context.Context, sourceID, destID string, amount decimal.Decimal) (domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}
	if sourceID == destID {
		return domain.Transaction{}, domain.ErrTransferSameAccount
	}

	unlock, err := s.locks.LockOrdered(ctx, sourceID, destID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %v", domain.ErrLockTimeout, err)
	}
	defer unlock()

	source, err := s.accountRepo.GetByID(ctx, sourceID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("source account: %w", err)
	}
	dest, err := s.accountRepo.GetByID(ctx, destID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("destination account: %w", err)
	}

	if err := s.limits.CheckLimit(ctx, sourceID, amount); err != nil {
		return domain.Transaction{}, err
	}

	sourceLeg, destLeg, err := source.TransferTo(dest, amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	if err := s.limits.RecordUsage(ctx, sourceID, amount); err != nil {
		return domain.Transaction{}, err
	}

	if err := s.accountRepo.SaveAll(ctx, []*domain.Account{source, dest}); err != nil {
		if cErr := s.limits.CompensateUsage(ctx, sourceID, amount); cErr != nil {
			logger.Error("ledger service usage compensation failed", cErr, logger.Fields{
				"accountId":     sourceID,
				"transactionId": sourceLeg.ID,
			})
		}
		return domain.Transaction{}, fmt.Errorf("persist transfer: %w", err)
	}

	s.project(ctx, sourceLeg)
	s.project(ctx, destLeg)
	s.dispatcher.Dispatch(ctx, domain.TransactionPosted{
		Transaction: sourceLeg,
		AccountID:   source.ID,
		Kind:        source.Kind,
		Tier:        source.Tier,
		Balance:     source.Balance,
	})
	s.dispatcher.Dispatch(ctx, domain.TransactionPosted{
		Transaction: destLeg,
		AccountID:   dest.ID,
		Kind:        dest.Kind,
		Tier:        dest.Tier,
		Balance:     dest.Balance,
	})

	logger.Info("ledger service transfer posted", logger.Fields{
		"sourceAccountId":      sourceID,
		"destinationAccountId": destID,
		"transactionId":        sourceLeg.ID,
		"amount":               amount.String(),
	})
	return sourceLeg, nil
}

func (s *LedgerService) GetTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetByAccountID(ctx, accountID)
}

// project writes the entry into the read-side transaction store. The account
// aggregate already holds the authoritative copy, so a projection failure is
// reported but does not fail the committed operation.
func (s *LedgerService) project(ctx context.Context, tx domain.Transaction) {
	if err := s.transactionRepo.Save(ctx, tx); err != nil {
		logger.Error("ledger service transaction projection failed", err, logger.Fields{
			"transactionId": tx.ID,
			"accountId":     tx.AccountID,
		})
	}
}
