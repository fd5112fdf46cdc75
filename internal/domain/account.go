package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountKind string

const (
	AccountKindChecking AccountKind = "CHECKING"
	AccountKindSavings  AccountKind = "SAVINGS"
)

type AccountStatus string

const (
	AccountStatusActive AccountStatus = "ACTIVE"
	AccountStatusClosed AccountStatus = "CLOSED"
)

// MinimumBalance is the floor a savings account may never drop below.
var MinimumBalance = decimal.NewFromInt(100)

// CanWithdraw is the per-kind withdrawal eligibility rule. Checking accounts
// may spend down to zero; savings accounts must keep the minimum balance.
func (k AccountKind) CanWithdraw(balance, amount decimal.Decimal) bool {
	switch k {
	case AccountKindSavings:
		return balance.Sub(amount).GreaterThanOrEqual(MinimumBalance)
	default:
		return balance.GreaterThanOrEqual(amount)
	}
}

// Account is the aggregate root of the ledger. It exclusively owns its
// transaction history: entries are only ever appended by the mutating
// methods below, never edited in place. The aggregate itself is not safe
// for concurrent use; callers serialize access per account.
type Account struct {
	ID              string
	Kind            AccountKind
	Balance         decimal.Decimal
	Status          AccountStatus
	Tier            NotificationTier
	AccruedInterest decimal.Decimal
	CreatedAt       time.Time
	Transactions    []Transaction

	// InterestStrategy is wiring, not ledger data: it is attached at
	// registration time and not persisted. A nil strategy means the
	// account never accrues interest.
	InterestStrategy InterestStrategy
}

func NewAccount(id string, kind AccountKind, initialBalance decimal.Decimal, tier NotificationTier) *Account {
	if tier == "" {
		tier = TierDefault
	}
	return &Account{
		ID:              id,
		Kind:            kind,
		Balance:         initialBalance,
		Status:          AccountStatusActive,
		Tier:            tier,
		AccruedInterest: decimal.Zero,
		CreatedAt:       time.Now().UTC(),
	}
}

func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return a.Kind.CanWithdraw(a.Balance, amount)
}

// Deposit credits the account and appends the resulting entry.
func (a *Account) Deposit(amount decimal.Decimal) (Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, ErrInvalidAmount
	}
	if !a.IsActive() {
		return Transaction{}, ErrAccountInactive
	}

	tx, err := NewTransaction(TransactionTypeDeposit, amount, a.ID)
	if err != nil {
		return Transaction{}, err
	}

	a.Balance = a.Balance.Add(amount)
	a.Transactions = append(a.Transactions, tx)
	return tx, nil
}

// Withdraw debits the account if the kind's eligibility rule allows it.
func (a *Account) Withdraw(amount decimal.Decimal) (Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, ErrInvalidAmount
	}
	if !a.IsActive() {
		return Transaction{}, ErrAccountInactive
	}
	if !a.CanWithdraw(amount) {
		return Transaction{}, ErrInsufficientFunds
	}

	tx, err := NewTransaction(TransactionTypeWithdraw, amount, a.ID)
	if err != nil {
		return Transaction{}, err
	}

	a.Balance = a.Balance.Sub(amount)
	a.Transactions = append(a.Transactions, tx)
	return tx, nil
}

// TransferTo moves amount from the receiver to dest as a single unit: both
// balances change and both legs are appended, or nothing happens. Each leg
// carries the full source/destination pair. The caller is responsible for
// holding both account locks.
func (a *Account) TransferTo(dest *Account, amount decimal.Decimal) (Transaction, Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, Transaction{}, ErrInvalidAmount
	}
	if dest == nil || dest.ID == a.ID {
		return Transaction{}, Transaction{}, ErrTransferSameAccount
	}
	if !a.IsActive() || !dest.IsActive() {
		return Transaction{}, Transaction{}, ErrAccountInactive
	}
	if !a.CanWithdraw(amount) {
		return Transaction{}, Transaction{}, ErrInsufficientFunds
	}

	sourceLeg, err := NewTransferTransaction(amount, a.ID, a.ID, dest.ID)
	if err != nil {
		return Transaction{}, Transaction{}, err
	}
	destLeg, err := NewTransferTransaction(amount, dest.ID, a.ID, dest.ID)
	if err != nil {
		return Transaction{}, Transaction{}, err
	}

	a.Balance = a.Balance.Sub(amount)
	dest.Balance = dest.Balance.Add(amount)
	a.Transactions = append(a.Transactions, sourceLeg)
	dest.Transactions = append(dest.Transactions, destLeg)

	return sourceLeg, destLeg, nil
}

// Close marks the account closed. Every mutating operation rejects a closed
// account with ErrAccountInactive.
func (a *Account) Close() {
	a.Status = AccountStatusClosed
}

// Clone returns a deep copy. Repositories hand out clones so callers cannot
// mutate shared state outside an account lock.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Transactions = append([]Transaction(nil), a.Transactions...)
	return &cp
}
