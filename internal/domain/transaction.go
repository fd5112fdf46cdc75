package domain

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Transaction is an immutable ledger entry. It is only created through
// NewTransaction or NewTransferTransaction so that an entry with a
// non-positive amount, or a transfer leg missing either account reference,
// can never exist.
type Transaction struct {
	ID                   string
	Type                 TransactionType
	Amount               decimal.Decimal
	AccountID            string
	SourceAccountID      string
	DestinationAccountID string
	Timestamp            time.Time
}

var transactionRefCounter uint32

// NewTransactionID returns a 30-digit reference built from a UTC timestamp
// and an atomic counter. References are strictly increasing within a process.
func NewTransactionID() string {
	now := time.Now().UTC()
	base := now.Format("20060102150405") + fmt.Sprintf("%09d", now.Nanosecond())
	counter := atomic.AddUint32(&transactionRefCounter, 1) % 10000000
	return base + fmt.Sprintf("%07d", counter)
}

func NewTransaction(txType TransactionType, amount decimal.Decimal, accountID string) (Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, ErrInvalidAmount
	}
	if strings.TrimSpace(accountID) == "" {
		return Transaction{}, fmt.Errorf("accountId is required")
	}
	if txType == TransactionTypeTransfer {
		return Transaction{}, fmt.Errorf("transfer entries require source and destination accounts")
	}

	return Transaction{
		ID:        NewTransactionID(),
		Type:      txType,
		Amount:    amount,
		AccountID: accountID,
		Timestamp: time.Now().UTC(),
	}, nil
}

// NewTransferTransaction builds one leg of a transfer. accountID names the
// account that owns the entry; both sides of the pair are always recorded.
func NewTransferTransaction(amount decimal.Decimal, accountID, sourceAccountID, destinationAccountID string) (Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, ErrInvalidAmount
	}
	if strings.TrimSpace(accountID) == "" {
		return Transaction{}, fmt.Errorf("accountId is required")
	}
	if strings.TrimSpace(sourceAccountID) == "" || strings.TrimSpace(destinationAccountID) == "" {
		return Transaction{}, fmt.Errorf("transfer entries require source and destination accounts")
	}

	return Transaction{
		ID:                   NewTransactionID(),
		Type:                 TransactionTypeTransfer,
		Amount:               amount,
		AccountID:            accountID,
		SourceAccountID:      sourceAccountID,
		DestinationAccountID: destinationAccountID,
		Timestamp:            time.Now().UTC(),
	}, nil
}

// WithTimestamp returns a copy of the entry carrying the supplied posting
// time, for back-dated postings.
func (t Transaction) WithTimestamp(ts time.Time) Transaction {
	t.Timestamp = ts
	return t
}
