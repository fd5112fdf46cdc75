package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountInactive     = errors.New("account is not active")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrTransferSameAccount = errors.New("source and destination accounts cannot be the same")
	ErrLimitExceeded       = errors.New("transaction limit exceeded")
	ErrInvalidLimit        = errors.New("limits must be positive values")
	ErrRateNotFound        = errors.New("interest rate not found")
	ErrLockTimeout         = errors.New("timed out waiting for account lock")
	ErrRecordNotFound      = errors.New("record not found")
)

// LimitExceededError reports which boundary a prospective transaction would
// breach and the totals involved. It unwraps to ErrLimitExceeded so callers
// can match on the kind without inspecting the struct.
type LimitExceededError struct {
	Boundary string
	Usage    decimal.Decimal
	Amount   decimal.Decimal
	Limit    decimal.Decimal
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("transaction exceeds %s limit: %s > %s",
		e.Boundary, e.Usage.Add(e.Amount).String(), e.Limit.String())
}

func (e *LimitExceededError) Unwrap() error {
	return ErrLimitExceeded
}
