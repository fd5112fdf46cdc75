package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// NotificationTier classifies an account for notification fan-out: the tier
// decides which delivery sinks receive its posted transactions.
type NotificationTier string

const (
	TierDefault  NotificationTier = "default"
	TierStandard NotificationTier = "standard"
	TierPremium  NotificationTier = "premium"
)

// TransactionPosted is published after every successful ledger mutation.
// For a transfer, one event is published per leg.
type TransactionPosted struct {
	Transaction Transaction
	AccountID   string
	Kind        AccountKind
	Tier        NotificationTier
	Balance     decimal.Decimal
}

// EventDispatcher fans a posted transaction out to notification sinks.
// Implementations must never let a delivery failure reach the caller; a
// failed notification cannot roll back a completed ledger mutation.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event TransactionPosted)
}
