package domain

import "github.com/shopspring/decimal"

const (
	LimitBoundaryDaily   = "daily"
	LimitBoundaryMonthly = "monthly"
)

// TransactionLimits holds an account's configured ceilings. The invariant
// Daily <= Monthly is enforced when limits are updated.
type TransactionLimits struct {
	Daily   decimal.Decimal
	Monthly decimal.Decimal
}

// LimitUsage holds the running totals counted against the limits. Counters
// only move forward as transactions are accepted; they are zeroed by the
// explicit reset operations, never by the passage of time within a request.
type LimitUsage struct {
	Daily   decimal.Decimal
	Monthly decimal.Decimal
}
