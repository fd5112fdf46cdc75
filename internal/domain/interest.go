package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

var daysPerYear = decimal.NewFromInt(365)

// InterestStrategy computes accrued interest for a balance over a date range.
type InterestStrategy interface {
	CalculateInterest(ctx context.Context, balance decimal.Decimal, start, end time.Time) (decimal.Decimal, error)
}

// FixedRateStrategy applies a constant annual rate:
// balance * (annualRate / 365) * days. A period where end <= start yields zero.
type FixedRateStrategy struct {
	AnnualRate decimal.Decimal
}

func NewFixedRateStrategy(annualRate decimal.Decimal) FixedRateStrategy {
	return FixedRateStrategy{AnnualRate: annualRate}
}

func (s FixedRateStrategy) CalculateInterest(_ context.Context, balance decimal.Decimal, start, end time.Time) (decimal.Decimal, error) {
	return interestFor(balance, s.AnnualRate, start, end), nil
}

// DynamicRateStrategy resolves the annual rate per account kind from a rate
// repository at calculation time, so rate changes apply without re-wiring
// accounts.
type DynamicRateStrategy struct {
	kind  AccountKind
	rates InterestRateRepository
}

func NewDynamicRateStrategy(kind AccountKind, rates InterestRateRepository) DynamicRateStrategy {
	return DynamicRateStrategy{kind: kind, rates: rates}
}

func (s DynamicRateStrategy) CalculateInterest(ctx context.Context, balance decimal.Decimal, start, end time.Time) (decimal.Decimal, error) {
	rate, err := s.rates.GetRate(ctx, s.kind)
	if err != nil {
		return decimal.Zero, err
	}
	return interestFor(balance, rate, start, end), nil
}

func interestFor(balance, annualRate decimal.Decimal, start, end time.Time) decimal.Decimal {
	if !end.After(start) {
		return decimal.Zero
	}
	days := decimal.NewFromInt(int64(end.Sub(start).Hours() / 24))
	return balance.Mul(annualRate).Div(daysPerYear).Mul(days)
}
