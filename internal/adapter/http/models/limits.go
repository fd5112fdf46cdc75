package models

import (
	"fmt"
	"strings"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/shopspring/decimal"
)

type UpdateLimitsRequest struct {
	DailyLimit   decimal.Decimal `json:"dailyLimit"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
}

func (r UpdateLimitsRequest) Validate() error {
	if r.DailyLimit.LessThanOrEqual(decimal.Zero) || r.MonthlyLimit.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("dailyLimit and monthlyLimit must be greater than zero")
	}
	if r.DailyLimit.GreaterThan(r.MonthlyLimit) {
		return fmt.Errorf("dailyLimit cannot exceed monthlyLimit")
	}
	return nil
}

type LimitStatusResponse struct {
	AccountID    string `json:"accountId"`
	DailyLimit   string `json:"dailyLimit"`
	MonthlyLimit string `json:"monthlyLimit"`
	DailyUsage   string `json:"dailyUsage"`
	MonthlyUsage string `json:"monthlyUsage"`
}

func NewLimitStatusResponse(accountID string, limits domain.TransactionLimits, usage domain.LimitUsage) LimitStatusResponse {
	return LimitStatusResponse{
		AccountID:    strings.TrimSpace(accountID),
		DailyLimit:   limits.Daily.StringFixed(2),
		MonthlyLimit: limits.Monthly.StringFixed(2),
		DailyUsage:   usage.Daily.StringFixed(2),
		MonthlyUsage: usage.Monthly.StringFixed(2),
	}
}
