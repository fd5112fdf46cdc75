package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/shopspring/decimal"
)

type OpenAccountRequest struct {
	Kind           string          `json:"kind"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
	Tier           string          `json:"tier"`
}

func (r OpenAccountRequest) Validate() error {
	kind := strings.ToUpper(strings.TrimSpace(r.Kind))
	if kind != string(domain.AccountKindChecking) && kind != string(domain.AccountKindSavings) {
		return fmt.Errorf("kind must be CHECKING or SAVINGS")
	}
	if r.InitialDeposit.LessThan(decimal.Zero) {
		return fmt.Errorf("initialDeposit cannot be negative")
	}
	switch strings.ToLower(strings.TrimSpace(r.Tier)) {
	case "", string(domain.TierDefault), string(domain.TierStandard), string(domain.TierPremium):
		return nil
	default:
		return fmt.Errorf("tier must be default, standard or premium")
	}
}

func (r OpenAccountRequest) AccountKind() domain.AccountKind {
	return domain.AccountKind(strings.ToUpper(strings.TrimSpace(r.Kind)))
}

func (r OpenAccountRequest) NotificationTier() domain.NotificationTier {
	tier := strings.ToLower(strings.TrimSpace(r.Tier))
	if tier == "" {
		return domain.TierDefault
	}
	return domain.NotificationTier(tier)
}

type AccountResponse struct {
	ID              string `json:"id"`
	Kind            string `json:"kind"`
	Balance         string `json:"balance"`
	Status          string `json:"status"`
	Tier            string `json:"tier"`
	AccruedInterest string `json:"accruedInterest"`
	CreatedAt       string `json:"createdAt"`
}

func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:              account.ID,
		Kind:            string(account.Kind),
		Balance:         account.Balance.StringFixed(2),
		Status:          string(account.Status),
		Tier:            string(account.Tier),
		AccruedInterest: account.AccruedInterest.StringFixed(2),
		CreatedAt:       account.CreatedAt.Format(time.RFC3339),
	}
}
