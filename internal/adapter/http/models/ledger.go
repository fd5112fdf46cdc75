package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/shopspring/decimal"
)

type PostFundsRequest struct {
	AccountID string          `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
}

func (r PostFundsRequest) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return fmt.Errorf("accountId is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be greater than zero")
	}
	return nil
}

type TransferRequest struct {
	SourceAccountID      string          `json:"sourceAccountId"`
	DestinationAccountID string          `json:"destinationAccountId"`
	Amount               decimal.Decimal `json:"amount"`
}

func (r TransferRequest) Validate() error {
	source := strings.TrimSpace(r.SourceAccountID)
	dest := strings.TrimSpace(r.DestinationAccountID)
	if source == "" {
		return fmt.Errorf("sourceAccountId is required")
	}
	if dest == "" {
		return fmt.Errorf("destinationAccountId is required")
	}
	if source == dest {
		return fmt.Errorf("sourceAccountId and destinationAccountId cannot be the same")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be greater than zero")
	}
	return nil
}

type TransactionResponse struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	Amount               string `json:"amount"`
	AccountID            string `json:"accountId"`
	SourceAccountID      string `json:"sourceAccountId,omitempty"`
	DestinationAccountID string `json:"destinationAccountId,omitempty"`
	Timestamp            string `json:"timestamp"`
}

func NewTransactionResponse(tx domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                   tx.ID,
		Type:                 string(tx.Type),
		Amount:               tx.Amount.StringFixed(2),
		AccountID:            tx.AccountID,
		SourceAccountID:      tx.SourceAccountID,
		DestinationAccountID: tx.DestinationAccountID,
		Timestamp:            tx.Timestamp.Format(time.RFC3339Nano),
	}
}

func NewTransactionResponses(txs []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, NewTransactionResponse(tx))
	}
	return out
}
