// Package notification holds the delivery sinks fanned out to by the
// notification service. Real email/SMS delivery lives behind external
// providers; these adapters record what would be sent.
package notification

import (
	"context"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/genericodex/Group5-SWConstruction/internal/logger"
)

type LogSink struct{}

func NewLogSink() LogSink { return LogSink{} }

func (LogSink) Name() string { return "log" }

func (LogSink) Notify(_ context.Context, event domain.TransactionPosted) error {
	logger.Info("transaction notification", logger.Fields{
		"accountId":     event.AccountID,
		"transactionId": event.Transaction.ID,
		"type":          string(event.Transaction.Type),
		"amount":        event.Transaction.Amount.String(),
		"balance":       event.Balance.String(),
	})
	return nil
}

type EmailSink struct {
	sender string
}

func NewEmailSink(sender string) *EmailSink {
	return &EmailSink{sender: sender}
}

func (*EmailSink) Name() string { return "email" }

func (s *EmailSink) Notify(_ context.Context, event domain.TransactionPosted) error {
	logger.Info("email notification queued", logger.Fields{
		"sender":        s.sender,
		"accountId":     event.AccountID,
		"transactionId": event.Transaction.ID,
		"type":          string(event.Transaction.Type),
		"amount":        event.Transaction.Amount.String(),
	})
	return nil
}

type SMSSink struct{}

func NewSMSSink() SMSSink { return SMSSink{} }

func (SMSSink) Name() string { return "sms" }

func (SMSSink) Notify(_ context.Context, event domain.TransactionPosted) error {
	logger.Info("sms notification queued", logger.Fields{
		"accountId":     event.AccountID,
		"transactionId": event.Transaction.ID,
		"type":          string(event.Transaction.Type),
		"amount":        event.Transaction.Amount.String(),
	})
	return nil
}
