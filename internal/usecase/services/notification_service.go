package services

import (
	"context"
	"sync"

	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/genericodex/Group5-SWConstruction/internal/logger"
)

// Sink delivers a posted-transaction notification over one channel (log,
// email, SMS). Name identifies the sink so tier registration can be
// deduplicated: registering the same sink twice does not double deliveries.
type Sink interface {
	Name() string
	Notify(ctx context.Context, event domain.TransactionPosted) error
}

// NotificationService fans TransactionPosted events out to the sinks
// registered for the account's tier. Delivery failures are logged and
// swallowed; a failed email can never roll back or fail a ledger mutation.
type NotificationService struct {
	mu    sync.RWMutex
	tiers map[domain.NotificationTier][]Sink
}

func NewNotificationService() *NotificationService {
	return &NotificationService{tiers: make(map[domain.NotificationTier][]Sink)}
}

// RegisterSink attaches a sink to a tier. Registration is additive and
// idempotent by sink name.
func (s *NotificationService) RegisterSink(tier domain.NotificationTier, sink Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tiers[tier] {
		if existing.Name() == sink.Name() {
			return
		}
	}
	s.tiers[tier] = append(s.tiers[tier], sink)
}

func (s *NotificationService) Dispatch(ctx context.Context, event domain.TransactionPosted) {
	tier := event.Tier
	if tier == "" {
		tier = domain.TierDefault
	}

	s.mu.RLock()
	sinks := append([]Sink(nil), s.tiers[tier]...)
	s.mu.RUnlock()

	for _, sink := range sinks {
		if err := sink.Notify(ctx, event); err != nil {
			logger.Error("notification service sink delivery failed", err, logger.Fields{
				"sink":          sink.Name(),
				"tier":          string(tier),
				"accountId":     event.AccountID,
				"transactionId": event.Transaction.ID,
			})
		}
	}
}
