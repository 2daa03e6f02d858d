package event

import (
	"context"

	"github.com/cajachica/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditSubscriber writes every domain event to the structured log. It gives
// operators a trail of sequence commits, record changes and status flips
// without a dedicated audit table.
type AuditSubscriber struct {
	logger *zap.Logger
}

var _ shared.EventHandler = (*AuditSubscriber)(nil)

// NewAuditSubscriber creates an AuditSubscriber
func NewAuditSubscriber(logger *zap.Logger) *AuditSubscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditSubscriber{logger: logger.Named("audit")}
}

// EventTypes returns an empty slice, subscribing to all events
func (s *AuditSubscriber) EventTypes() []string {
	return nil
}

// Handle logs the event
func (s *AuditSubscriber) Handle(_ context.Context, event shared.DomainEvent) error {
	s.logger.Info("domain event",
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}
