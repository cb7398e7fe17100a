package service

import (
	"context"

	"coreclad-be/internal/pkg/logger"
	"coreclad-be/pkg/events"
	pktNats "coreclad-be/pkg/nats"
)

const auditDurableName = "coreclad-audit-log"

// eventSubscriber is the part of the NATS subscriber the audit trail needs.
type eventSubscriber interface {
	Subscribe(ctx context.Context, eventType, durableName string, handler pktNats.EventHandler) error
}

// AuditService writes every admin event from the stream into the system log.
type AuditService struct {
	subscriber eventSubscriber
	logger     logger.ILogger
}

func NewAuditService(sub *pktNats.Subscriber, log logger.ILogger) *AuditService {
	s := &AuditService{logger: log}
	if sub != nil {
		s.subscriber = sub
	}
	return s
}

func (s *AuditService) Start(ctx context.Context) {
	if s.subscriber == nil {
		s.logger.Warn("AUDIT", "No event stream configured, audit trail disabled", nil)
		return
	}

	if err := s.subscriber.Subscribe(ctx, "*", auditDurableName, s.handleEvent); err != nil {
		s.logger.Error("AUDIT", "Failed to subscribe to admin events", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("AUDIT", "Listening for admin events", nil)
}

func (s *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	details := map[string]interface{}{
		"event":       event.EventType(),
		"occurred_at": event.Timestamp(),
	}
	for k, v := range event.Payload() {
		details[k] = v
	}

	switch event.EventType() {
	case events.TypeProductsDeleted:
		s.logger.Warn("AUDIT", "Catalog products deleted", details)
	default:
		s.logger.Info("AUDIT", "Admin event", details)
	}
	return nil
}
