package events

import (
	"context"
	"time"

	"coreclad-be/internal/pkg/logger"
	pkgEvents "coreclad-be/pkg/events"
	pktNats "coreclad-be/pkg/nats"
	"coreclad-be/pkg/session"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for admin operations
type Publisher interface {
	PublishAdminLogin(ctx context.Context, identity session.Identity, clientID string)
	PublishAdminLogout(ctx context.Context, identity session.Identity, clientID string)
	PublishProductsDeleted(ctx context.Context, actor session.Identity, productIDs []uuid.UUID, removed int)
}

// eventSink is satisfied by *pktNats.Publisher.
type eventSink interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// NatsPublisher implements Publisher using NATS. With no connection it drops events.
type NatsPublisher struct {
	publisher eventSink
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	p := &NatsPublisher{logger: logger}
	if publisher != nil {
		p.publisher = publisher
	}
	return p
}

func (p *NatsPublisher) PublishAdminLogin(ctx context.Context, identity session.Identity, clientID string) {
	p.publish(ctx, pkgEvents.TypeAdminLogin, map[string]interface{}{
		"account_id":  identity.Id,
		"email":       identity.Email,
		"role":        identity.Role,
		"client_id":   clientID,
		"entity_type": "admin_user",
		"entity_id":   identity.Id,
	})
}

func (p *NatsPublisher) PublishAdminLogout(ctx context.Context, identity session.Identity, clientID string) {
	p.publish(ctx, pkgEvents.TypeAdminLogout, map[string]interface{}{
		"account_id":  identity.Id,
		"email":       identity.Email,
		"client_id":   clientID,
		"entity_type": "admin_user",
		"entity_id":   identity.Id,
	})
}

func (p *NatsPublisher) PublishProductsDeleted(ctx context.Context, actor session.Identity, productIDs []uuid.UUID, removed int) {
	ids := make([]string, len(productIDs))
	for i, id := range productIDs {
		ids[i] = id.String()
	}
	p.publish(ctx, pkgEvents.TypeProductsDeleted, map[string]interface{}{
		"product_ids": ids,
		"removed":     removed,
		"actor_id":    actor.Id,
		"actor_email": actor.Email,
		"entity_type": "product",
	})
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}
