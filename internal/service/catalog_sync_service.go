package service

import (
	"context"
	"encoding/json"

	"coreclad-be/internal/dto"
	"coreclad-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	CatalogSyncTopic    = "catalog.products_deleted"
	catalogClusterEvent = "coreclad:catalog_events"
)

// ICatalogSyncService keeps every live product view consistent after a bulk
// delete made through another client.
type ICatalogSyncService interface {
	Announce(ctx context.Context, originClientID string, ids []uuid.UUID) error
	Consume(ctx context.Context) error
}

type catalogSyncService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	registry   *ClientRegistry
	rdb        *redis.Client
	instanceID string
	logger     logger.ILogger
}

// NewCatalogSyncService wires the local bus. rdb may be nil, in which case
// deletions are not relayed to other server instances.
func NewCatalogSyncService(
	pubSub *gochannel.GoChannel,
	topicName string,
	registry *ClientRegistry,
	rdb *redis.Client,
	logger logger.ILogger,
) ICatalogSyncService {
	return &catalogSyncService{
		pubSub:     pubSub,
		topicName:  topicName,
		registry:   registry,
		rdb:        rdb,
		instanceID: watermill.NewShortUUID(),
		logger:     logger,
	}
}

func (s *catalogSyncService) Announce(ctx context.Context, originClientID string, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	payload, err := json.Marshal(dto.ProductsDeletedMessage{
		OriginClientId: originClientID,
		InstanceId:     s.instanceID,
		ProductIds:     ids,
	})
	if err != nil {
		return err
	}

	if err := s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		return err
	}

	if s.rdb != nil {
		if err := s.rdb.Publish(ctx, catalogClusterEvent, payload).Err(); err != nil {
			s.logger.Warn("CATALOG_SYNC", "Cluster relay publish failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

func (s *catalogSyncService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	if s.rdb != nil {
		go s.relayFromCluster(ctx)
	}
	return nil
}

func (s *catalogSyncService) processMessage(msg *message.Message) {
	var payload dto.ProductsDeletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("CATALOG_SYNC", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	touched := 0
	s.registry.Each(func(c *AdminClient) {
		if c.ID == payload.OriginClientId {
			return
		}
		c.View.Forget(payload.ProductIds...)
		touched++
	})

	s.logger.Debug("CATALOG_SYNC", "Deleted products dropped from views", map[string]interface{}{
		"products": len(payload.ProductIds),
		"views":    touched,
	})
	msg.Ack()
}

// relayFromCluster feeds deletions announced by other instances into the local bus.
func (s *catalogSyncService) relayFromCluster(ctx context.Context) {
	pubsub := s.rdb.Subscribe(ctx, catalogClusterEvent)
	go func() {
		<-ctx.Done()
		pubsub.Close()
	}()

	for msg := range pubsub.Channel() {
		var payload dto.ProductsDeletedMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			s.logger.Warn("CATALOG_SYNC", "Cluster message parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.InstanceId == s.instanceID {
			continue
		}
		if err := s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), []byte(msg.Payload))); err != nil {
			s.logger.Error("CATALOG_SYNC", "Failed to republish cluster event", map[string]interface{}{"error": err.Error()})
		}
	}
}
