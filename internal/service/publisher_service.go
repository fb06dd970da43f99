package service

import (
	"context"
	"encoding/json"
	"time"

	"report-service-be/internal/pkg/logger"
	"report-service-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// workflowEventEnvelope is the wire form shared by publisher and consumer.
type workflowEventEnvelope struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type IPublisherService interface {
	PublishWorkflowEvent(ctx context.Context, evt events.Event) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

func (s *publisherService) PublishWorkflowEvent(ctx context.Context, evt events.Event) error {
	envelope := workflowEventEnvelope{
		Type:       evt.EventType(),
		Payload:    evt.Payload(),
		OccurredAt: evt.Timestamp(),
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.logger.Warn("Publisher", "Failed to publish workflow event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
		return err
	}
	return nil
}
