package service

import (
	"context"
	"encoding/json"

	"report-service-be/internal/constant"
	"report-service-be/internal/dto"
	"report-service-be/internal/pkg/logger"
	"report-service-be/internal/pkg/mailer"
	"report-service-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// WorkflowNotifier pushes a workflow update to a user's live connections.
type WorkflowNotifier interface {
	SendToUser(userId string, payload interface{})
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	notifier     WorkflowNotifier
	emailService mailer.IEmailService
	notifyEmail  string
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	notifier WorkflowNotifier,
	emailService mailer.IEmailService,
	notifyEmail string,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		notifier:     notifier,
		emailService: emailService,
		notifyEmail:  notifyEmail,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var envelope workflowEventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal workflow event", map[string]interface{}{
			"error": err.Error(),
		})
		// malformed payloads are acked so they do not retry forever
		msg.Ack()
		return
	}

	sessionId, _ := uuid.Parse(stringField(envelope.Payload, "session_id"))
	userId := stringField(envelope.Payload, "user_id")
	reportName := stringField(envelope.Payload, "report_name")

	step := stringField(envelope.Payload, "step")
	if envelope.Type == events.TypeReportPublished {
		step = constant.WorkflowStepPublish
	}

	cs.logger.Info("Consumer", "Workflow event received", map[string]interface{}{
		"type":       envelope.Type,
		"session_id": sessionId.String(),
		"step":       step,
	})

	if cs.notifier != nil && userId != "" {
		cs.notifier.SendToUser(userId, dto.WorkflowUpdateMessage{
			SessionId:  sessionId,
			UserId:     userId,
			Step:       step,
			ReportName: reportName,
			OccurredAt: envelope.OccurredAt,
		})
	}

	if envelope.Type == events.TypeReportPublished && cs.notifyEmail != "" && cs.emailService != nil {
		if err := cs.emailService.SendReportPublished(cs.notifyEmail, reportName, sessionId.String()); err != nil {
			cs.logger.Warn("Consumer", "Publish notification email failed", map[string]interface{}{
				"session_id": sessionId.String(),
				"error":      err.Error(),
			})
		}
	}

	msg.Ack()
}

func stringField(payload map[string]interface{}, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
