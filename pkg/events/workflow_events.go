package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeSessionCreated        = "SESSION_CREATED"
	TypeWorkflowStepCompleted = "WORKFLOW_STEP_COMPLETED"
	TypeReportPublished       = "REPORT_PUBLISHED"
)

func NewSessionCreated(sessionId uuid.UUID, userId string) Event {
	return BaseEvent{
		Type: TypeSessionCreated,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"user_id":    userId,
		},
		OccurredAt: time.Now(),
	}
}

// NewWorkflowStepCompleted marks a workflow boolean transitioning to true.
// step is one of the workflow step codes (report_name, message_query,
// chart_configuration, publish).
func NewWorkflowStepCompleted(sessionId uuid.UUID, userId, step string) Event {
	return BaseEvent{
		Type: TypeWorkflowStepCompleted,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"user_id":    userId,
			"step":       step,
		},
		OccurredAt: time.Now(),
	}
}

func NewReportPublished(sessionId uuid.UUID, userId, reportName string) Event {
	return BaseEvent{
		Type: TypeReportPublished,
		Data: map[string]interface{}{
			"session_id":  sessionId.String(),
			"user_id":     userId,
			"report_name": reportName,
		},
		OccurredAt: time.Now(),
	}
}
