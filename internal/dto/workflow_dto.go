package dto

import (
	"time"

	"github.com/google/uuid"
)

type WorkflowStatusResponse struct {
	SessionId          uuid.UUID `json:"session_id"`
	HasReportName      bool      `json:"has_report_name"`
	HasMessageQuery    bool      `json:"has_message_query"`
	HasChartConfigured bool      `json:"has_chart_configured"`
	IsPublished        bool      `json:"is_published"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// WorkflowUpdateMessage is the payload pushed over the websocket hub and the
// event bus when a session's workflow advances.
type WorkflowUpdateMessage struct {
	SessionId  uuid.UUID `json:"session_id"`
	UserId     string    `json:"user_id"`
	Step       string    `json:"step"`
	ReportName string    `json:"report_name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
