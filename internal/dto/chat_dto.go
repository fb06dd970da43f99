package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	ReportName string `json:"report_name"`
}

type CreateSessionResponse struct {
	Id         uuid.UUID               `json:"id"`
	ReportName *string                 `json:"report_name"`
	CreatedAt  time.Time               `json:"created_at"`
	Workflow   *WorkflowStatusResponse `json:"workflow"`
}

type SessionSummaryResponse struct {
	Id         uuid.UUID  `json:"id"`
	ReportName *string    `json:"report_name"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type SessionResponse struct {
	Id             uuid.UUID               `json:"id"`
	UserId         string                  `json:"user_id"`
	ReportName     *string                 `json:"report_name"`
	IsActive       bool                    `json:"is_active"`
	CreatedAt      time.Time               `json:"created_at"`
	Messages       []*MessageResponse      `json:"messages"`
	MeasuredValues []*MeasuredValueResponse `json:"measured_values"`
}

type MessageResponse struct {
	Id           uuid.UUID `json:"id"`
	Role         string    `json:"role"`
	Message      string    `json:"message"`
	GeneratedSql *string   `json:"generated_sql"`
	CreatedAt    time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Message   string    `json:"message" validate:"required"`
}

type ChatResponse struct {
	SessionId uuid.UUID               `json:"session_id"`
	Sent      *MessageResponse        `json:"sent"`
	Reply     *MessageResponse        `json:"reply"`
	Workflow  *WorkflowStatusResponse `json:"workflow"`
}

type UpdateGeneratedSqlRequest struct {
	SessionId    uuid.UUID `json:"session_id" validate:"required"`
	GeneratedSql string    `json:"generated_sql" validate:"required"`
}

// UpdateMessageOrSqlRequest updates whichever of the two fields is provided on
// the latest assistant message; at least one must be non-nil.
type UpdateMessageOrSqlRequest struct {
	SessionId    uuid.UUID `json:"session_id" validate:"required"`
	Message      *string   `json:"message"`
	GeneratedSql *string   `json:"generated_sql"`
}

type UpdateReportNameRequest struct {
	SessionId  uuid.UUID `json:"session_id" validate:"required"`
	ReportName string    `json:"report_name" validate:"required"`
}

type AddMeasuredValueRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Query       string  `json:"query" validate:"required"`
}

type MeasuredValueResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Query       string    `json:"query"`
	CreatedAt   time.Time `json:"created_at"`
}

type NextStepResponse struct {
	Step        string `json:"step"`
	Description string `json:"description"`
}
