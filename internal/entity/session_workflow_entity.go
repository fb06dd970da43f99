package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionWorkflow is the per-session progress record. The booleans are a
// denormalized cache of session/message/chart state and are updated in the
// same transaction as the write that changes them.
type SessionWorkflow struct {
	Id                 uuid.UUID
	ChatSessionId      uuid.UUID
	HasReportName      bool
	HasMessageQuery    bool
	HasChartConfigured bool
	IsPublished        bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ReadyToPublish reports whether the publish gate is satisfied.
func (w *SessionWorkflow) ReadyToPublish() bool {
	return w.HasReportName && w.HasMessageQuery && w.HasChartConfigured
}
