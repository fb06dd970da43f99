package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionWorkflow struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"` // 1:1 with chat_sessions
	HasReportName      bool      `gorm:"not null;default:false"`
	HasMessageQuery    bool      `gorm:"not null;default:false"`
	HasChartConfigured bool      `gorm:"not null;default:false"`
	IsPublished        bool      `gorm:"not null;default:false"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (SessionWorkflow) TableName() string {
	return "session_workflows"
}
