package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	Role          string    `gorm:"type:varchar(50);not null;check:chk_chat_messages_role,role IN ('user','assistant')"`
	Message       string    `gorm:"type:text;not null"`
	GeneratedSql  *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
