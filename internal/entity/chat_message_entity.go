package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Message       string
	GeneratedSql  *string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
