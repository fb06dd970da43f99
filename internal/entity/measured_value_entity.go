package entity

import (
	"time"

	"github.com/google/uuid"
)

type MeasuredValue struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Name          string
	Description   *string
	Query         string
	CreatedAt     time.Time
}
