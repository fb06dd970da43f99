package model

import (
	"time"

	"github.com/google/uuid"
)

type MeasuredValue struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(200);not null"`
	Description   *string   `gorm:"type:varchar(500)"`
	Query         string    `gorm:"type:text;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (MeasuredValue) TableName() string {
	return "measured_values"
}
