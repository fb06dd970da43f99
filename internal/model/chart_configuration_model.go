package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChartConfiguration struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"` // one configuration per session
	ChartType     string         `gorm:"type:varchar(50);not null"`
	XAxisField    *string        `gorm:"type:varchar(100)"`
	YAxisField    *string        `gorm:"type:varchar(100)"`
	SeriesField   *string        `gorm:"type:varchar(100)"`
	SizeField     *string        `gorm:"type:varchar(100)"`
	ColorField    *string        `gorm:"type:varchar(100)"`
	OptionsJson   datatypes.JSON `gorm:"type:jsonb"`
	FiltersJson   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (ChartConfiguration) TableName() string {
	return "chart_configurations"
}
