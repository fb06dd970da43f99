package model

import (
	"time"

	"github.com/google/uuid"
)

type ChartType struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code        string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string    `gorm:"type:varchar(50);not null"`
	Description string    `gorm:"type:varchar(100);not null"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (ChartType) TableName() string {
	return "chart_types"
}
