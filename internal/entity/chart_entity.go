package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChartConfiguration is the single current visualization spec for a session.
// Options and Filters carry arbitrary JSON-shaped values; the mapper owns the
// serialization to the stored JSON columns.
type ChartConfiguration struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	ChartType     string
	XAxisField    *string
	YAxisField    *string
	SeriesField   *string
	SizeField     *string
	ColorField    *string
	Options       map[string]interface{}
	Filters       map[string]interface{}
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// ChartType is a reference lookup row, not session-owned.
type ChartType struct {
	Id          uuid.UUID
	Code        string
	Name        string
	Description string
	CreatedAt   time.Time
	IsActive    bool
}
