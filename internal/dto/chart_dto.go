package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateChartConfigurationRequest struct {
	SessionId   uuid.UUID              `json:"session_id" validate:"required"`
	ChartType   string                 `json:"chart_type" validate:"required,max=50"`
	XAxisField  *string                `json:"x_axis_field" validate:"omitempty,max=100"`
	YAxisField  *string                `json:"y_axis_field" validate:"omitempty,max=100"`
	SeriesField *string                `json:"series_field" validate:"omitempty,max=100"`
	SizeField   *string                `json:"size_field" validate:"omitempty,max=100"`
	ColorField  *string                `json:"color_field" validate:"omitempty,max=100"`
	Options     map[string]interface{} `json:"options"`
	Filters     map[string]interface{} `json:"filters"`
}

type ChartConfigurationResponse struct {
	Id          uuid.UUID              `json:"id"`
	SessionId   uuid.UUID              `json:"session_id"`
	ChartType   string                 `json:"chart_type"`
	XAxisField  *string                `json:"x_axis_field"`
	YAxisField  *string                `json:"y_axis_field"`
	SeriesField *string                `json:"series_field"`
	SizeField   *string                `json:"size_field"`
	ColorField  *string                `json:"color_field"`
	Options     map[string]interface{} `json:"options"`
	Filters     map[string]interface{} `json:"filters"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   *time.Time             `json:"updated_at"`
	Workflow    *WorkflowStatusResponse `json:"workflow"`
}

type ChartTypeResponse struct {
	Id          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
