package mapper

import (
	"encoding/json"
	"time"

	"report-service-be/internal/entity"
	"report-service-be/internal/model"

	"gorm.io/datatypes"
)

// ChartMapper converts chart rows, serializing the option/filter maps to the
// JSON columns on the way in and materializing them back on the way out.
type ChartMapper struct{}

func NewChartMapper() *ChartMapper {
	return &ChartMapper{}
}

func (m *ChartMapper) ChartConfigurationToEntity(c *model.ChartConfiguration) *entity.ChartConfiguration {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChartConfiguration{
		Id:            c.Id,
		ChatSessionId: c.ChatSessionId,
		ChartType:     c.ChartType,
		XAxisField:    c.XAxisField,
		YAxisField:    c.YAxisField,
		SeriesField:   c.SeriesField,
		SizeField:     c.SizeField,
		ColorField:    c.ColorField,
		Options:       decodeJSONMap(c.OptionsJson),
		Filters:       decodeJSONMap(c.FiltersJson),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *ChartMapper) ChartConfigurationToModel(c *entity.ChartConfiguration) *model.ChartConfiguration {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.ChartConfiguration{
		Id:            c.Id,
		ChatSessionId: c.ChatSessionId,
		ChartType:     c.ChartType,
		XAxisField:    c.XAxisField,
		YAxisField:    c.YAxisField,
		SeriesField:   c.SeriesField,
		SizeField:     c.SizeField,
		ColorField:    c.ColorField,
		OptionsJson:   encodeJSONMap(c.Options),
		FiltersJson:   encodeJSONMap(c.Filters),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *ChartMapper) ChartTypeToEntity(t *model.ChartType) *entity.ChartType {
	if t == nil {
		return nil
	}
	return &entity.ChartType{
		Id:          t.Id,
		Code:        t.Code,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
	}
}

func (m *ChartMapper) ChartTypeToModel(t *entity.ChartType) *model.ChartType {
	if t == nil {
		return nil
	}
	return &model.ChartType{
		Id:          t.Id,
		Code:        t.Code,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
	}
}

func encodeJSONMap(m map[string]interface{}) datatypes.JSON {
	if m == nil {
		return nil
	}
	// map keys and JSON-shaped values never fail to marshal
	data, _ := json.Marshal(m)
	return datatypes.JSON(data)
}

func decodeJSONMap(data datatypes.JSON) map[string]interface{} {
	if len(data) == 0 {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}
