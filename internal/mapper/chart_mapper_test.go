package mapper

import (
	"testing"
	"time"

	"report-service-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartConfigurationRoundTrip(t *testing.T) {
	m := NewChartMapper()

	x := "month"
	now := time.Now().Truncate(time.Second)
	source := &entity.ChartConfiguration{
		Id:            uuid.New(),
		ChatSessionId: uuid.New(),
		ChartType:     "bar",
		XAxisField:    &x,
		Options: map[string]interface{}{
			"stacked": true,
			"limit":   float64(10),
			"palette": []interface{}{"red", "blue"},
		},
		Filters: map[string]interface{}{
			"region": "emea",
		},
		CreatedAt: now,
	}

	stored := m.ChartConfigurationToModel(source)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.OptionsJson)

	back := m.ChartConfigurationToEntity(stored)
	require.NotNil(t, back)
	assert.Equal(t, source.Id, back.Id)
	assert.Equal(t, "bar", back.ChartType)
	require.NotNil(t, back.XAxisField)
	assert.Equal(t, "month", *back.XAxisField)
	assert.Equal(t, source.Options, back.Options)
	assert.Equal(t, source.Filters, back.Filters)
	assert.Nil(t, back.UpdatedAt, "zero model time maps to nil")
}

func TestChartConfigurationNilMaps(t *testing.T) {
	m := NewChartMapper()

	source := &entity.ChartConfiguration{
		Id:            uuid.New(),
		ChatSessionId: uuid.New(),
		ChartType:     "table",
	}

	stored := m.ChartConfigurationToModel(source)
	assert.Nil(t, stored.OptionsJson)
	assert.Nil(t, stored.FiltersJson)

	back := m.ChartConfigurationToEntity(stored)
	assert.Nil(t, back.Options)
	assert.Nil(t, back.Filters)
}

func TestChartMapperNilInput(t *testing.T) {
	m := NewChartMapper()
	assert.Nil(t, m.ChartConfigurationToEntity(nil))
	assert.Nil(t, m.ChartConfigurationToModel(nil))
	assert.Nil(t, m.ChartTypeToEntity(nil))
	assert.Nil(t, m.ChartTypeToModel(nil))
}
