package implementation

import (
	"context"
	"errors"

	"report-service-be/internal/apperror"
	"report-service-be/internal/entity"
	"report-service-be/internal/mapper"
	"report-service-be/internal/model"
	"report-service-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChartConfigurationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChartMapper
}

func NewChartConfigurationRepository(db *gorm.DB) contract.ChartConfigurationRepository {
	return &ChartConfigurationRepositoryImpl{
		db:     db,
		mapper: mapper.NewChartMapper(),
	}
}

func (r *ChartConfigurationRepositoryImpl) Create(ctx context.Context, config *entity.ChartConfiguration) error {
	m := r.mapper.ChartConfigurationToModel(config)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Storage("create chart configuration", err)
	}
	*config = *r.mapper.ChartConfigurationToEntity(m)
	return nil
}

func (r *ChartConfigurationRepositoryImpl) Update(ctx context.Context, config *entity.ChartConfiguration) error {
	m := r.mapper.ChartConfigurationToModel(config)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return apperror.Storage("update chart configuration", err)
	}
	*config = *r.mapper.ChartConfigurationToEntity(m)
	return nil
}

func (r *ChartConfigurationRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.ChartConfiguration, error) {
	var m model.ChartConfiguration
	err := r.db.WithContext(ctx).Where("chat_session_id = ?", sessionId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Storage("find chart configuration", err)
	}
	return r.mapper.ChartConfigurationToEntity(&m), nil
}
