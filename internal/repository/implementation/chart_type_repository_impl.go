package implementation

import (
	"context"
	"errors"

	"report-service-be/internal/apperror"
	"report-service-be/internal/entity"
	"report-service-be/internal/mapper"
	"report-service-be/internal/model"
	"report-service-be/internal/repository/contract"
	"report-service-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChartTypeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChartMapper
}

func NewChartTypeRepository(db *gorm.DB) contract.ChartTypeRepository {
	return &ChartTypeRepositoryImpl{
		db:     db,
		mapper: mapper.NewChartMapper(),
	}
}

func (r *ChartTypeRepositoryImpl) Create(ctx context.Context, chartType *entity.ChartType) error {
	m := r.mapper.ChartTypeToModel(chartType)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Storage("create chart type", err)
	}
	*chartType = *r.mapper.ChartTypeToEntity(m)
	return nil
}

func (r *ChartTypeRepositoryImpl) FindByCode(ctx context.Context, code string) (*entity.ChartType, error) {
	var m model.ChartType
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Storage("find chart type", err)
	}
	return r.mapper.ChartTypeToEntity(&m), nil
}

func (r *ChartTypeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChartType, error) {
	var m model.ChartType
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Storage("find chart type", err)
	}
	return r.mapper.ChartTypeToEntity(&m), nil
}

func (r *ChartTypeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChartType, error) {
	var models []*model.ChartType
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.Storage("list chart types", err)
	}
	entities := make([]*entity.ChartType, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ChartTypeToEntity(m)
	}
	return entities, nil
}
