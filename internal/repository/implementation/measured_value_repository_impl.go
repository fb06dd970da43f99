package implementation

import (
	"context"

	"report-service-be/internal/apperror"
	"report-service-be/internal/entity"
	"report-service-be/internal/mapper"
	"report-service-be/internal/model"
	"report-service-be/internal/repository/contract"
	"report-service-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MeasuredValueRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewMeasuredValueRepository(db *gorm.DB) contract.MeasuredValueRepository {
	return &MeasuredValueRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *MeasuredValueRepositoryImpl) Create(ctx context.Context, value *entity.MeasuredValue) error {
	m := r.mapper.MeasuredValueToModel(value)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Storage("create measured value", err)
	}
	*value = *r.mapper.MeasuredValueToEntity(m)
	return nil
}

func (r *MeasuredValueRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MeasuredValue, error) {
	var models []*model.MeasuredValue
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.Storage("list measured values", err)
	}
	entities := make([]*entity.MeasuredValue, len(models))
	for i, m := range models {
		entities[i] = r.mapper.MeasuredValueToEntity(m)
	}
	return entities, nil
}
