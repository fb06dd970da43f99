package contract

import (
	"context"

	"report-service-be/internal/entity"
	"report-service-be/internal/repository/specification"
)

type ChartTypeRepository interface {
	Create(ctx context.Context, chartType *entity.ChartType) error
	FindByCode(ctx context.Context, code string) (*entity.ChartType, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChartType, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChartType, error)
}
