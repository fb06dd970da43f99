package contract

import (
	"context"

	"report-service-be/internal/entity"
	"report-service-be/internal/repository/specification"
)

type MeasuredValueRepository interface {
	Create(ctx context.Context, value *entity.MeasuredValue) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MeasuredValue, error)
}
