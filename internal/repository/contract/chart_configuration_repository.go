package contract

import (
	"context"

	"report-service-be/internal/entity"

	"github.com/google/uuid"
)

type ChartConfigurationRepository interface {
	Create(ctx context.Context, config *entity.ChartConfiguration) error
	Update(ctx context.Context, config *entity.ChartConfiguration) error
	// FindBySessionId returns the session's current configuration, or nil.
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.ChartConfiguration, error)
}
