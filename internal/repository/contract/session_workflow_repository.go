package contract

import (
	"context"

	"report-service-be/internal/entity"

	"github.com/google/uuid"
)

type SessionWorkflowRepository interface {
	Create(ctx context.Context, workflow *entity.SessionWorkflow) error
	Update(ctx context.Context, workflow *entity.SessionWorkflow) error
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.SessionWorkflow, error)
}
