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

type SessionWorkflowRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WorkflowMapper
}

func NewSessionWorkflowRepository(db *gorm.DB) contract.SessionWorkflowRepository {
	return &SessionWorkflowRepositoryImpl{
		db:     db,
		mapper: mapper.NewWorkflowMapper(),
	}
}

func (r *SessionWorkflowRepositoryImpl) Create(ctx context.Context, workflow *entity.SessionWorkflow) error {
	m := r.mapper.SessionWorkflowToModel(workflow)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Storage("create session workflow", err)
	}
	*workflow = *r.mapper.SessionWorkflowToEntity(m)
	return nil
}

func (r *SessionWorkflowRepositoryImpl) Update(ctx context.Context, workflow *entity.SessionWorkflow) error {
	m := r.mapper.SessionWorkflowToModel(workflow)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return apperror.Storage("update session workflow", err)
	}
	*workflow = *r.mapper.SessionWorkflowToEntity(m)
	return nil
}

func (r *SessionWorkflowRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.SessionWorkflow, error) {
	var m model.SessionWorkflow
	err := r.db.WithContext(ctx).Where("chat_session_id = ?", sessionId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Storage("find session workflow", err)
	}
	return r.mapper.SessionWorkflowToEntity(&m), nil
}
