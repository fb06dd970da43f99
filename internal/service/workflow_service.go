package service

import (
	"context"
	"strings"
	"time"

	"report-service-be/internal/apperror"
	"report-service-be/internal/constant"
	"report-service-be/internal/dto"
	"report-service-be/internal/entity"
	"report-service-be/internal/pkg/logger"
	"report-service-be/internal/repository/specification"
	"report-service-be/internal/repository/unitofwork"
	"report-service-be/pkg/events"

	"github.com/google/uuid"
)

type IWorkflowService interface {
	GetStatus(ctx context.Context, sessionId uuid.UUID) (*dto.WorkflowStatusResponse, error)
	Publish(ctx context.Context, userId string, sessionId uuid.UUID) (*dto.WorkflowStatusResponse, error)
}

type workflowService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewWorkflowService(
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	log logger.ILogger,
) IWorkflowService {
	return &workflowService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *workflowService) GetStatus(ctx context.Context, sessionId uuid.UUID) (*dto.WorkflowStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	workflow, err := uow.SessionWorkflowRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, apperror.NotFound("workflow for session %s not found", sessionId)
	}
	return workflowToStatus(workflow), nil
}

// Publish flips is_published once the three preceding steps are complete.
// Publishing an already published session is a no-op returning current state.
func (s *workflowService) Publish(ctx context.Context, userId string, sessionId uuid.UUID) (*dto.WorkflowStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserId != userId {
		return nil, apperror.NotFound("chat session %s not found", sessionId)
	}

	workflow, err := uow.SessionWorkflowRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, apperror.NotFound("workflow for session %s not found", sessionId)
	}

	if workflow.IsPublished {
		return workflowToStatus(workflow), nil
	}

	if !workflow.ReadyToPublish() {
		return nil, apperror.PreconditionFailed(
			"cannot publish: missing steps [%s]", strings.Join(missingSteps(workflow), ", "))
	}

	workflow.IsPublished = true
	workflow.UpdatedAt = time.Now()
	if err := uow.SessionWorkflowRepository().Update(ctx, workflow); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	reportName := ""
	if session.ReportName != nil {
		reportName = *session.ReportName
	}
	if err := s.publisher.PublishWorkflowEvent(ctx, events.NewReportPublished(sessionId, userId, reportName)); err != nil {
		s.logger.Warn("WorkflowService", "Report published but event emission failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}

	return workflowToStatus(workflow), nil
}

func missingSteps(w *entity.SessionWorkflow) []string {
	var missing []string
	if !w.HasReportName {
		missing = append(missing, constant.WorkflowStepReportName)
	}
	if !w.HasMessageQuery {
		missing = append(missing, constant.WorkflowStepQuery)
	}
	if !w.HasChartConfigured {
		missing = append(missing, constant.WorkflowStepChart)
	}
	return missing
}

func workflowToStatus(w *entity.SessionWorkflow) *dto.WorkflowStatusResponse {
	if w == nil {
		return nil
	}
	return &dto.WorkflowStatusResponse{
		SessionId:          w.ChatSessionId,
		HasReportName:      w.HasReportName,
		HasMessageQuery:    w.HasMessageQuery,
		HasChartConfigured: w.HasChartConfigured,
		IsPublished:        w.IsPublished,
		UpdatedAt:          w.UpdatedAt,
	}
}

// raiseWorkflowFlag raises a single workflow boolean inside the caller's open
// unit of work. Flags never regress; raising an already-set flag is a no-op.
// The second return reports whether the flag actually transitioned.
func raiseWorkflowFlag(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, step string) (*entity.SessionWorkflow, bool, error) {
	workflow, err := uow.SessionWorkflowRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, false, err
	}
	if workflow == nil {
		return nil, false, apperror.NotFound("workflow for session %s not found", sessionId)
	}

	changed := false
	switch step {
	case constant.WorkflowStepReportName:
		changed = !workflow.HasReportName
		workflow.HasReportName = true
	case constant.WorkflowStepQuery:
		changed = !workflow.HasMessageQuery
		workflow.HasMessageQuery = true
	case constant.WorkflowStepChart:
		changed = !workflow.HasChartConfigured
		workflow.HasChartConfigured = true
	}

	if !changed {
		return workflow, false, nil
	}

	workflow.UpdatedAt = time.Now()
	if err := uow.SessionWorkflowRepository().Update(ctx, workflow); err != nil {
		return nil, false, err
	}
	return workflow, true, nil
}
