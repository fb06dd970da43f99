package service

import (
	"context"
	"time"

	"report-service-be/internal/apperror"
	"report-service-be/internal/constant"
	"report-service-be/internal/dto"
	"report-service-be/internal/entity"
	"report-service-be/internal/pkg/logger"
	"report-service-be/internal/repository/memory"
	"report-service-be/internal/repository/specification"
	"report-service-be/internal/repository/unitofwork"
	"report-service-be/pkg/events"

	"github.com/google/uuid"
)

type IChartService interface {
	UpdateChartConfiguration(ctx context.Context, userId string, req *dto.UpdateChartConfigurationRequest) (*dto.ChartConfigurationResponse, error)
	GetChartTypes(ctx context.Context) ([]*dto.ChartTypeResponse, error)
	GetChartType(ctx context.Context, id uuid.UUID) (*dto.ChartTypeResponse, error)
}

type chartService struct {
	uowFactory unitofwork.RepositoryFactory
	typeCache  *memory.ChartTypeCache
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewChartService(
	uowFactory unitofwork.RepositoryFactory,
	typeCache *memory.ChartTypeCache,
	publisher IPublisherService,
	log logger.ILogger,
) IChartService {
	return &chartService{
		uowFactory: uowFactory,
		typeCache:  typeCache,
		publisher:  publisher,
		logger:     log,
	}
}

// UpdateChartConfiguration upserts the session's single configuration row and
// raises has_chart_configured in the same transaction. Repeating the same
// request leaves one stored row.
func (s *chartService) UpdateChartConfiguration(ctx context.Context, userId string, req *dto.UpdateChartConfigurationRequest) (*dto.ChartConfigurationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserId != userId {
		return nil, apperror.NotFound("chat session %s not found", req.SessionId)
	}

	if err := s.validateChartType(ctx, uow, req.ChartType); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	config, err := uow.ChartConfigurationRepository().FindBySessionId(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	isNew := config == nil
	if isNew {
		config = &entity.ChartConfiguration{
			Id:            uuid.New(),
			ChatSessionId: req.SessionId,
			CreatedAt:     now,
		}
	} else {
		config.UpdatedAt = &now
	}

	config.ChartType = req.ChartType
	config.XAxisField = req.XAxisField
	config.YAxisField = req.YAxisField
	config.SeriesField = req.SeriesField
	config.SizeField = req.SizeField
	config.ColorField = req.ColorField
	config.Options = req.Options
	config.Filters = req.Filters

	if isNew {
		err = uow.ChartConfigurationRepository().Create(ctx, config)
	} else {
		err = uow.ChartConfigurationRepository().Update(ctx, config)
	}
	if err != nil {
		return nil, err
	}

	workflow, raised, err := raiseWorkflowFlag(ctx, uow, req.SessionId, constant.WorkflowStepChart)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if raised && s.publisher != nil {
		if err := s.publisher.PublishWorkflowEvent(ctx, events.NewWorkflowStepCompleted(req.SessionId, userId, constant.WorkflowStepChart)); err != nil {
			s.logger.Warn("ChartService", "Event emission failed", map[string]interface{}{
				"session_id": req.SessionId.String(),
				"error":      err.Error(),
			})
		}
	}

	return &dto.ChartConfigurationResponse{
		Id:          config.Id,
		SessionId:   config.ChatSessionId,
		ChartType:   config.ChartType,
		XAxisField:  config.XAxisField,
		YAxisField:  config.YAxisField,
		SeriesField: config.SeriesField,
		SizeField:   config.SizeField,
		ColorField:  config.ColorField,
		Options:     config.Options,
		Filters:     config.Filters,
		CreatedAt:   config.CreatedAt,
		UpdatedAt:   config.UpdatedAt,
		Workflow:    workflowToStatus(workflow),
	}, nil
}

// validateChartType checks the code against the cache first and falls back to
// the database on a miss. Unknown and inactive codes are rejected alike.
func (s *chartService) validateChartType(ctx context.Context, uow unitofwork.UnitOfWork, code string) error {
	if cached, found := s.typeCache.GetByCode(code); found {
		if cached.IsActive {
			return nil
		}
		return apperror.Validation("'%s' is not an active chart type", code)
	}

	chartType, err := uow.ChartTypeRepository().FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if chartType == nil || !chartType.IsActive {
		return apperror.Validation("'%s' is not an active chart type", code)
	}
	return nil
}

func (s *chartService) GetChartTypes(ctx context.Context) ([]*dto.ChartTypeResponse, error) {
	types, found := s.typeCache.GetActive()
	if !found {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		var err error
		types, err = uow.ChartTypeRepository().FindAll(ctx,
			specification.ActiveOnly{},
			specification.OrderBy{Field: "name"},
		)
		if err != nil {
			return nil, err
		}
		s.typeCache.SetActive(types)
	}

	responses := make([]*dto.ChartTypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, chartTypeToResponse(t))
	}
	return responses, nil
}

func (s *chartService) GetChartType(ctx context.Context, id uuid.UUID) (*dto.ChartTypeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chartType, err := uow.ChartTypeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if chartType == nil {
		return nil, apperror.NotFound("chart type %s not found", id)
	}
	return chartTypeToResponse(chartType), nil
}

func chartTypeToResponse(t *entity.ChartType) *dto.ChartTypeResponse {
	return &dto.ChartTypeResponse{
		Id:          t.Id,
		Code:        t.Code,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
	}
}
