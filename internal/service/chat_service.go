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
	"report-service-be/pkg/sqlgen"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateSession(ctx context.Context, userId string, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetSession(ctx context.Context, userId string, sessionId uuid.UUID) (*dto.SessionResponse, error)
	GetUserSessions(ctx context.Context, userId string) ([]*dto.SessionSummaryResponse, error)
	UpdateReportName(ctx context.Context, userId string, req *dto.UpdateReportNameRequest) (*dto.WorkflowStatusResponse, error)
	GetSessionMessages(ctx context.Context, userId string, sessionId uuid.UUID) ([]*dto.MessageResponse, error)
	ProcessMessage(ctx context.Context, userId string, req *dto.SendMessageRequest) (*dto.ChatResponse, error)
	UpdateLatestGeneratedSql(ctx context.Context, userId string, req *dto.UpdateGeneratedSqlRequest) (*dto.MessageResponse, error)
	UpdateMessageAndGeneratedSql(ctx context.Context, userId string, req *dto.UpdateMessageOrSqlRequest) (*dto.MessageResponse, error)
	GetNextStep(ctx context.Context, userId string, sessionId uuid.UUID) (*dto.NextStepResponse, error)
	AddMeasuredValue(ctx context.Context, userId string, sessionId uuid.UUID, req *dto.AddMeasuredValueRequest) (*dto.MeasuredValueResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	generator  sqlgen.Generator
	publisher  IPublisherService
	logger     logger.ILogger
	genTimeout time.Duration
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	generator sqlgen.Generator,
	publisher IPublisherService,
	log logger.ILogger,
	genTimeout time.Duration,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		generator:  generator,
		publisher:  publisher,
		logger:     log,
		genTimeout: genTimeout,
	}
}

// CreateSession writes the session and its workflow row in one transaction so
// a session can never exist without workflow state.
func (s *chatService) CreateSession(ctx context.Context, userId string, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	if strings.TrimSpace(userId) == "" {
		return nil, apperror.Validation("user id is required")
	}

	now := time.Now()
	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		CreatedAt: now,
		IsActive:  true,
	}
	reportName := strings.TrimSpace(req.ReportName)
	if reportName != "" {
		session.ReportName = &reportName
	}

	workflow := &entity.SessionWorkflow{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		HasReportName: reportName != "",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	if err := uow.SessionWorkflowRepository().Create(ctx, workflow); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.emitEvent(ctx, events.NewSessionCreated(session.Id, userId))
	if workflow.HasReportName {
		s.emitEvent(ctx, events.NewWorkflowStepCompleted(session.Id, userId, constant.WorkflowStepReportName))
	}

	return &dto.CreateSessionResponse{
		Id:         session.Id,
		ReportName: session.ReportName,
		CreatedAt:  session.CreatedAt,
		Workflow:   workflowToStatus(workflow),
	}, nil
}

func (s *chatService) GetSession(ctx context.Context, userId string, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	values, err := uow.MeasuredValueRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	resp := &dto.SessionResponse{
		Id:             session.Id,
		UserId:         session.UserId,
		ReportName:     session.ReportName,
		IsActive:       session.IsActive,
		CreatedAt:      session.CreatedAt,
		Messages:       make([]*dto.MessageResponse, 0, len(messages)),
		MeasuredValues: make([]*dto.MeasuredValueResponse, 0, len(values)),
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, messageToResponse(m))
	}
	for _, v := range values {
		resp.MeasuredValues = append(resp.MeasuredValues, measuredValueToResponse(v))
	}
	return resp, nil
}

func (s *chatService) GetUserSessions(ctx context.Context, userId string) ([]*dto.SessionSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	summaries := make([]*dto.SessionSummaryResponse, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, &dto.SessionSummaryResponse{
			Id:         session.Id,
			ReportName: session.ReportName,
			IsActive:   session.IsActive,
			CreatedAt:  session.CreatedAt,
			UpdatedAt:  session.UpdatedAt,
		})
	}
	return summaries, nil
}

func (s *chatService) UpdateReportName(ctx context.Context, userId string, req *dto.UpdateReportNameRequest) (*dto.WorkflowStatusResponse, error) {
	name := strings.TrimSpace(req.ReportName)
	if name == "" {
		return nil, apperror.Validation("report name must not be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := s.findOwnedSession(ctx, uow, userId, req.SessionId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session.ReportName = &name
	session.UpdatedAt = &now
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	workflow, raised, err := raiseWorkflowFlag(ctx, uow, req.SessionId, constant.WorkflowStepReportName)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if raised {
		s.emitEvent(ctx, events.NewWorkflowStepCompleted(req.SessionId, userId, constant.WorkflowStepReportName))
	}
	return workflowToStatus(workflow), nil
}

func (s *chatService) GetSessionMessages(ctx context.Context, userId string, sessionId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, messageToResponse(m))
	}
	return responses, nil
}

// ProcessMessage appends exactly two messages per call: the user's text and an
// assistant reply. The generator runs between the two transactions so a slow
// provider never holds a database transaction open; on generator failure the
// assistant reply is a failure marker with no generated SQL and the workflow
// flag stays down.
func (s *chatService) ProcessMessage(ctx context.Context, userId string, req *dto.SendMessageRequest) (*dto.ChatResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, apperror.Validation("message must not be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findOwnedSession(ctx, uow, userId, req.SessionId); err != nil {
		return nil, err
	}

	history, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: req.SessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	userMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: req.SessionId,
		Role:          constant.ChatMessageRoleUser,
		Message:       text,
		CreatedAt:     time.Now(),
	}
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	generatedSql, genErr := s.generateSql(ctx, history, text)

	assistantMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: req.SessionId,
		Role:          constant.ChatMessageRoleAssistant,
		CreatedAt:     time.Now(),
	}
	if genErr != nil {
		assistantMessage.Message = constant.SqlGenerationFailedReply
	} else {
		assistantMessage.Message = generatedSql
		assistantMessage.GeneratedSql = &generatedSql
	}

	uow2 := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow2.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow2.Rollback()

	if err := uow2.ChatMessageRepository().Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	var workflow *entity.SessionWorkflow
	raised := false
	if genErr == nil {
		workflow, raised, err = raiseWorkflowFlag(ctx, uow2, req.SessionId, constant.WorkflowStepQuery)
	} else {
		workflow, err = uow2.SessionWorkflowRepository().FindBySessionId(ctx, req.SessionId)
	}
	if err != nil {
		return nil, err
	}
	if err := uow2.Commit(); err != nil {
		return nil, err
	}

	if raised {
		s.emitEvent(ctx, events.NewWorkflowStepCompleted(req.SessionId, userId, constant.WorkflowStepQuery))
	}

	return &dto.ChatResponse{
		SessionId: req.SessionId,
		Sent:      messageToResponse(userMessage),
		Reply:     messageToResponse(assistantMessage),
		Workflow:  workflowToStatus(workflow),
	}, nil
}

func (s *chatService) generateSql(ctx context.Context, history []*entity.ChatMessage, latest string) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()

	turns := make([]sqlgen.Message, 0, len(history))
	for _, m := range history {
		turns = append(turns, sqlgen.Message{Role: m.Role, Content: m.Message})
	}

	sql, err := s.generator.Generate(genCtx, turns, latest)
	if err != nil {
		wrapped := apperror.ExternalService("sql generation failed", err)
		s.logger.Warn("ChatService", "SQL generation failed", map[string]interface{}{
			"error": wrapped.Error(),
		})
		return "", wrapped
	}
	return sql, nil
}

// UpdateLatestGeneratedSql rewrites the generated SQL on the newest assistant
// message. The target is resolved inside the transaction so concurrent sends
// cannot redirect the write.
func (s *chatService) UpdateLatestGeneratedSql(ctx context.Context, userId string, req *dto.UpdateGeneratedSqlRequest) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if _, err := s.findOwnedSession(ctx, uow, userId, req.SessionId); err != nil {
		return nil, err
	}

	latest, err := uow.ChatMessageRepository().FindLatest(ctx, req.SessionId, constant.ChatMessageRoleAssistant)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, apperror.NotFound("no assistant message to update in session %s", req.SessionId)
	}

	now := time.Now()
	latest.GeneratedSql = &req.GeneratedSql
	latest.UpdatedAt = &now
	if err := uow.ChatMessageRepository().Update(ctx, latest); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return messageToResponse(latest), nil
}

func (s *chatService) UpdateMessageAndGeneratedSql(ctx context.Context, userId string, req *dto.UpdateMessageOrSqlRequest) (*dto.MessageResponse, error) {
	if req.Message == nil && req.GeneratedSql == nil {
		return nil, apperror.Validation("at least one of message or generated_sql must be provided")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if _, err := s.findOwnedSession(ctx, uow, userId, req.SessionId); err != nil {
		return nil, err
	}

	latest, err := uow.ChatMessageRepository().FindLatest(ctx, req.SessionId, constant.ChatMessageRoleAssistant)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, apperror.NotFound("no assistant message to update in session %s", req.SessionId)
	}

	now := time.Now()
	if req.Message != nil {
		latest.Message = *req.Message
	}
	if req.GeneratedSql != nil {
		latest.GeneratedSql = req.GeneratedSql
	}
	latest.UpdatedAt = &now
	if err := uow.ChatMessageRepository().Update(ctx, latest); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return messageToResponse(latest), nil
}

// GetNextStep returns the first incomplete workflow step in fixed priority
// order, or nil when the report is fully published.
func (s *chatService) GetNextStep(ctx context.Context, userId string, sessionId uuid.UUID) (*dto.NextStepResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	workflow, err := uow.SessionWorkflowRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, apperror.NotFound("workflow for session %s not found", sessionId)
	}

	switch {
	case !workflow.HasReportName:
		return &dto.NextStepResponse{
			Step:        constant.WorkflowStepReportName,
			Description: "Give your report a name.",
		}, nil
	case !workflow.HasMessageQuery:
		return &dto.NextStepResponse{
			Step:        constant.WorkflowStepQuery,
			Description: "Describe the data you want so a query can be generated.",
		}, nil
	case !workflow.HasChartConfigured:
		return &dto.NextStepResponse{
			Step:        constant.WorkflowStepChart,
			Description: "Configure how the report should be visualized.",
		}, nil
	case !workflow.IsPublished:
		return &dto.NextStepResponse{
			Step:        constant.WorkflowStepPublish,
			Description: "Publish the report to make it available.",
		}, nil
	}
	return nil, nil
}

func (s *chatService) AddMeasuredValue(ctx context.Context, userId string, sessionId uuid.UUID, req *dto.AddMeasuredValueRequest) (*dto.MeasuredValueResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if _, err := s.findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	value := &entity.MeasuredValue{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Name:          req.Name,
		Description:   req.Description,
		Query:         req.Query,
		CreatedAt:     time.Now(),
	}
	if err := uow.MeasuredValueRepository().Create(ctx, value); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return measuredValueToResponse(value), nil
}

// findOwnedSession loads a session and verifies ownership. A session belonging
// to another user is reported as not found, never as forbidden.
func (s *chatService) findOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId string, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserId != userId {
		return nil, apperror.NotFound("chat session %s not found", sessionId)
	}
	return session, nil
}

func (s *chatService) emitEvent(ctx context.Context, evt events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishWorkflowEvent(ctx, evt); err != nil {
		s.logger.Warn("ChatService", "Event emission failed", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}

func messageToResponse(m *entity.ChatMessage) *dto.MessageResponse {
	if m == nil {
		return nil
	}
	return &dto.MessageResponse{
		Id:           m.Id,
		Role:         m.Role,
		Message:      m.Message,
		GeneratedSql: m.GeneratedSql,
		CreatedAt:    m.CreatedAt,
	}
}

func measuredValueToResponse(v *entity.MeasuredValue) *dto.MeasuredValueResponse {
	return &dto.MeasuredValueResponse{
		Id:          v.Id,
		Name:        v.Name,
		Description: v.Description,
		Query:       v.Query,
		CreatedAt:   v.CreatedAt,
	}
}
