package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"report-service-be/internal/apperror"
	"report-service-be/internal/constant"
	"report-service-be/internal/dto"
	"report-service-be/internal/entity"
	"report-service-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture(gen *stubGenerator) (IChatService, *fakeStore, *capturingPublisher) {
	store := newFakeStore()
	publisher := &capturingPublisher{}
	svc := NewChatService(&fakeFactory{store: store}, gen, publisher, noopLogger{}, 5*time.Second)
	return svc, store, publisher
}

func seedSession(store *fakeStore, userId string, reportName string) uuid.UUID {
	sessionId := uuid.New()
	session := &entity.ChatSession{
		Id:        sessionId,
		UserId:    userId,
		CreatedAt: time.Now(),
		IsActive:  true,
	}
	workflow := &entity.SessionWorkflow{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if reportName != "" {
		session.ReportName = &reportName
		workflow.HasReportName = true
	}
	store.sessions[sessionId] = session
	store.workflows[sessionId] = workflow
	return sessionId
}

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		userId         string
		reportName     string
		wantErr        bool
		wantReportFlag bool
	}{
		{
			name:           "with report name initializes flag",
			userId:         "user-1",
			reportName:     "Q3 Revenue",
			wantReportFlag: true,
		},
		{
			name:           "without report name starts at zero",
			userId:         "user-1",
			reportName:     "",
			wantReportFlag: false,
		},
		{
			name:    "empty user id rejected",
			userId:  "  ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, publisher := newChatFixture(&stubGenerator{})

			res, err := svc.CreateSession(context.Background(), tt.userId, &dto.CreateSessionRequest{ReportName: tt.reportName})
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, res.Workflow)

			assert.Equal(t, tt.wantReportFlag, res.Workflow.HasReportName)
			assert.False(t, res.Workflow.HasMessageQuery)
			assert.False(t, res.Workflow.HasChartConfigured)
			assert.False(t, res.Workflow.IsPublished)

			// workflow row exists alongside the session
			require.NotNil(t, store.workflows[res.Id])
			assert.Equal(t, tt.wantReportFlag, store.workflows[res.Id].HasReportName)

			require.NotEmpty(t, publisher.events)
			assert.Equal(t, events.TypeSessionCreated, publisher.events[0].EventType())
		})
	}
}

func TestProcessMessageSuccess(t *testing.T) {
	gen := &stubGenerator{sql: "SELECT region, SUM(amount) FROM sales GROUP BY region"}
	svc, store, publisher := newChatFixture(gen)
	sessionId := seedSession(store, "user-1", "Sales Report")

	res, err := svc.ProcessMessage(context.Background(), "user-1", &dto.SendMessageRequest{
		SessionId: sessionId,
		Message:   "total sales by region",
	})
	require.NoError(t, err)

	assert.Equal(t, constant.ChatMessageRoleUser, res.Sent.Role)
	assert.Equal(t, "total sales by region", res.Sent.Message)
	assert.Equal(t, constant.ChatMessageRoleAssistant, res.Reply.Role)
	require.NotNil(t, res.Reply.GeneratedSql)
	assert.Equal(t, gen.sql, *res.Reply.GeneratedSql)
	assert.True(t, res.Workflow.HasMessageQuery)

	// exactly two messages appended
	assert.Len(t, store.messages, 2)

	var sawQueryStep bool
	for _, evt := range publisher.events {
		if evt.EventType() == events.TypeWorkflowStepCompleted {
			sawQueryStep = true
		}
	}
	assert.True(t, sawQueryStep)
}

func TestProcessMessageGeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("connection refused")}
	svc, store, _ := newChatFixture(gen)
	sessionId := seedSession(store, "user-1", "Sales Report")

	res, err := svc.ProcessMessage(context.Background(), "user-1", &dto.SendMessageRequest{
		SessionId: sessionId,
		Message:   "total sales by region",
	})
	require.NoError(t, err, "generator failure must not fail the request")

	assert.Equal(t, constant.SqlGenerationFailedReply, res.Reply.Message)
	assert.Nil(t, res.Reply.GeneratedSql)
	assert.False(t, res.Workflow.HasMessageQuery)

	// two messages even on failure
	assert.Len(t, store.messages, 2)
}

func TestProcessMessageValidation(t *testing.T) {
	svc, store, _ := newChatFixture(&stubGenerator{sql: "SELECT 1"})
	sessionId := seedSession(store, "user-1", "")

	t.Run("empty text", func(t *testing.T) {
		_, err := svc.ProcessMessage(context.Background(), "user-1", &dto.SendMessageRequest{
			SessionId: sessionId,
			Message:   "   ",
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.ProcessMessage(context.Background(), "user-1", &dto.SendMessageRequest{
			SessionId: uuid.New(),
			Message:   "hello",
		})
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("foreign session reads as not found", func(t *testing.T) {
		_, err := svc.ProcessMessage(context.Background(), "someone-else", &dto.SendMessageRequest{
			SessionId: sessionId,
			Message:   "hello",
		})
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestProcessMessageRepeatedFlagStable(t *testing.T) {
	gen := &stubGenerator{sql: "SELECT 1"}
	svc, store, publisher := newChatFixture(gen)
	sessionId := seedSession(store, "user-1", "")

	for i := 0; i < 3; i++ {
		_, err := svc.ProcessMessage(context.Background(), "user-1", &dto.SendMessageRequest{
			SessionId: sessionId,
			Message:   "show me totals",
		})
		require.NoError(t, err)
	}

	assert.True(t, store.workflows[sessionId].HasMessageQuery)
	assert.Len(t, store.messages, 6)

	// flag only transitioned once, so only one step event
	stepEvents := 0
	for _, evt := range publisher.events {
		if evt.EventType() == events.TypeWorkflowStepCompleted {
			stepEvents++
		}
	}
	assert.Equal(t, 1, stepEvents)
}

func TestUpdateLatestGeneratedSql(t *testing.T) {
	svc, store, _ := newChatFixture(&stubGenerator{})
	sessionId := seedSession(store, "user-1", "")

	t.Run("no assistant message yet", func(t *testing.T) {
		_, err := svc.UpdateLatestGeneratedSql(context.Background(), "user-1", &dto.UpdateGeneratedSqlRequest{
			SessionId:    sessionId,
			GeneratedSql: "SELECT 1",
		})
		assert.True(t, apperror.IsNotFound(err))
	})

	base := time.Now()
	older := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          constant.ChatMessageRoleAssistant,
		Message:       "first reply",
		CreatedAt:     base,
	}
	newer := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          constant.ChatMessageRoleAssistant,
		Message:       "second reply",
		CreatedAt:     base.Add(time.Second),
	}
	userMsg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          constant.ChatMessageRoleUser,
		Message:       "question",
		CreatedAt:     base.Add(2 * time.Second),
	}
	store.messages = append(store.messages, older, newer, userMsg)

	t.Run("targets newest assistant message only", func(t *testing.T) {
		res, err := svc.UpdateLatestGeneratedSql(context.Background(), "user-1", &dto.UpdateGeneratedSqlRequest{
			SessionId:    sessionId,
			GeneratedSql: "SELECT * FROM sales",
		})
		require.NoError(t, err)
		assert.Equal(t, newer.Id, res.Id)

		for _, m := range store.messages {
			switch m.Id {
			case older.Id:
				assert.Nil(t, m.GeneratedSql, "older assistant message untouched")
			case newer.Id:
				require.NotNil(t, m.GeneratedSql)
				assert.Equal(t, "SELECT * FROM sales", *m.GeneratedSql)
			}
		}
	})
}

func TestUpdateMessageAndGeneratedSql(t *testing.T) {
	svc, store, _ := newChatFixture(&stubGenerator{})
	sessionId := seedSession(store, "user-1", "")

	t.Run("neither field provided", func(t *testing.T) {
		_, err := svc.UpdateMessageAndGeneratedSql(context.Background(), "user-1", &dto.UpdateMessageOrSqlRequest{
			SessionId: sessionId,
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	assistant := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          constant.ChatMessageRoleAssistant,
		Message:       "original",
		CreatedAt:     time.Now(),
	}
	store.messages = append(store.messages, assistant)

	t.Run("partial update keeps other field", func(t *testing.T) {
		sql := "SELECT count(*) FROM orders"
		res, err := svc.UpdateMessageAndGeneratedSql(context.Background(), "user-1", &dto.UpdateMessageOrSqlRequest{
			SessionId:    sessionId,
			GeneratedSql: &sql,
		})
		require.NoError(t, err)
		assert.Equal(t, "original", res.Message)
		require.NotNil(t, res.GeneratedSql)
		assert.Equal(t, sql, *res.GeneratedSql)
	})
}

func TestUpdateReportName(t *testing.T) {
	svc, store, _ := newChatFixture(&stubGenerator{})
	sessionId := seedSession(store, "user-1", "")

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := svc.UpdateReportName(context.Background(), "user-1", &dto.UpdateReportNameRequest{
			SessionId:  sessionId,
			ReportName: "  ",
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("sets name and raises flag", func(t *testing.T) {
		res, err := svc.UpdateReportName(context.Background(), "user-1", &dto.UpdateReportNameRequest{
			SessionId:  sessionId,
			ReportName: "Quarterly Sales",
		})
		require.NoError(t, err)
		assert.True(t, res.HasReportName)
		require.NotNil(t, store.sessions[sessionId].ReportName)
		assert.Equal(t, "Quarterly Sales", *store.sessions[sessionId].ReportName)
	})
}

func TestGetUserSessionsOrdering(t *testing.T) {
	svc, store, _ := newChatFixture(&stubGenerator{})

	base := time.Now()
	for i := 0; i < 3; i++ {
		sessionId := uuid.New()
		store.sessions[sessionId] = &entity.ChatSession{
			Id:        sessionId,
			UserId:    "user-1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			IsActive:  true,
		}
	}
	otherId := uuid.New()
	store.sessions[otherId] = &entity.ChatSession{
		Id:        otherId,
		UserId:    "user-2",
		CreatedAt: base,
		IsActive:  true,
	}

	res, err := svc.GetUserSessions(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, res, 3)
	for i := 1; i < len(res); i++ {
		assert.True(t, res[i-1].CreatedAt.After(res[i].CreatedAt), "newest first")
	}
}

func TestGetNextStepPriority(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(w *entity.SessionWorkflow)
		wantStep string
		wantNil  bool
	}{
		{
			name:     "nothing done",
			mutate:   func(w *entity.SessionWorkflow) {},
			wantStep: constant.WorkflowStepReportName,
		},
		{
			name:     "name set",
			mutate:   func(w *entity.SessionWorkflow) { w.HasReportName = true },
			wantStep: constant.WorkflowStepQuery,
		},
		{
			name: "name and query set",
			mutate: func(w *entity.SessionWorkflow) {
				w.HasReportName = true
				w.HasMessageQuery = true
			},
			wantStep: constant.WorkflowStepChart,
		},
		{
			name: "everything but publish",
			mutate: func(w *entity.SessionWorkflow) {
				w.HasReportName = true
				w.HasMessageQuery = true
				w.HasChartConfigured = true
			},
			wantStep: constant.WorkflowStepPublish,
		},
		{
			// chart configured before a query exists still asks for the query
			name: "out of order completion",
			mutate: func(w *entity.SessionWorkflow) {
				w.HasReportName = true
				w.HasChartConfigured = true
			},
			wantStep: constant.WorkflowStepQuery,
		},
		{
			name: "fully published",
			mutate: func(w *entity.SessionWorkflow) {
				w.HasReportName = true
				w.HasMessageQuery = true
				w.HasChartConfigured = true
				w.IsPublished = true
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newChatFixture(&stubGenerator{})
			sessionId := seedSession(store, "user-1", "")
			tt.mutate(store.workflows[sessionId])

			res, err := svc.GetNextStep(context.Background(), "user-1", sessionId)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, res)
				return
			}
			require.NotNil(t, res)
			assert.Equal(t, tt.wantStep, res.Step)
		})
	}
}

func TestAddMeasuredValueAndGetSession(t *testing.T) {
	svc, store, _ := newChatFixture(&stubGenerator{})
	sessionId := seedSession(store, "user-1", "Revenue")

	desc := "monthly recurring revenue"
	_, err := svc.AddMeasuredValue(context.Background(), "user-1", sessionId, &dto.AddMeasuredValueRequest{
		Name:        "MRR",
		Description: &desc,
		Query:       "SELECT SUM(amount) FROM subscriptions",
	})
	require.NoError(t, err)

	res, err := svc.GetSession(context.Background(), "user-1", sessionId)
	require.NoError(t, err)
	require.Len(t, res.MeasuredValues, 1)
	assert.Equal(t, "MRR", res.MeasuredValues[0].Name)
	require.NotNil(t, res.ReportName)
	assert.Equal(t, "Revenue", *res.ReportName)
}
