package service

import (
	"context"
	"testing"
	"time"

	"report-service-be/internal/apperror"
	"report-service-be/internal/dto"
	"report-service-be/internal/entity"
	"report-service-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkflowFixture() (IWorkflowService, *fakeStore, *capturingPublisher) {
	store := newFakeStore()
	publisher := &capturingPublisher{}
	svc := NewWorkflowService(&fakeFactory{store: store}, publisher, noopLogger{})
	return svc, store, publisher
}

func TestGetStatus(t *testing.T) {
	svc, store, _ := newWorkflowFixture()

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.GetStatus(context.Background(), uuid.New())
		assert.True(t, apperror.IsNotFound(err))
	})

	sessionId := seedSession(store, "user-1", "Revenue")
	store.workflows[sessionId].HasMessageQuery = true

	t.Run("reflects stored flags", func(t *testing.T) {
		res, err := svc.GetStatus(context.Background(), sessionId)
		require.NoError(t, err)
		assert.True(t, res.HasReportName)
		assert.True(t, res.HasMessageQuery)
		assert.False(t, res.HasChartConfigured)
		assert.False(t, res.IsPublished)
	})
}

func TestPublishGate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w *entity.SessionWorkflow)
		wantErr bool
	}{
		{
			name:    "nothing complete",
			mutate:  func(w *entity.SessionWorkflow) {},
			wantErr: true,
		},
		{
			name: "missing chart",
			mutate: func(w *entity.SessionWorkflow) {
				w.HasReportName = true
				w.HasMessageQuery = true
			},
			wantErr: true,
		},
		{
			name: "missing query",
			mutate: func(w *entity.SessionWorkflow) {
				w.HasReportName = true
				w.HasChartConfigured = true
			},
			wantErr: true,
		},
		{
			name: "missing report name",
			mutate: func(w *entity.SessionWorkflow) {
				w.HasMessageQuery = true
				w.HasChartConfigured = true
			},
			wantErr: true,
		},
		{
			name: "all three complete",
			mutate: func(w *entity.SessionWorkflow) {
				w.HasReportName = true
				w.HasMessageQuery = true
				w.HasChartConfigured = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, publisher := newWorkflowFixture()
			sessionId := seedSession(store, "user-1", "")
			tt.mutate(store.workflows[sessionId])

			res, err := svc.Publish(context.Background(), "user-1", sessionId)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperror.KindPreconditionFailed, apperror.KindOf(err))
				assert.False(t, store.workflows[sessionId].IsPublished)
				assert.Empty(t, publisher.events)
				return
			}
			require.NoError(t, err)
			assert.True(t, res.IsPublished)
			assert.True(t, store.workflows[sessionId].IsPublished)

			require.Len(t, publisher.events, 1)
			assert.Equal(t, events.TypeReportPublished, publisher.events[0].EventType())
		})
	}
}

func TestPublishIdempotent(t *testing.T) {
	svc, store, publisher := newWorkflowFixture()
	sessionId := seedSession(store, "user-1", "Revenue")
	w := store.workflows[sessionId]
	w.HasReportName = true
	w.HasMessageQuery = true
	w.HasChartConfigured = true

	_, err := svc.Publish(context.Background(), "user-1", sessionId)
	require.NoError(t, err)

	res, err := svc.Publish(context.Background(), "user-1", sessionId)
	require.NoError(t, err)
	assert.True(t, res.IsPublished)

	// second publish is a no-op, no duplicate event
	assert.Len(t, publisher.events, 1)
}

func TestPublishForeignSession(t *testing.T) {
	svc, store, _ := newWorkflowFixture()
	sessionId := seedSession(store, "user-1", "Revenue")

	_, err := svc.Publish(context.Background(), "intruder", sessionId)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRaiseWorkflowFlagMonotonic(t *testing.T) {
	store := newFakeStore()
	sessionId := seedSession(store, "user-1", "Revenue")
	uow := (&fakeFactory{store: store}).NewUnitOfWork(context.Background())

	// raising an already-true flag reports no transition
	_, changed, err := raiseWorkflowFlag(context.Background(), uow, sessionId, "report_name")
	require.NoError(t, err)
	assert.False(t, changed)

	_, changed, err = raiseWorkflowFlag(context.Background(), uow, sessionId, "message_query")
	require.NoError(t, err)
	assert.True(t, changed)

	_, changed, err = raiseWorkflowFlag(context.Background(), uow, sessionId, "message_query")
	require.NoError(t, err)
	assert.False(t, changed)

	w := store.workflows[sessionId]
	assert.True(t, w.HasReportName)
	assert.True(t, w.HasMessageQuery)
}

// Walks a session from creation to publish the way the UI drives it.
func TestWorkflowEndToEnd(t *testing.T) {
	store := newFakeStore()
	publisher := &capturingPublisher{}
	factory := &fakeFactory{store: store}
	gen := &stubGenerator{sql: "SELECT region, SUM(amount) FROM sales GROUP BY region"}

	chatSvc := NewChatService(factory, gen, publisher, noopLogger{}, 5*time.Second)
	chartSvc := NewChartService(factory, newTypeCacheWith(store), publisher, noopLogger{})
	workflowSvc := NewWorkflowService(factory, publisher, noopLogger{})

	ctx := context.Background()

	created, err := chatSvc.CreateSession(ctx, "user-1", &dto.CreateSessionRequest{})
	require.NoError(t, err)
	sessionId := created.Id

	// publish blocked from the start
	_, err = workflowSvc.Publish(ctx, "user-1", sessionId)
	assert.Equal(t, apperror.KindPreconditionFailed, apperror.KindOf(err))

	_, err = chatSvc.UpdateReportName(ctx, "user-1", &dto.UpdateReportNameRequest{
		SessionId:  sessionId,
		ReportName: "Regional Sales",
	})
	require.NoError(t, err)

	chatRes, err := chatSvc.ProcessMessage(ctx, "user-1", &dto.SendMessageRequest{
		SessionId: sessionId,
		Message:   "total sales by region",
	})
	require.NoError(t, err)
	assert.True(t, chatRes.Workflow.HasMessageQuery)

	x := "region"
	y := "total"
	chartRes, err := chartSvc.UpdateChartConfiguration(ctx, "user-1", &dto.UpdateChartConfigurationRequest{
		SessionId:  sessionId,
		ChartType:  "bar",
		XAxisField: &x,
		YAxisField: &y,
	})
	require.NoError(t, err)
	assert.True(t, chartRes.Workflow.HasChartConfigured)

	status, err := workflowSvc.Publish(ctx, "user-1", sessionId)
	require.NoError(t, err)
	assert.True(t, status.IsPublished)

	next, err := chatSvc.GetNextStep(ctx, "user-1", sessionId)
	require.NoError(t, err)
	assert.Nil(t, next, "all steps completed")
}
