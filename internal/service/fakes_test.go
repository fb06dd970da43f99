package service

import (
	"bytes"
	"context"
	"sort"

	"report-service-be/internal/entity"
	"report-service-be/internal/repository/contract"
	"report-service-be/internal/repository/specification"
	"report-service-be/internal/repository/unitofwork"
	"report-service-be/pkg/events"
	"report-service-be/pkg/sqlgen"

	"github.com/google/uuid"
)

// fakeStore is shared in-memory state behind the fake unit of work. Begin and
// Commit are no-ops; service tests assert on observable behavior, not on
// transaction mechanics.
type fakeStore struct {
	sessions  map[uuid.UUID]*entity.ChatSession
	messages  []*entity.ChatMessage
	configs   map[uuid.UUID]*entity.ChartConfiguration // keyed by session id
	types     []*entity.ChartType
	workflows map[uuid.UUID]*entity.SessionWorkflow // keyed by session id
	values    []*entity.MeasuredValue
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions:  make(map[uuid.UUID]*entity.ChatSession),
		configs:   make(map[uuid.UUID]*entity.ChartConfiguration),
		workflows: make(map[uuid.UUID]*entity.SessionWorkflow),
	}
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeSessionRepo{store: u.store}
}

func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeMessageRepo{store: u.store}
}

func (u *fakeUow) ChartConfigurationRepository() contract.ChartConfigurationRepository {
	return &fakeConfigRepo{store: u.store}
}

func (u *fakeUow) ChartTypeRepository() contract.ChartTypeRepository {
	return &fakeTypeRepo{store: u.store}
}

func (u *fakeUow) SessionWorkflowRepository() contract.SessionWorkflowRepository {
	return &fakeWorkflowRepo{store: u.store}
}

func (u *fakeUow) MeasuredValueRepository() contract.MeasuredValueRepository {
	return &fakeValueRepo{store: u.store}
}

// sessions

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	copied := *session
	r.store.sessions[session.Id] = &copied
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	copied := *session
	r.store.sessions[session.Id] = &copied
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.sessions, id)
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	for _, s := range r.store.sessions {
		if matchSession(s, specs) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var out []*entity.ChatSession
	for _, s := range r.store.sessions {
		if matchSession(s, specs) {
			copied := *s
			out = append(out, &copied)
		}
	}
	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "created_at" {
			sort.Slice(out, func(i, j int) bool {
				if order.Desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func matchSession(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.ByUserID:
			if s.UserId != v.UserID {
				return false
			}
		case specification.ActiveOnly:
			if !s.IsActive {
				return false
			}
		}
	}
	return true
}

// messages

type fakeMessageRepo struct {
	store *fakeStore
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	copied := *message
	r.store.messages = append(r.store.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) Update(ctx context.Context, message *entity.ChatMessage) error {
	for i, m := range r.store.messages {
		if m.Id == message.Id {
			copied := *message
			r.store.messages[i] = &copied
			return nil
		}
	}
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	for _, m := range r.store.messages {
		if matchMessage(m, specs) {
			copied := *m
			out = append(out, &copied)
		}
	}
	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "created_at" {
			sort.Slice(out, func(i, j int) bool {
				if order.Desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) FindLatest(ctx context.Context, sessionId uuid.UUID, role string) (*entity.ChatMessage, error) {
	var latest *entity.ChatMessage
	for _, m := range r.store.messages {
		if m.ChatSessionId != sessionId || m.Role != role {
			continue
		}
		if latest == nil || m.CreatedAt.After(latest.CreatedAt) {
			latest = m
			continue
		}
		// id tie-break mirrors ORDER BY created_at DESC, id DESC
		if m.CreatedAt.Equal(latest.CreatedAt) && bytes.Compare(m.Id[:], latest.Id[:]) > 0 {
			latest = m
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func matchMessage(m *entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if m.Id != v.ID {
				return false
			}
		case specification.ByChatSessionID:
			if m.ChatSessionId != v.ChatSessionID {
				return false
			}
		case specification.ByRole:
			if m.Role != v.Role {
				return false
			}
		}
	}
	return true
}

// chart configurations

type fakeConfigRepo struct {
	store *fakeStore
}

func (r *fakeConfigRepo) Create(ctx context.Context, config *entity.ChartConfiguration) error {
	copied := *config
	r.store.configs[config.ChatSessionId] = &copied
	return nil
}

func (r *fakeConfigRepo) Update(ctx context.Context, config *entity.ChartConfiguration) error {
	copied := *config
	r.store.configs[config.ChatSessionId] = &copied
	return nil
}

func (r *fakeConfigRepo) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.ChartConfiguration, error) {
	if c, ok := r.store.configs[sessionId]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

// chart types

type fakeTypeRepo struct {
	store *fakeStore
}

func (r *fakeTypeRepo) Create(ctx context.Context, chartType *entity.ChartType) error {
	copied := *chartType
	r.store.types = append(r.store.types, &copied)
	return nil
}

func (r *fakeTypeRepo) FindByCode(ctx context.Context, code string) (*entity.ChartType, error) {
	for _, t := range r.store.types {
		if t.Code == code {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeTypeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChartType, error) {
	for _, t := range r.store.types {
		if matchType(t, specs) {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeTypeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChartType, error) {
	var out []*entity.ChartType
	for _, t := range r.store.types {
		if matchType(t, specs) {
			copied := *t
			out = append(out, &copied)
		}
	}
	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "name" {
			sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		}
	}
	return out, nil
}

func matchType(t *entity.ChartType, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if t.Id != v.ID {
				return false
			}
		case specification.ActiveOnly:
			if !t.IsActive {
				return false
			}
		}
	}
	return true
}

// workflows

type fakeWorkflowRepo struct {
	store *fakeStore
}

func (r *fakeWorkflowRepo) Create(ctx context.Context, workflow *entity.SessionWorkflow) error {
	copied := *workflow
	r.store.workflows[workflow.ChatSessionId] = &copied
	return nil
}

func (r *fakeWorkflowRepo) Update(ctx context.Context, workflow *entity.SessionWorkflow) error {
	copied := *workflow
	r.store.workflows[workflow.ChatSessionId] = &copied
	return nil
}

func (r *fakeWorkflowRepo) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.SessionWorkflow, error) {
	if w, ok := r.store.workflows[sessionId]; ok {
		copied := *w
		return &copied, nil
	}
	return nil, nil
}

// measured values

type fakeValueRepo struct {
	store *fakeStore
}

func (r *fakeValueRepo) Create(ctx context.Context, value *entity.MeasuredValue) error {
	copied := *value
	r.store.values = append(r.store.values, &copied)
	return nil
}

func (r *fakeValueRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MeasuredValue, error) {
	var out []*entity.MeasuredValue
	for _, v := range r.store.values {
		keep := true
		for _, spec := range specs {
			if bySession, ok := spec.(specification.ByChatSessionID); ok && v.ChatSessionId != bySession.ChatSessionID {
				keep = false
			}
		}
		if keep {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

// collaborators

type stubGenerator struct {
	sql     string
	err     error
	calls   int
	history []sqlgen.Message
}

func (g *stubGenerator) Generate(ctx context.Context, history []sqlgen.Message, latest string, options ...sqlgen.Option) (string, error) {
	g.calls++
	g.history = history
	if g.err != nil {
		return "", g.err
	}
	return g.sql, nil
}

// capturingPublisher records emitted events in order.
type capturingPublisher struct {
	events []events.Event
}

func (p *capturingPublisher) PublishWorkflowEvent(ctx context.Context, evt events.Event) error {
	p.events = append(p.events, evt)
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
