package mapper

import (
	"time"

	"report-service-be/internal/entity"
	"report-service-be/internal/model"

	"gorm.io/gorm"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:         s.Id,
		UserId:     s.UserId,
		ReportName: s.ReportName,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  s.DeletedAt.Valid,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:         s.Id,
		UserId:     s.UserId,
		ReportName: s.ReportName,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

// Message mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var updatedAt *time.Time
	if !msg.UpdatedAt.IsZero() {
		t := msg.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Message:       msg.Message,
		GeneratedSql:  msg.GeneratedSql,
		CreatedAt:     msg.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	var updatedAt time.Time
	if msg.UpdatedAt != nil {
		updatedAt = *msg.UpdatedAt
	}

	return &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Message:       msg.Message,
		GeneratedSql:  msg.GeneratedSql,
		CreatedAt:     msg.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

// Measured value mappers

func (m *ChatMapper) MeasuredValueToEntity(v *model.MeasuredValue) *entity.MeasuredValue {
	if v == nil {
		return nil
	}
	return &entity.MeasuredValue{
		Id:            v.Id,
		ChatSessionId: v.ChatSessionId,
		Name:          v.Name,
		Description:   v.Description,
		Query:         v.Query,
		CreatedAt:     v.CreatedAt,
	}
}

func (m *ChatMapper) MeasuredValueToModel(v *entity.MeasuredValue) *model.MeasuredValue {
	if v == nil {
		return nil
	}
	return &model.MeasuredValue{
		Id:            v.Id,
		ChatSessionId: v.ChatSessionId,
		Name:          v.Name,
		Description:   v.Description,
		Query:         v.Query,
		CreatedAt:     v.CreatedAt,
	}
}
