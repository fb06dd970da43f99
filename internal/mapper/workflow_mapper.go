package mapper

import (
	"report-service-be/internal/entity"
	"report-service-be/internal/model"
)

type WorkflowMapper struct{}

func NewWorkflowMapper() *WorkflowMapper {
	return &WorkflowMapper{}
}

func (m *WorkflowMapper) SessionWorkflowToEntity(w *model.SessionWorkflow) *entity.SessionWorkflow {
	if w == nil {
		return nil
	}
	return &entity.SessionWorkflow{
		Id:                 w.Id,
		ChatSessionId:      w.ChatSessionId,
		HasReportName:      w.HasReportName,
		HasMessageQuery:    w.HasMessageQuery,
		HasChartConfigured: w.HasChartConfigured,
		IsPublished:        w.IsPublished,
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
	}
}

func (m *WorkflowMapper) SessionWorkflowToModel(w *entity.SessionWorkflow) *model.SessionWorkflow {
	if w == nil {
		return nil
	}
	return &model.SessionWorkflow{
		Id:                 w.Id,
		ChatSessionId:      w.ChatSessionId,
		HasReportName:      w.HasReportName,
		HasMessageQuery:    w.HasMessageQuery,
		HasChartConfigured: w.HasChartConfigured,
		IsPublished:        w.IsPublished,
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
	}
}
