package unitofwork

import (
	"context"

	"report-service-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to a single logical operation. Between
// Begin and Commit all repositories share one transaction, which is how a
// primary write and its workflow update stay atomic.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ChartConfigurationRepository() contract.ChartConfigurationRepository
	ChartTypeRepository() contract.ChartTypeRepository
	SessionWorkflowRepository() contract.SessionWorkflowRepository
	MeasuredValueRepository() contract.MeasuredValueRepository
}
