package unitofwork

import (
	"context"
	"fmt"

	"report-service-be/internal/repository/contract"
	"report-service-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository accessors

func (u *UnitOfWorkImpl) ChatSessionRepository() contract.ChatSessionRepository {
	return implementation.NewChatSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatMessageRepository() contract.ChatMessageRepository {
	return implementation.NewChatMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChartConfigurationRepository() contract.ChartConfigurationRepository {
	return implementation.NewChartConfigurationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChartTypeRepository() contract.ChartTypeRepository {
	return implementation.NewChartTypeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SessionWorkflowRepository() contract.SessionWorkflowRepository {
	return implementation.NewSessionWorkflowRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MeasuredValueRepository() contract.MeasuredValueRepository {
	return implementation.NewMeasuredValueRepository(u.getDB())
}
