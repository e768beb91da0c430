package repository

import (
	"context"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"gorm.io/gorm"
)

type QCSessionRepository struct {
	db *gorm.DB
}

func NewQCSessionRepository(db *gorm.DB) *QCSessionRepository {
	return &QCSessionRepository{db: db}
}

// List 质检会话列表，按执行时间倒序
func (r *QCSessionRepository) List(ctx context.Context) ([]entity.QCSession, error) {
	var sessions []entity.QCSession
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Inspector").
		Preload("AttributeValues").
		Order("performed_at DESC, id DESC").
		Find(&sessions).Error
	return sessions, err
}

// FindByID 会话详情，预加载属性取值及其定义
func (r *QCSessionRepository) FindByID(ctx context.Context, id uint) (*entity.QCSession, error) {
	var session entity.QCSession
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Inspector").
		Preload("AttributeValues").
		Preload("AttributeValues.Attribute").
		First(&session, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &session, nil
}

// Create 创建会话及属性取值，并在同一事务内将成品标记为 qc_passed
func (r *QCSessionRepository) Create(ctx context.Context, session *entity.QCSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Product{}).
			Where("id = ?", session.ProductID).
			Update("status", entity.ProductStatusQCPassed).Error
	})
}
