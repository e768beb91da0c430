package repository

import (
	"context"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"gorm.io/gorm"
)

type LookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// ListTypesWithValues 一次性取出全部类型及其取值（单次批量查询，避免逐类型请求）
func (r *LookupRepository) ListTypesWithValues(ctx context.Context) ([]entity.LookupType, error) {
	var types []entity.LookupType
	err := r.db.WithContext(ctx).
		Preload("Lookups", func(db *gorm.DB) *gorm.DB {
			return db.Order("lookups.id ASC")
		}).
		Order("id ASC").
		Find(&types).Error
	return types, err
}

// FindTypeByID 单个类型及其取值
func (r *LookupRepository) FindTypeByID(ctx context.Context, id uint) (*entity.LookupType, error) {
	var lt entity.LookupType
	err := r.db.WithContext(ctx).
		Preload("Lookups", func(db *gorm.DB) *gorm.DB {
			return db.Order("lookups.id ASC")
		}).
		First(&lt, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &lt, nil
}
