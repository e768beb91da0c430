package repository

import (
	"context"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"gorm.io/gorm"
)

type CoatingColorRepository struct {
	db *gorm.DB
}

func NewCoatingColorRepository(db *gorm.DB) *CoatingColorRepository {
	return &CoatingColorRepository{db: db}
}

// List 颜色列表
func (r *CoatingColorRepository) List(ctx context.Context) ([]entity.CoatingColor, error) {
	var colors []entity.CoatingColor
	err := r.db.WithContext(ctx).Order("coating_color_name ASC").Find(&colors).Error
	return colors, err
}

// FindByID 查找颜色
func (r *CoatingColorRepository) FindByID(ctx context.Context, id uint) (*entity.CoatingColor, error) {
	var color entity.CoatingColor
	err := r.db.WithContext(ctx).First(&color, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &color, nil
}

// Create 创建颜色
func (r *CoatingColorRepository) Create(ctx context.Context, color *entity.CoatingColor) error {
	return r.db.WithContext(ctx).Create(color).Error
}

// Update 更新颜色
func (r *CoatingColorRepository) Update(ctx context.Context, color *entity.CoatingColor) error {
	return r.db.WithContext(ctx).Save(color).Error
}

// Delete 删除颜色
func (r *CoatingColorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.CoatingColor{}, "id = ?", id).Error
}

// CountReferences 颜色被 product_colors 引用的数量（被引用时禁止删除）
func (r *CoatingColorRepository) CountReferences(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ProductColor{}).
		Where("coating_color_id = ?", id).
		Count(&count).Error
	return count, err
}
