package repository

import (
	"context"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"gorm.io/gorm"
)

type ProductPartRepository struct {
	db *gorm.DB
}

func NewProductPartRepository(db *gorm.DB) *ProductPartRepository {
	return &ProductPartRepository{db: db}
}

// List 模具列表，typeFilter 非空时按类型过滤
func (r *ProductPartRepository) List(ctx context.Context, typeFilter string) ([]entity.ProductPart, error) {
	var parts []entity.ProductPart
	q := r.db.WithContext(ctx)
	if typeFilter != "" {
		q = q.Where("product_part_type = ?", typeFilter)
	}
	err := q.Order("product_part_id ASC").Find(&parts).Error
	return parts, err
}

// FindByID 查找模具
func (r *ProductPartRepository) FindByID(ctx context.Context, id uint) (*entity.ProductPart, error) {
	var part entity.ProductPart
	err := r.db.WithContext(ctx).First(&part, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &part, nil
}

// Create 创建模具
func (r *ProductPartRepository) Create(ctx context.Context, part *entity.ProductPart) error {
	return r.db.WithContext(ctx).Create(part).Error
}

// Update 更新模具
func (r *ProductPartRepository) Update(ctx context.Context, part *entity.ProductPart) error {
	return r.db.WithContext(ctx).Save(part).Error
}

// Delete 删除模具并级联删除颜色关联
func (r *ProductPartRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_part_id = ?", id).Delete(&entity.ProductColor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.ProductPart{}, "id = ?", id).Error
	})
}

// ListColors 模具已关联的颜色
func (r *ProductPartRepository) ListColors(ctx context.Context, partID uint) ([]entity.ProductColor, error) {
	var colors []entity.ProductColor
	err := r.db.WithContext(ctx).
		Preload("CoatingColor").
		Where("product_part_id = ?", partID).
		Find(&colors).Error
	return colors, err
}

// ReplaceColors 重建模具的颜色关联
func (r *ProductPartRepository) ReplaceColors(ctx context.Context, partID uint, coatingColorIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_part_id = ?", partID).Delete(&entity.ProductColor{}).Error; err != nil {
			return err
		}
		for _, colorID := range coatingColorIDs {
			pc := entity.ProductColor{ProductPartID: partID, CoatingColorID: colorID}
			if err := tx.Create(&pc).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
