package repository

import (
	"context"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"gorm.io/gorm"
)

type FrameCavityRepository struct {
	db *gorm.DB
}

func NewFrameCavityRepository(db *gorm.DB) *FrameCavityRepository {
	return &FrameCavityRepository{db: db}
}

// ListAttributesByFloor 某楼层的全部腔体属性定义
func (r *FrameCavityRepository) ListAttributesByFloor(ctx context.Context, flID string) ([]entity.FrameCavityAttribute, error) {
	var attrs []entity.FrameCavityAttribute
	err := r.db.WithContext(ctx).
		Where("fl_id = ?", flID).
		Order("id ASC").
		Find(&attrs).Error
	return attrs, err
}

// FindAttributeByID 查找属性定义
func (r *FrameCavityRepository) FindAttributeByID(ctx context.Context, id uint) (*entity.FrameCavityAttribute, error) {
	var attr entity.FrameCavityAttribute
	err := r.db.WithContext(ctx).First(&attr, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &attr, nil
}

// CreateAttribute 创建属性定义
func (r *FrameCavityRepository) CreateAttribute(ctx context.Context, attr *entity.FrameCavityAttribute) error {
	return r.db.WithContext(ctx).Create(attr).Error
}

// UpdateAttribute 更新属性定义
func (r *FrameCavityRepository) UpdateAttribute(ctx context.Context, attr *entity.FrameCavityAttribute) error {
	return r.db.WithContext(ctx).Save(attr).Error
}

// DeleteAttribute 删除属性定义并级联删除其取值
func (r *FrameCavityRepository) DeleteAttribute(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attribute_id = ?", id).Delete(&entity.FrameCavityValue{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.FrameCavityAttribute{}, "id = ?", id).Error
	})
}

// ListValuesByPanel 面板的腔体属性取值，带属性定义
func (r *FrameCavityRepository) ListValuesByPanel(ctx context.Context, panelID uint) ([]entity.FrameCavityValue, error) {
	var values []entity.FrameCavityValue
	err := r.db.WithContext(ctx).
		Preload("Attribute").
		Where("panel_id = ?", panelID).
		Order("id ASC").
		Find(&values).Error
	return values, err
}
