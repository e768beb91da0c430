package repository

import (
	"context"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PanelRepository struct {
	db *gorm.DB
}

func NewPanelRepository(db *gorm.DB) *PanelRepository {
	return &PanelRepository{db: db}
}

// Create 创建面板及随请求附带的子记录（照片、腔体属性值）
func (r *PanelRepository) Create(ctx context.Context, panel *entity.Panel) error {
	return r.db.WithContext(ctx).Create(panel).Error
}

// FindByID 查找面板，预加载子集合
func (r *PanelRepository) FindByID(ctx context.Context, id uint) (*entity.Panel, error) {
	var panel entity.Panel
	err := r.db.WithContext(ctx).
		Preload("Photos").
		Preload("FrameCavityValues").
		Preload("FrameCavityValues.Attribute").
		First(&panel, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &panel, nil
}

// ListByFloor 按楼层列出面板，按创建时间排序
func (r *PanelRepository) ListByFloor(ctx context.Context, flID string) ([]entity.Panel, error) {
	var panels []entity.Panel
	err := r.db.WithContext(ctx).
		Where("fl_id = ?", flID).
		Order("created_at ASC, id ASC").
		Find(&panels).Error
	return panels, err
}

// List 列出全部面板，flFilter 非空时按 fl_id 子串过滤
func (r *PanelRepository) List(ctx context.Context, flFilter string) ([]entity.Panel, error) {
	var panels []entity.Panel
	q := r.db.WithContext(ctx)
	if flFilter != "" {
		q = q.Where("fl_id LIKE ?", "%"+flFilter+"%")
	}
	err := q.Order("fl_id ASC, pan_id ASC").Find(&panels).Error
	return panels, err
}

// Update 在单个事务内应用整次更新：标量与测量字段、照片删除、照片新增、
// 腔体属性值upsert。删除先于新增，便于一次调用内"替换"照片；删除不存在
// 的照片id是幂等空操作。
func (r *PanelRepository) Update(
	ctx context.Context,
	panel *entity.Panel,
	deletePhotoIDs []uint,
	newPhotos []entity.PanelPhoto,
	cavityValues []entity.FrameCavityValue,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(panel).Error; err != nil {
			return err
		}

		if len(deletePhotoIDs) > 0 {
			if err := tx.Where("panel_id = ? AND id IN ?", panel.ID, deletePhotoIDs).
				Delete(&entity.PanelPhoto{}).Error; err != nil {
				return err
			}
		}

		for i := range newPhotos {
			newPhotos[i].ID = 0
			newPhotos[i].PanelID = panel.ID
			if err := tx.Create(&newPhotos[i]).Error; err != nil {
				return err
			}
		}

		for _, cv := range cavityValues {
			var existing entity.FrameCavityValue
			err := tx.Where("panel_id = ? AND attribute_id = ?", panel.ID, cv.AttributeID).
				First(&existing).Error
			switch {
			case err == nil:
				if err := tx.Model(&existing).Update("value", cv.Value).Error; err != nil {
					return err
				}
			case err == gorm.ErrRecordNotFound:
				cv.ID = 0
				cv.PanelID = panel.ID
				if err := tx.Create(&cv).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		return nil
	})
}

// Delete 删除面板并级联删除照片与腔体属性值
func (r *PanelRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("panel_id = ?", id).Delete(&entity.PanelPhoto{}).Error; err != nil {
			return err
		}
		if err := tx.Where("panel_id = ?", id).Delete(&entity.FrameCavityValue{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Panel{}, "id = ?", id).Error
	})
}

// ListPhotos 面板的附加照片，按创建顺序
func (r *PanelRepository) ListPhotos(ctx context.Context, panelID uint) ([]entity.PanelPhoto, error) {
	var photos []entity.PanelPhoto
	err := r.db.WithContext(ctx).
		Where("panel_id = ?", panelID).
		Order("created_at ASC, id ASC").
		Find(&photos).Error
	return photos, err
}
