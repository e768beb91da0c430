package repository

import (
	"context"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QCReportRepository struct {
	db *gorm.DB
}

func NewQCReportRepository(db *gorm.DB) *QCReportRepository {
	return &QCReportRepository{db: db}
}

// List 报告列表（不含照片二进制），另返回每份报告的照片数
func (r *QCReportRepository) List(ctx context.Context) ([]entity.QCReport, map[uint]int64, error) {
	var reports []entity.QCReport
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Order("created_at DESC, id DESC").
		Find(&reports).Error
	if err != nil {
		return nil, nil, err
	}

	type imageCount struct {
		ReportID uint
		N        int64
	}
	var rows []imageCount
	err = r.db.WithContext(ctx).Model(&entity.ReportImage{}).
		Select("report_id, count(*) AS n").
		Group("report_id").
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.ReportID] = row.N
	}
	return reports, counts, nil
}

// FindByID 报告详情，预加载照片与创建人
func (r *QCReportRepository) FindByID(ctx context.Context, id uint) (*entity.QCReport, error) {
	var report entity.QCReport
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Images").
		First(&report, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &report, nil
}

// Create 创建报告及随请求附带的照片
func (r *QCReportRepository) Create(ctx context.Context, report *entity.QCReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// Update 在单个事务内保存报告、删除指定照片并追加新照片。
// 删除不属于该报告的照片id是幂等空操作。
func (r *QCReportRepository) Update(
	ctx context.Context,
	report *entity.QCReport,
	deleteImageIDs []uint,
	newImages []entity.ReportImage,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(report).Error; err != nil {
			return err
		}

		if len(deleteImageIDs) > 0 {
			if err := tx.Where("report_id = ? AND id IN ?", report.ID, deleteImageIDs).
				Delete(&entity.ReportImage{}).Error; err != nil {
				return err
			}
		}

		for i := range newImages {
			newImages[i].ID = 0
			newImages[i].ReportRef = report.ID
			if err := tx.Create(&newImages[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete 删除报告并级联删除照片
func (r *QCReportRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&entity.ReportImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.QCReport{}, "id = ?", id).Error
	})
}
