package repository

import (
	"context"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List 成品列表，statusFilter 非空时按状态过滤
func (r *ProductRepository) List(ctx context.Context, statusFilter string) ([]entity.Product, error) {
	var products []entity.Product
	q := r.db.WithContext(ctx).Preload("Warehouse")
	if statusFilter != "" {
		q = q.Where("status = ?", statusFilter)
	}
	err := q.Order("created_at DESC, id DESC").Find(&products).Error
	return products, err
}

// FindByID 查找成品
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Warehouse").
		Preload("Shipments").
		Preload("Shipments.Container").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &product, nil
}

// Create 创建成品
func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}
