package repository

import (
	"context"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// ListWarehouses 仓库列表
func (r *InventoryRepository) ListWarehouses(ctx context.Context) ([]entity.Warehouse, error) {
	var warehouses []entity.Warehouse
	err := r.db.WithContext(ctx).Order("id ASC").Find(&warehouses).Error
	return warehouses, err
}

// ListPartTypes 零件大类列表
func (r *InventoryRepository) ListPartTypes(ctx context.Context) ([]entity.PartType, error) {
	var types []entity.PartType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&types).Error
	return types, err
}

// ListPartSubtypes 零件细类列表，可按大类过滤
func (r *InventoryRepository) ListPartSubtypes(ctx context.Context, partTypeID uint) ([]entity.PartSubtype, error) {
	var subtypes []entity.PartSubtype
	q := r.db.WithContext(ctx).Preload("PartType")
	if partTypeID != 0 {
		q = q.Where("part_type_id = ?", partTypeID)
	}
	err := q.Order("id ASC").Find(&subtypes).Error
	return subtypes, err
}

// SnapshotFilter 库存快照过滤条件
type SnapshotFilter struct {
	WarehouseID   uint
	PartSubtypeID uint
}

// ListSnapshots 库存快照，按日期倒序
func (r *InventoryRepository) ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]entity.InventorySnapshot, error) {
	var snapshots []entity.InventorySnapshot
	q := r.db.WithContext(ctx).
		Preload("PartSubtype").
		Preload("Warehouse")
	if filter.WarehouseID != 0 {
		q = q.Where("warehouse_id = ?", filter.WarehouseID)
	}
	if filter.PartSubtypeID != 0 {
		q = q.Where("part_subtype_id = ?", filter.PartSubtypeID)
	}
	err := q.Order("snapshot_date DESC, id DESC").Find(&snapshots).Error
	return snapshots, err
}

// ListPartShipments 零件到货记录，按到货时间倒序
func (r *InventoryRepository) ListPartShipments(ctx context.Context, warehouseID uint) ([]entity.PartShipment, error) {
	var shipments []entity.PartShipment
	q := r.db.WithContext(ctx).
		Preload("PartSubtype").
		Preload("Warehouse")
	if warehouseID != 0 {
		q = q.Where("warehouse_id = ?", warehouseID)
	}
	err := q.Order("received_at DESC, id DESC").Find(&shipments).Error
	return shipments, err
}
