package entity

import "time"

// Warehouse 仓库
type Warehouse struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Name     string  `json:"name" gorm:"size:100;not null"`
	Location *string `json:"location" gorm:"type:text"`
}

func (Warehouse) TableName() string {
	return "warehouses"
}

// PartType 零件大类
type PartType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`

	Subtypes []PartSubtype `json:"subtypes,omitempty" gorm:"foreignKey:PartTypeID"`
}

func (PartType) TableName() string {
	return "part_types"
}

// PartSubtype 零件细类
type PartSubtype struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	PartTypeID uint   `json:"part_type_id" gorm:"not null;index"`
	Name       string `json:"name" gorm:"size:200;not null"`

	PartType *PartType `json:"part_type,omitempty" gorm:"foreignKey:PartTypeID"`
}

func (PartSubtype) TableName() string {
	return "part_subtypes"
}

// InventorySnapshot 某日某仓库某细类的库存快照，数量不为负
type InventorySnapshot struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	PartSubtypeID uint      `json:"part_subtype_id" gorm:"not null;index"`
	WarehouseID   uint      `json:"warehouse_id" gorm:"not null;index"`
	Quantity      int       `json:"quantity" gorm:"not null;check:quantity >= 0"`
	SnapshotDate  time.Time `json:"snapshot_date" gorm:"type:date;not null"`

	PartSubtype *PartSubtype `json:"part_subtype,omitempty" gorm:"foreignKey:PartSubtypeID"`
	Warehouse   *Warehouse   `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
}

func (InventorySnapshot) TableName() string {
	return "inventory_snapshots"
}

// PartShipment 零件到货记录，数量为正
type PartShipment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	PartSubtypeID uint      `json:"part_subtype_id" gorm:"not null;index"`
	WarehouseID   uint      `json:"warehouse_id" gorm:"not null;index"`
	Quantity      int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	ReceivedAt    time.Time `json:"received_at" gorm:"not null"`
	Vendor        *string   `json:"vendor" gorm:"size:200"`

	PartSubtype *PartSubtype `json:"part_subtype,omitempty" gorm:"foreignKey:PartSubtypeID"`
	Warehouse   *Warehouse   `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
}

func (PartShipment) TableName() string {
	return "part_shipments"
}

// Container 发运集装箱
type Container struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Description *string `json:"description" gorm:"type:text"`
	Capacity    *int    `json:"capacity"`
}

func (Container) TableName() string {
	return "containers"
}

// ProductShipment 成品发运记录
type ProductShipment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProductID   uint      `json:"product_id" gorm:"not null;index"`
	ContainerID *uint     `json:"container_id"`
	ShippedAt   time.Time `json:"shipped_at" gorm:"not null"`
	Destination *string   `json:"destination" gorm:"size:200"`

	Product   *Product   `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Container *Container `json:"container,omitempty" gorm:"foreignKey:ContainerID"`
}

func (ProductShipment) TableName() string {
	return "product_shipments"
}
