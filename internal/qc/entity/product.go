package entity

import "time"

// 产品状态
const (
	ProductStatusPending  = "pending"
	ProductStatusQCPassed = "qc_passed"
	ProductStatusShipped  = "shipped"
	ProductStatusComplete = "complete"
)

// Product 成品（面板成品的履历条目）
type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ProductNumber string    `json:"product_number" gorm:"size:50;not null;uniqueIndex"`
	Status        string    `json:"status" gorm:"size:20;not null"`
	WarehouseID   *uint     `json:"warehouse_id"`
	CreatedAt     time.Time `json:"created_at"`

	Warehouse *Warehouse        `json:"warehouse,omitempty" gorm:"foreignKey:WarehouseID"`
	Shipments []ProductShipment `json:"shipments,omitempty" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}

// ValidProductStatus 状态枚举校验
func ValidProductStatus(s string) bool {
	switch s {
	case ProductStatusPending, ProductStatusQCPassed, ProductStatusShipped, ProductStatusComplete:
		return true
	}
	return false
}
