package entity

import (
	"encoding/base64"
	"time"
)

// ProductPart 铝型材模具档案。mullion/transom/bracket 测量字段的
// office_value 引用这里的 ProductPartID（自由字符串，不做外键校验）。
type ProductPart struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	ProductPartID     string     `json:"product_part_id" gorm:"size:50;not null;uniqueIndex"` // Die # (PF)
	ProductPartName   string     `json:"product_part_name" gorm:"size:100;not null"`
	ProductPartVendor *string    `json:"product_part_vendor" gorm:"size:100"` // Die # (Vendor)
	ProductPartImage  []byte     `json:"-" gorm:"type:bytea"`
	ProductPartType   *string    `json:"product_part_type" gorm:"size:100"` // e.g. Mullion
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`

	ProductColors []ProductColor `json:"-" gorm:"foreignKey:ProductPartID;references:ID;constraint:OnDelete:CASCADE"`
}

func (ProductPart) TableName() string {
	return "product_parts"
}

// ImageBase64 模具截面图的base64编码
func (p *ProductPart) ImageBase64() string {
	if len(p.ProductPartImage) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(p.ProductPartImage)
}

// CoatingColor 可选喷涂颜色
type CoatingColor struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	CoatingColorName string    `json:"coating_color_name" gorm:"size:100;not null;uniqueIndex"`
	CreatedAt        time.Time `json:"created_at"`

	ProductColors []ProductColor `json:"-" gorm:"foreignKey:CoatingColorID;references:ID;constraint:OnDelete:CASCADE"`
}

func (CoatingColor) TableName() string {
	return "coating_colors"
}

// ProductColor 模具与颜色的多对多关联
type ProductColor struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ProductPartID  uint      `json:"product_part_id" gorm:"not null;index"`
	CoatingColorID uint      `json:"coating_color_id" gorm:"not null;index"`
	CreatedAt      time.Time `json:"created_at"`

	ProductPart  *ProductPart  `json:"product_part,omitempty" gorm:"foreignKey:ProductPartID"`
	CoatingColor *CoatingColor `json:"coating_color,omitempty" gorm:"foreignKey:CoatingColorID"`
}

func (ProductColor) TableName() string {
	return "product_colors"
}
