package entity

// LookupType 枚举选项集的类型
type LookupType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`

	Lookups []Lookup `json:"lookups,omitempty" gorm:"foreignKey:LookupTypeID;constraint:OnDelete:CASCADE"`
}

func (LookupType) TableName() string {
	return "lookup_types"
}

// Lookup 枚举选项值
type Lookup struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	LookupTypeID uint    `json:"lookup_type_id" gorm:"not null;index"`
	Code         string  `json:"code" gorm:"size:50;not null"`
	Label        string  `json:"label" gorm:"size:200;not null"`
	ParentID     *uint   `json:"parent_id"`
	Parent       *Lookup `json:"-" gorm:"foreignKey:ParentID"`
}

func (Lookup) TableName() string {
	return "lookups"
}
