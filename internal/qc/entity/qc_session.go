package entity

import "time"

// 质检属性数据类型
const (
	QCAttributeNumeric = "numeric"
	QCAttributeBoolean = "boolean"
	QCAttributeText    = "text"
	QCAttributeLookup  = "lookup"
	QCAttributePhoto   = "photo"
)

// QCSession 成品质检会话
type QCSession struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProductID   uint      `json:"product_id" gorm:"not null;index"`
	InspectorID *uint     `json:"inspector_id"`
	PerformedAt time.Time `json:"performed_at" gorm:"not null"`

	Product         *Product           `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Inspector       *User              `json:"inspector,omitempty" gorm:"foreignKey:InspectorID"`
	AttributeValues []QCAttributeValue `json:"attribute_values,omitempty" gorm:"foreignKey:QCID"`
}

func (QCSession) TableName() string {
	return "qc_sessions"
}

// QCAttributeDef 质检属性定义
type QCAttributeDef struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:100;not null;uniqueIndex"`
	DataType    string  `json:"data_type" gorm:"size:20;not null;check:data_type IN ('numeric','boolean','text','lookup','photo')"`
	Description *string `json:"description"`
}

func (QCAttributeDef) TableName() string {
	return "qc_attribute_defs"
}

// QCAttributeValue 质检属性取值，(qc_id, attribute_id) 联合主键
type QCAttributeValue struct {
	QCID         uint     `json:"qc_id" gorm:"column:qc_id;primaryKey"`
	AttributeID  uint     `json:"attribute_id" gorm:"primaryKey"`
	ValueNumeric *float64 `json:"value_numeric" gorm:"type:numeric(10,3)"`
	ValueText    *string  `json:"value_text"`
	LookupID     *uint    `json:"lookup_id"`
	PhotoURL     *string  `json:"photo_url"`

	Attribute *QCAttributeDef `json:"attribute,omitempty" gorm:"foreignKey:AttributeID"`
	Lookup    *Lookup         `json:"lookup,omitempty" gorm:"foreignKey:LookupID"`
}

func (QCAttributeValue) TableName() string {
	return "qc_attribute_values"
}
