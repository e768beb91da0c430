package entity

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// 终检枚举值
const (
	CheckPass             = "pass"
	CheckNoPassRework     = "no pass-rework"
	CheckNoPassFixJobsite = "no pass-fix at jobsite"
)

// Panel 幕墙板质检记录。37个测量字段统一存入 Measurements（jsonb），
// 清洗与校验按字段族统一遍历，不再逐字段写规则。
type Panel struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	FlID    string `json:"fl_id" gorm:"size:20;not null;index"` // 创建后不可变
	PanID   string `json:"pan_id" gorm:"size:20;not null"`
	PanName string `json:"pan_name" gorm:"size:50;not null"` // 派生: c{fl_id}.{pan_id}

	// 框架组装检查
	IPACleaned         bool `json:"ipa_cleaned" gorm:"default:false"`
	SealantFrameEnough bool `json:"sealant_frame_enough" gorm:"default:false"`

	// 测量字段（office/floor 对）
	Measurements MeasurementSet `json:"-" gorm:"type:jsonb"`

	CavitiesInvert           *int    `json:"cavities_invert"`
	QCInfillAffix            *string `json:"qc_infill_affix" gorm:"size:200"` // yes / no
	StructuralSealantRecords *string `json:"structural_sealant_records" gorm:"type:text"`
	LMR                      *string `json:"lmr" gorm:"size:1"` // L / M / R

	ProfilePhoto []byte `json:"-" gorm:"type:bytea"`

	// 终检
	EdgeBeadAttached bool    `json:"edge_bead_attached" gorm:"default:false"`
	Operable         bool    `json:"operable" gorm:"default:false"`
	CardChecked      *string `json:"card_checked" gorm:"size:20"`
	PaintDamage      *string `json:"paint_damage" gorm:"size:20"`
	GlassScratched   *string `json:"glass_scratched" gorm:"size:20"`
	CleanedReady     *string `json:"cleaned_ready" gorm:"size:20"`
	Crated           bool    `json:"crated" gorm:"default:false"`

	CreatedBy *uint `json:"created_by,omitempty"`
	UpdatedBy *uint `json:"updated_by,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	FrameCavityValues []FrameCavityValue `json:"-" gorm:"foreignKey:PanelID;constraint:OnDelete:CASCADE"`
	Photos            []PanelPhoto       `json:"-" gorm:"foreignKey:PanelID;constraint:OnDelete:CASCADE"`
}

func (Panel) TableName() string {
	return "qc_cw_panel_data"
}

// ComputePanName 按约定重算显示名
func (p *Panel) ComputePanName() {
	p.PanName = fmt.Sprintf("c%s.%s", p.FlID, p.PanID)
}

// ProfilePhotoBase64 档案照片的base64编码，空则返回""
func (p *Panel) ProfilePhotoBase64() string {
	if len(p.ProfilePhoto) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(p.ProfilePhoto)
}

// DecodeBase64Image 解码base64图片，容忍 data:image/...;base64, 前缀
func DecodeBase64Image(data string) ([]byte, error) {
	if data == "" {
		return nil, nil
	}
	if idx := strings.IndexByte(data, ','); idx >= 0 {
		data = data[idx+1:]
	}
	return base64.StdEncoding.DecodeString(data)
}

// PanelPhoto 面板附加照片（随面板级联删除）
type PanelPhoto struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PanelID   uint      `json:"panel_id" gorm:"not null;index"`
	Photo     []byte    `json:"-" gorm:"type:bytea"`
	PhotoType *string   `json:"photo_type" gorm:"size:50"`
	CreatedAt time.Time `json:"created_at"`
}

func (PanelPhoto) TableName() string {
	return "qc_cw_panel_photos"
}

// PhotoBase64 照片的base64编码
func (p *PanelPhoto) PhotoBase64() string {
	if len(p.Photo) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(p.Photo)
}

// FrameCavityAttribute 按楼层(fl_id)定义的框架腔体属性
type FrameCavityAttribute struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	FlID          string `json:"fl_id" gorm:"size:20;not null;index"`
	AttributeName string `json:"attribute_name" gorm:"size:100;not null"`
	// {"input_gz_office": bool, "factory_floor": bool}
	AttributeType JSONB `json:"attribute_type" gorm:"type:jsonb;not null"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	Values []FrameCavityValue `json:"-" gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE"`
}

func (FrameCavityAttribute) TableName() string {
	return "frame_cavities_attributes"
}

// FrameCavityValue 面板上某腔体属性的取值（随面板级联删除）
type FrameCavityValue struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	PanelID     uint    `json:"panel_id" gorm:"not null;index"`
	AttributeID uint    `json:"attribute_id" gorm:"not null;index"`
	Value       *string `json:"value" gorm:"size:255"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	Attribute *FrameCavityAttribute `json:"attribute,omitempty" gorm:"foreignKey:AttributeID"`
}

func (FrameCavityValue) TableName() string {
	return "frame_cavities_values"
}
