package entity

import (
	"encoding/base64"
	"time"
)

// QCReport 打胶批次报告。StrS批号、催化剂批号、底涂信息与打胶日期/时间
// 为整份报告共享；batch_items 里每项单独记录 panels_glazed。
// 顶层 panels_glazed 仅为兼容早期无 batch_items 的报告保留。
type QCReport struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	ReportID      string     `json:"report_id" gorm:"size:50;not null;uniqueIndex"`
	StrsBatch     JSONB      `json:"strs_batch" gorm:"type:jsonb"`
	CatalystBatch JSONB      `json:"catalyst_batch" gorm:"type:jsonb"`
	PrimerC       JSONB      `json:"primer_c" gorm:"type:jsonb"`
	BatchItems    JSONBArray `json:"batch_items" gorm:"type:jsonb"`
	PanelsGlazed  *string    `json:"panels_glazed" gorm:"size:100"`
	DateGlazed    *time.Time `json:"date_glazed" gorm:"type:date"`
	// 打胶时间，格式 HH:MM
	TimeGlazed *string   `json:"time_glazed" gorm:"size:5"`
	CreatedBy  *uint     `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Creator *User         `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Images  []ReportImage `json:"images,omitempty" gorm:"foreignKey:ReportRef;references:ID"`
}

func (QCReport) TableName() string {
	return "qc_reports"
}

// ReportImage 报告照片（随报告级联删除）
type ReportImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ReportRef uint      `json:"report_id" gorm:"column:report_id;not null;index"`
	Image     []byte    `json:"-" gorm:"column:image_data;type:bytea"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReportImage) TableName() string {
	return "report_images"
}

// ImageBase64 照片的base64编码
func (i *ReportImage) ImageBase64() string {
	if len(i.Image) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(i.Image)
}
