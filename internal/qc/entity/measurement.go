package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Measurement 一对测量值：GZ办公室下发的规格值 + 工厂车间的确认/实测值
type Measurement struct {
	OfficeValue string `json:"office_value,omitempty"`
	FloorValue  string `json:"floor_value,omitempty"`
}

// IsZero 两个值均为空
func (m *Measurement) IsZero() bool {
	return m == nil || (m.OfficeValue == "" && m.FloorValue == "")
}

// Field 面板测量字段名（封闭枚举）
type Field string

// FieldFamily 字段族，决定清洗/校验规则的适用范围
type FieldFamily int

const (
	// FamilyDimension 尺寸类：车间直接记录，不受下发值约束
	FamilyDimension FieldFamily = iota
	// FamilyComponent 构件选型类（mullion/transom/bracket）：车间确认必须有下发值
	FamilyComponent
	// FamilyInfill 填充类型/颜色
	FamilyInfill
	// FamilyComparison 比对类：两值都存在且不一致时产生提示
	FamilyComparison
)

const (
	FieldWidthL              Field = "width_l"
	FieldWidthR              Field = "width_r"
	FieldHeight1             Field = "height_1"
	FieldHeight2             Field = "height_2"
	FieldHeight3             Field = "height_3"
	FieldHeight4             Field = "height_4"
	FieldCavityROHeightTotal Field = "cavity_ro_height_total"
	FieldCavityDiagL         Field = "cavity_diag_cw_pan_l"
	FieldCavityDiagR         Field = "cavity_diag_cw_pan_r"
	FieldMullionLeft         Field = "left"
	FieldMullionMiddle       Field = "middle"
	FieldMullionRight        Field = "right"
	FieldMullionHead         Field = "head"
	FieldMullionSill         Field = "sill"
	FieldTransom1            Field = "trans_1"
	FieldTransom2            Field = "trans_2"
	FieldTransom3            Field = "trans_3"
	FieldBracketL            Field = "bracket_l"
	FieldBracketR            Field = "bracket_r"
	FieldInfillFSLocation    Field = "infill_fs_location"
	FieldInfills1Type        Field = "infills_1_type"
	FieldInfills2Type        Field = "infills_2_type"
	FieldInfills3Type        Field = "infills_3_type"
	FieldInfills4Type        Field = "infills_4_type"
	FieldInfillsRight1Type   Field = "infills_right_1_type"
	FieldInfillsRight2Type   Field = "infills_right_2_type"
	FieldInfillsRight3Type   Field = "infills_right_3_type"
	FieldInfillsRight4Type   Field = "infills_right_4_type"
	FieldInfills1Color       Field = "infills_1_color"
	FieldInfills2Color       Field = "infills_2_color"
	FieldInfills3Color       Field = "infills_3_color"
	FieldInfills4Color       Field = "infills_4_color"
	FieldInfillsRight1Color  Field = "infills_right_1_color"
	FieldInfillsRight2Color  Field = "infills_right_2_color"
	FieldInfillsRight3Color  Field = "infills_right_3_color"
	FieldInfillsRight4Color  Field = "infills_right_4_color"
	FieldISAType             Field = "isa_type"
)

// fieldOrder 字段的固定顺序，序列化与遍历都按此顺序
var fieldOrder = []Field{
	FieldWidthL, FieldWidthR,
	FieldHeight1, FieldHeight2, FieldHeight3, FieldHeight4,
	FieldCavityROHeightTotal, FieldCavityDiagL, FieldCavityDiagR,
	FieldMullionLeft, FieldMullionMiddle, FieldMullionRight, FieldMullionHead, FieldMullionSill,
	FieldTransom1, FieldTransom2, FieldTransom3,
	FieldBracketL, FieldBracketR,
	FieldInfillFSLocation,
	FieldInfills1Type, FieldInfills2Type, FieldInfills3Type, FieldInfills4Type,
	FieldInfillsRight1Type, FieldInfillsRight2Type, FieldInfillsRight3Type, FieldInfillsRight4Type,
	FieldInfills1Color, FieldInfills2Color, FieldInfills3Color, FieldInfills4Color,
	FieldInfillsRight1Color, FieldInfillsRight2Color, FieldInfillsRight3Color, FieldInfillsRight4Color,
	FieldISAType,
}

var fieldFamilies = map[Field]FieldFamily{
	FieldWidthL:              FamilyDimension,
	FieldWidthR:              FamilyDimension,
	FieldHeight1:             FamilyDimension,
	FieldHeight2:             FamilyDimension,
	FieldHeight3:             FamilyDimension,
	FieldHeight4:             FamilyDimension,
	FieldCavityROHeightTotal: FamilyDimension,
	FieldCavityDiagL:         FamilyDimension,
	FieldCavityDiagR:         FamilyDimension,
	FieldMullionLeft:         FamilyComponent,
	FieldMullionMiddle:       FamilyComponent,
	FieldMullionRight:        FamilyComponent,
	FieldMullionHead:         FamilyComponent,
	FieldMullionSill:         FamilyComponent,
	FieldTransom1:            FamilyComponent,
	FieldTransom2:            FamilyComponent,
	FieldTransom3:            FamilyComponent,
	FieldBracketL:            FamilyComponent,
	FieldBracketR:            FamilyComponent,
	FieldInfillFSLocation:    FamilyInfill,
	FieldInfills1Type:        FamilyInfill,
	FieldInfills2Type:        FamilyInfill,
	FieldInfills3Type:        FamilyInfill,
	FieldInfills4Type:        FamilyInfill,
	FieldInfillsRight1Type:   FamilyInfill,
	FieldInfillsRight2Type:   FamilyInfill,
	FieldInfillsRight3Type:   FamilyInfill,
	FieldInfillsRight4Type:   FamilyInfill,
	FieldInfills1Color:       FamilyInfill,
	FieldInfills2Color:       FamilyInfill,
	FieldInfills3Color:       FamilyInfill,
	FieldInfills4Color:       FamilyInfill,
	FieldInfillsRight1Color:  FamilyInfill,
	FieldInfillsRight2Color:  FamilyInfill,
	FieldInfillsRight3Color:  FamilyInfill,
	FieldInfillsRight4Color:  FamilyInfill,
	FieldISAType:             FamilyComparison,
}

// Fields 返回全部测量字段（固定顺序）
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// Family 返回字段所属族
func (f Field) Family() FieldFamily {
	return fieldFamilies[f]
}

// legacyFieldNames 旧版载荷使用的字段别名，收到时并入对应的规范字段
var legacyFieldNames = map[string]Field{
	"type_gz_factory": FieldISAType,
}

// KnownField 判断名字是否属于测量字段枚举；旧别名解析为规范字段
func KnownField(name string) (Field, bool) {
	f := Field(name)
	if _, ok := fieldFamilies[f]; ok {
		return f, true
	}
	if canonical, ok := legacyFieldNames[name]; ok {
		return canonical, true
	}
	return "", false
}

// LegacyAlias 返回字段的旧版别名（仅少数字段存在）
func LegacyAlias(f Field) (string, bool) {
	for alias, canonical := range legacyFieldNames {
		if canonical == f {
			return alias, true
		}
	}
	return "", false
}

// MeasurementSet 面板的全部测量字段，按字段名索引。
// 显式的 nil 条目表示"清空该字段"（部分更新时使用）。
type MeasurementSet map[Field]*Measurement

// Get 取某字段的测量值，可能为nil
func (s MeasurementSet) Get(f Field) *Measurement {
	if s == nil {
		return nil
	}
	return s[f]
}

// Clone 深拷贝
func (s MeasurementSet) Clone() MeasurementSet {
	if s == nil {
		return nil
	}
	out := make(MeasurementSet, len(s))
	for f, m := range s {
		if m == nil {
			out[f] = nil
			continue
		}
		cp := *m
		out[f] = &cp
	}
	return out
}

func (s MeasurementSet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

func (s *MeasurementSet) Scan(value interface{}) error {
	if value == nil {
		*s = MeasurementSet{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for MeasurementSet: %T", value)
	}
	if len(bytes) == 0 {
		*s = MeasurementSet{}
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// GormDataType jsonb列
func (MeasurementSet) GormDataType() string {
	return "jsonb"
}
