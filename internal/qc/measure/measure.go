// Package measure 实现测量字段的清洗与一致性规则。
// 规则按字段族统一应用：构件选型族（mullion/transom/bracket）的车间确认
// 必须有下发值才有意义；比对族（isa_type）两值不一致只产生提示，不阻止保存。
package measure

import (
	"errors"
	"fmt"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
)

// ErrDependencyUnmet 车间确认值存在但下发值为空
var ErrDependencyUnmet = errors.New("floor confirmation requires an office value")

// ValidateBoolean 校验确认型字段：floor_value 只能在 office_value 非空时设置
func ValidateBoolean(officeValue, floorValue string) error {
	if floorValue != "" && officeValue == "" {
		return ErrDependencyUnmet
	}
	return nil
}

// ValidateComparison 校验比对型字段：两值都存在且不相等时返回提示文本。
// 精确区分大小写，不做任何规范化。
func ValidateComparison(officeValue, floorValue string) string {
	if officeValue == "" || floorValue == "" {
		return ""
	}
	if officeValue == floorValue {
		return ""
	}
	return fmt.Sprintf("office value %q and floor value %q do not match", officeValue, floorValue)
}

// Sanitize 返回清洗后的测量集合副本：
//   - nil 与全空条目被移除；
//   - 构件选型族字段在 office_value 为空时丢弃 floor_value
//     （没有下发规格时车间确认无意义）。
//
// 尺寸/填充/比对族不受丢弃规则影响。幂等：Sanitize(Sanitize(s)) == Sanitize(s)。
func Sanitize(set entity.MeasurementSet) entity.MeasurementSet {
	if set == nil {
		return entity.MeasurementSet{}
	}
	out := make(entity.MeasurementSet, len(set))
	for field, m := range set {
		if m.IsZero() {
			continue
		}
		cp := *m
		if field.Family() == entity.FamilyComponent && cp.OfficeValue == "" {
			cp.FloorValue = ""
		}
		if cp.OfficeValue == "" && cp.FloorValue == "" {
			continue
		}
		out[field] = &cp
	}
	return out
}

// Advisories 收集比对族字段的不一致提示（按字段固定顺序）
func Advisories(set entity.MeasurementSet) []string {
	var advisories []string
	for _, field := range entity.Fields() {
		if field.Family() != entity.FamilyComparison {
			continue
		}
		m := set.Get(field)
		if m == nil {
			continue
		}
		if msg := ValidateComparison(m.OfficeValue, m.FloorValue); msg != "" {
			advisories = append(advisories, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	return advisories
}
