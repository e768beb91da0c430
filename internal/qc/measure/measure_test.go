package measure

import (
	"reflect"
	"testing"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
)

func TestValidateBoolean(t *testing.T) {
	if err := ValidateBoolean("PF-100", "yes"); err != nil {
		t.Errorf("Expected no error with office value present, got %v", err)
	}
	if err := ValidateBoolean("", ""); err != nil {
		t.Errorf("Expected no error with both empty, got %v", err)
	}
	if err := ValidateBoolean("", "yes"); err != ErrDependencyUnmet {
		t.Errorf("Expected ErrDependencyUnmet, got %v", err)
	}
}

func TestValidateComparison(t *testing.T) {
	if msg := ValidateComparison("ISA-3", "ISA-3"); msg != "" {
		t.Errorf("Expected no advisory for equal values, got %q", msg)
	}
	if msg := ValidateComparison("ISA-3", ""); msg != "" {
		t.Errorf("Expected no advisory when floor value missing, got %q", msg)
	}
	if msg := ValidateComparison("", "ISA-3"); msg != "" {
		t.Errorf("Expected no advisory when office value missing, got %q", msg)
	}
	if msg := ValidateComparison("ISA-3", "ISA-4"); msg == "" {
		t.Error("Expected advisory for mismatched values")
	}
	// 精确比较，大小写不同视为不一致
	if msg := ValidateComparison("isa-3", "ISA-3"); msg == "" {
		t.Error("Expected advisory for case difference")
	}
}

func TestSanitizeDropsEmptyEntries(t *testing.T) {
	set := entity.MeasurementSet{
		entity.FieldWidthL:  {OfficeValue: "1200", FloorValue: "1201"},
		entity.FieldWidthR:  {},
		entity.FieldHeight1: nil,
	}

	out := Sanitize(set)

	if _, ok := out[entity.FieldWidthR]; ok {
		t.Error("Expected empty entry to be removed")
	}
	if _, ok := out[entity.FieldHeight1]; ok {
		t.Error("Expected nil entry to be removed")
	}
	m := out.Get(entity.FieldWidthL)
	if m == nil || m.OfficeValue != "1200" || m.FloorValue != "1201" {
		t.Errorf("Expected width_l kept intact, got %+v", m)
	}
}

func TestSanitizeComponentFloorRequiresOffice(t *testing.T) {
	set := entity.MeasurementSet{
		// 构件选型：没有下发值，车间确认被丢弃
		entity.FieldMullionLeft: {OfficeValue: "", FloorValue: "yes"},
		entity.FieldTransom1:    {OfficeValue: "", FloorValue: "confirmed"},
		entity.FieldBracketL:    {OfficeValue: "PF-205", FloorValue: "yes"},
		// 尺寸类不受此规则影响
		entity.FieldWidthL: {OfficeValue: "", FloorValue: "1199"},
	}

	out := Sanitize(set)

	if _, ok := out[entity.FieldMullionLeft]; ok {
		t.Error("Expected left mullion entry dropped entirely")
	}
	if _, ok := out[entity.FieldTransom1]; ok {
		t.Error("Expected trans_1 entry dropped entirely")
	}
	if m := out.Get(entity.FieldBracketL); m == nil || m.FloorValue != "yes" {
		t.Errorf("Expected bracket_l floor value kept, got %+v", m)
	}
	if m := out.Get(entity.FieldWidthL); m == nil || m.FloorValue != "1199" {
		t.Errorf("Expected width_l floor value kept without office value, got %+v", m)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	set := entity.MeasurementSet{
		entity.FieldWidthL:       {OfficeValue: "1200"},
		entity.FieldMullionLeft:  {FloorValue: "yes"},
		entity.FieldMullionRight: {OfficeValue: "PF-101", FloorValue: "yes"},
		entity.FieldISAType:      {OfficeValue: "ISA-3", FloorValue: "ISA-4"},
	}

	once := Sanitize(set)
	twice := Sanitize(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Expected Sanitize to be idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestSanitizeDoesNotMutateInput(t *testing.T) {
	set := entity.MeasurementSet{
		entity.FieldMullionLeft: {OfficeValue: "", FloorValue: "yes"},
	}

	Sanitize(set)

	if set[entity.FieldMullionLeft].FloorValue != "yes" {
		t.Error("Expected input set untouched")
	}
}

func TestAdvisoriesMismatch(t *testing.T) {
	set := entity.MeasurementSet{
		entity.FieldISAType: {OfficeValue: "ISA-3", FloorValue: "ISA-4"},
		entity.FieldWidthL:  {OfficeValue: "1200", FloorValue: "9999"},
	}

	advisories := Advisories(set)

	// 尺寸类不参与比对，只有 isa_type 产生提示
	if len(advisories) != 1 {
		t.Fatalf("Expected 1 advisory, got %d: %v", len(advisories), advisories)
	}
	expected := `isa_type: office value "ISA-3" and floor value "ISA-4" do not match`
	if advisories[0] != expected {
		t.Errorf("Expected %q, got %q", expected, advisories[0])
	}
}

func TestAdvisoriesNoneWhenConsistent(t *testing.T) {
	set := entity.MeasurementSet{
		entity.FieldISAType: {OfficeValue: "ISA-3", FloorValue: "ISA-3"},
	}
	if advisories := Advisories(set); len(advisories) != 0 {
		t.Errorf("Expected no advisories, got %v", advisories)
	}

	// 只有一侧有值也不提示
	set[entity.FieldISAType] = &entity.Measurement{OfficeValue: "ISA-3"}
	if advisories := Advisories(set); len(advisories) != 0 {
		t.Errorf("Expected no advisories with floor value missing, got %v", advisories)
	}
}
