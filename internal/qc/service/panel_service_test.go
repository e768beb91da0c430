package service

import (
	"encoding/json"
	"testing"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
)

func TestPanelPayloadUnmarshalFlattenedFields(t *testing.T) {
	body := []byte(`{
		"fl_id": "07",
		"pan_id": "15A",
		"ipa_cleaned": true,
		"width_l": {"office_value": "1200", "floor_value": "1201"},
		"left": {"office_value": "PF-100", "floor_value": "yes"},
		"isa_type": {"office_value": "ISA-3"},
		"unknown_field": {"office_value": "ignored"}
	}`)

	var payload PanelPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if payload.FlID == nil || *payload.FlID != "07" {
		t.Errorf("Expected fl_id 07, got %v", payload.FlID)
	}
	if payload.IPACleaned == nil || !*payload.IPACleaned {
		t.Error("Expected ipa_cleaned true")
	}

	m := payload.Measurements.Get(entity.FieldWidthL)
	if m == nil || m.OfficeValue != "1200" || m.FloorValue != "1201" {
		t.Errorf("Expected width_l collected into measurements, got %+v", m)
	}
	if m := payload.Measurements.Get(entity.FieldMullionLeft); m == nil || m.OfficeValue != "PF-100" {
		t.Errorf("Expected left mullion collected, got %+v", m)
	}
	if m := payload.Measurements.Get(entity.FieldISAType); m == nil || m.OfficeValue != "ISA-3" || m.FloorValue != "" {
		t.Errorf("Expected isa_type with office value only, got %+v", m)
	}
	if len(payload.Measurements) != 3 {
		t.Errorf("Expected 3 measurement entries, got %d", len(payload.Measurements))
	}
}

func TestPanelPayloadUnmarshalLegacyISATypeAlias(t *testing.T) {
	// 旧版客户端仍用 type_gz_factory 上报 isa_type
	body := []byte(`{
		"pan_id": "15A",
		"type_gz_factory": {"office_value": "ISA-3", "floor_value": "ISA-4"}
	}`)

	var payload PanelPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	m := payload.Measurements.Get(entity.FieldISAType)
	if m == nil || m.OfficeValue != "ISA-3" || m.FloorValue != "ISA-4" {
		t.Errorf("Expected legacy alias merged into isa_type, got %+v", m)
	}
	if len(payload.Measurements) != 1 {
		t.Errorf("Expected single measurement entry, got %d", len(payload.Measurements))
	}
}

func TestPanelPayloadUnmarshalCanonicalWinsOverAlias(t *testing.T) {
	body := []byte(`{
		"isa_type": {"office_value": "ISA-3"},
		"type_gz_factory": {"office_value": "ISA-9"}
	}`)

	var payload PanelPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	m := payload.Measurements.Get(entity.FieldISAType)
	if m == nil || m.OfficeValue != "ISA-3" {
		t.Errorf("Expected canonical isa_type to win, got %+v", m)
	}
}

func TestPanelPayloadUnmarshalNullClearsField(t *testing.T) {
	body := []byte(`{"width_l": null, "width_r": {"office_value": "800"}}`)

	var payload PanelPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	// 显式 null 记为存在但为空指针，更新时用于删除该字段
	v, ok := payload.Measurements[entity.FieldWidthL]
	if !ok {
		t.Fatal("Expected explicit null to be recorded")
	}
	if v != nil {
		t.Errorf("Expected nil entry for null field, got %+v", v)
	}
	if m := payload.Measurements.Get(entity.FieldWidthR); m == nil || m.OfficeValue != "800" {
		t.Errorf("Expected width_r kept, got %+v", m)
	}
}

func TestPanelPayloadUnmarshalAbsentFieldsStayAbsent(t *testing.T) {
	var payload PanelPayload
	if err := json.Unmarshal([]byte(`{"pan_id": "15A"}`), &payload); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if payload.FlID != nil {
		t.Errorf("Expected absent fl_id to stay nil, got %v", *payload.FlID)
	}
	if len(payload.Measurements) != 0 {
		t.Errorf("Expected no measurement entries, got %d", len(payload.Measurements))
	}
}

func TestPanelPayloadUnmarshalBadMeasurement(t *testing.T) {
	var payload PanelPayload
	if err := json.Unmarshal([]byte(`{"width_l": "1200"}`), &payload); err == nil {
		t.Error("Expected error for scalar measurement value")
	}
}

func TestTypeLabelFromFileName(t *testing.T) {
	cases := map[string]string{
		"corner_detail.jpg":    "corner_detail",
		"photos/seal weld.png": "seal weld",
		"noext":                "noext",
		"":                     "",
	}
	for in, want := range cases {
		if got := typeLabelFromFileName(in); got != want {
			t.Errorf("typeLabelFromFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
