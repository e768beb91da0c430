package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
	"github.com/oleksandr5440/QC-Management/internal/qc/service"
	"github.com/oleksandr5440/QC-Management/internal/qc/testutil"
)

func setupFrameCavityTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	h := NewFrameCavityHandler(repos.FrameCavity, repos.Panel)
	ph := NewPanelHandler(service.NewPanelService(repos.Panel))

	api := testutil.AuthGroup(router, "/api")
	api.GET("/frame-cavities-attributes", h.ListAttributes)
	api.POST("/frame-cavities-attributes", h.CreateAttribute)
	api.PUT("/frame-cavities-attributes/:id", h.UpdateAttribute)
	api.DELETE("/frame-cavities-attributes/:id", h.DeleteAttribute)
	api.GET("/frame-cavities-values/panel/:panelID", h.ListValuesByPanel)
	api.PUT("/qc-cw-panel-data/:id", ph.Update)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestFrameCavityAttributeCRUD(t *testing.T) {
	env := setupFrameCavityTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/frame-cavities-attributes",
		map[string]interface{}{
			"fl_id":          "07",
			"attribute_name": "cavity_depth",
			"attribute_type": map[string]bool{"input_gz_office": true, "factory_floor": true},
		}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	attrID := data["id"].(float64)

	// 按楼层过滤
	w2 := testutil.DoRequest(env.Router, "GET", "/api/frame-cavities-attributes?fl_id=07", nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	rows := testutil.ParseResponse(w2)["data"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("Expected 1 attribute on floor 07, got %d", len(rows))
	}
	w3 := testutil.DoRequest(env.Router, "GET", "/api/frame-cavities-attributes?fl_id=08", nil, token)
	if rows3 := testutil.ParseResponse(w3)["data"].([]interface{}); len(rows3) != 0 {
		t.Errorf("Expected no attributes on floor 08, got %d", len(rows3))
	}

	// 更新名称
	w4 := testutil.DoRequest(env.Router, "PUT",
		fmt.Sprintf("/api/frame-cavities-attributes/%.0f", attrID),
		map[string]interface{}{"attribute_name": "cavity_depth_mm"}, token)
	if w4.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w4.Code, w4.Body.String())
	}
	updated := testutil.ParseResponse(w4)["data"].(map[string]interface{})
	if updated["attribute_name"] != "cavity_depth_mm" {
		t.Errorf("Expected renamed attribute, got %v", updated["attribute_name"])
	}

	w5 := testutil.DoRequest(env.Router, "DELETE",
		fmt.Sprintf("/api/frame-cavities-attributes/%.0f", attrID), nil, token)
	if w5.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w5.Code, w5.Body.String())
	}
}

func TestPanelCavityValueUpsert(t *testing.T) {
	env := setupFrameCavityTest(t)
	token := testutil.DefaultTestToken()

	panel := testutil.SeedTestPanel(t, env.DB, "07", "15A")
	attr := &entity.FrameCavityAttribute{
		FlID:          "07",
		AttributeName: "cavity_depth",
		AttributeType: entity.JSONB{"input_gz_office": true, "factory_floor": true},
	}
	if err := env.DB.Create(attr).Error; err != nil {
		t.Fatalf("Failed to seed attribute: %v", err)
	}

	// 首次提交：插入取值
	w := testutil.DoRequest(env.Router, "PUT",
		fmt.Sprintf("/api/qc-cw-panel-data/%d", panel.ID),
		map[string]interface{}{
			"frame_cavities_values": []map[string]interface{}{
				{"attribute_id": attr.ID, "value": "85"},
			},
		}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// 二次提交同一属性：更新而不是新增
	w2 := testutil.DoRequest(env.Router, "PUT",
		fmt.Sprintf("/api/qc-cw-panel-data/%d", panel.ID),
		map[string]interface{}{
			"frame_cavities_values": []map[string]interface{}{
				{"attribute_id": attr.ID, "value": "86"},
			},
		}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	w3 := testutil.DoRequest(env.Router, "GET",
		fmt.Sprintf("/api/frame-cavities-values/panel/%d", panel.ID), nil, token)
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
	values := testutil.ParseResponse(w3)["data"].([]interface{})
	if len(values) != 1 {
		t.Fatalf("Expected single value row after upsert, got %d", len(values))
	}
	row := values[0].(map[string]interface{})
	if row["value"] != "86" {
		t.Errorf("Expected updated value 86, got %v", row["value"])
	}
}

func TestListValuesForMissingPanel(t *testing.T) {
	env := setupFrameCavityTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "GET", "/api/frame-cavities-values/panel/99999", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
