package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
	"github.com/oleksandr5440/QC-Management/internal/qc/testutil"
)

func setupQCSessionTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	h := NewQCSessionHandler(repos.QCSession, repos.Product)

	api := testutil.AuthGroup(router, "/api")
	api.GET("/qc/sessions", h.List)
	api.GET("/qc/sessions/:id", h.Get)
	api.POST("/qc/sessions", h.Create)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func seedTestProduct(t *testing.T, env *testutil.TestEnv, number string) *entity.Product {
	t.Helper()
	product := &entity.Product{ProductNumber: number, Status: entity.ProductStatusPending}
	if err := env.DB.Create(product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return product
}

func TestQCSessionCreateMarksProductPassed(t *testing.T) {
	env := setupQCSessionTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test_admin", entity.RoleAdmin)
	product := seedTestProduct(t, env, "PN-1001")

	def := &entity.QCAttributeDef{Name: "seal_thickness", DataType: entity.QCAttributeNumeric}
	if err := env.DB.Create(def).Error; err != nil {
		t.Fatalf("Failed to seed attribute def: %v", err)
	}

	thickness := 6.35
	note := "within tolerance"
	w := testutil.DoRequest(env.Router, "POST", "/api/qc/sessions",
		map[string]interface{}{
			"product_id": product.ID,
			"attribute_values": []map[string]interface{}{
				{"attribute_id": def.ID, "value_numeric": thickness, "value_text": note},
			},
		}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})

	values := data["attribute_values"].([]interface{})
	if len(values) != 1 {
		t.Fatalf("Expected 1 attribute value, got %d", len(values))
	}
	value := values[0].(map[string]interface{})
	if value["attribute_name"] != "seal_thickness" {
		t.Errorf("Expected attribute_name from def, got %v", value["attribute_name"])
	}
	if value["value_numeric"] != thickness {
		t.Errorf("Expected value_numeric %v, got %v", thickness, value["value_numeric"])
	}
	// 未指定检验员时记录当前用户
	if data["inspector_id"] != float64(1) {
		t.Errorf("Expected inspector defaulted to current user, got %v", data["inspector_id"])
	}
	if data["status"] != entity.ProductStatusQCPassed {
		t.Errorf("Expected product marked qc_passed, got %v", data["status"])
	}

	var updated entity.Product
	if err := env.DB.First(&updated, product.ID).Error; err != nil {
		t.Fatalf("Failed to reload product: %v", err)
	}
	if updated.Status != entity.ProductStatusQCPassed {
		t.Errorf("Expected product status qc_passed, got %s", updated.Status)
	}
}

func TestQCSessionCreateRequiresProduct(t *testing.T) {
	env := setupQCSessionTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/qc/sessions",
		map[string]interface{}{}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without product_id, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, "POST", "/api/qc/sessions",
		map[string]interface{}{"product_id": 99999}, token)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown product, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestQCSessionListNewestFirst(t *testing.T) {
	env := setupQCSessionTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test_admin", entity.RoleAdmin)

	first := seedTestProduct(t, env, "PN-2001")
	second := seedTestProduct(t, env, "PN-2002")
	for _, p := range []*entity.Product{first, second} {
		w := testutil.DoRequest(env.Router, "POST", "/api/qc/sessions",
			map[string]interface{}{"product_id": p.ID}, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	w := testutil.DoRequest(env.Router, "GET", "/api/qc/sessions", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	rows := testutil.ParseResponse(w)["data"].([]interface{})
	if len(rows) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(rows))
	}
	newest := rows[0].(map[string]interface{})
	if newest["product_number"] != "PN-2002" {
		t.Errorf("Expected newest session first, got %v", newest["product_number"])
	}
	if newest["inspector_name"] != "test_admin" {
		t.Errorf("Expected inspector_name resolved, got %v", newest["inspector_name"])
	}
	if newest["attribute_count"] != float64(0) {
		t.Errorf("Expected attribute_count 0, got %v", newest["attribute_count"])
	}
}

func TestQCSessionGetNotFound(t *testing.T) {
	env := setupQCSessionTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "GET", "/api/qc/sessions/99999", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}

	wCreate := testutil.DoRequest(env.Router, "GET", "/api/qc/sessions", nil, token)
	if wCreate.Code != http.StatusOK {
		t.Fatalf("Expected 200 for empty list, got %d", wCreate.Code)
	}
	if rows := testutil.ParseResponse(wCreate)["data"].([]interface{}); len(rows) != 0 {
		t.Errorf("Expected empty list, got %d rows", len(rows))
	}
}

func TestQCSessionDetail(t *testing.T) {
	env := setupQCSessionTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestUser(t, env.DB, "test_admin", entity.RoleAdmin)
	product := seedTestProduct(t, env, "PN-3001")

	w := testutil.DoRequest(env.Router, "POST", "/api/qc/sessions",
		map[string]interface{}{"product_id": product.ID}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(float64)

	w2 := testutil.DoRequest(env.Router, "GET",
		fmt.Sprintf("/api/qc/sessions/%.0f", id), nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})

	prod, ok := data["product"].(map[string]interface{})
	if !ok || prod["product_number"] != "PN-3001" {
		t.Errorf("Expected embedded product, got %v", data["product"])
	}
	inspector, ok := data["inspector"].(map[string]interface{})
	if !ok || inspector["username"] != "test_admin" {
		t.Errorf("Expected embedded inspector, got %v", data["inspector"])
	}
}
