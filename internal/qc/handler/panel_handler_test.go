package handler

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"testing"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
	"github.com/oleksandr5440/QC-Management/internal/qc/service"
	"github.com/oleksandr5440/QC-Management/internal/qc/testutil"
)

func setupPanelTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	h := NewPanelHandler(service.NewPanelService(repos.Panel))

	api := testutil.AuthGroup(router, "/api")
	api.GET("/qc-cw-panel-data", h.List)
	api.POST("/qc-cw-panel-data", h.Create)
	api.GET("/qc-cw-panel-data/fl/:flID", h.ListByFloor)
	api.GET("/qc-cw-panel-data/:id", h.Get)
	api.PUT("/qc-cw-panel-data/:id", h.Update)
	api.DELETE("/qc-cw-panel-data/:id", h.Delete)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestPanelCreateAndGet(t *testing.T) {
	env := setupPanelTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/qc-cw-panel-data",
		map[string]interface{}{
			"fl_id":       "07",
			"pan_id":      "15A",
			"ipa_cleaned": true,
			"width_l":     map[string]string{"office_value": "1200", "floor_value": "1201"},
			"left":        map[string]string{"office_value": "PF-100", "floor_value": "yes"},
		}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["pan_name"] != "c07.15A" {
		t.Errorf("Expected pan_name c07.15A, got %v", data["pan_name"])
	}
	id := data["id"].(float64)

	// 详情：测量字段平铺在顶层
	w2 := testutil.DoRequest(env.Router, "GET",
		fmt.Sprintf("/api/qc-cw-panel-data/%.0f", id), nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})

	widthL, ok := data2["width_l"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected width_l object, got %v", data2["width_l"])
	}
	if widthL["office_value"] != "1200" || widthL["floor_value"] != "1201" {
		t.Errorf("Unexpected width_l values: %v", widthL)
	}
	left := data2["left"].(map[string]interface{})
	if left["office_value"] != "PF-100" || left["floor_value"] != "yes" {
		t.Errorf("Unexpected left mullion values: %v", left)
	}
	if data2["width_r"] != nil {
		t.Errorf("Expected absent field to be null, got %v", data2["width_r"])
	}
	if data2["ipa_cleaned"] != true {
		t.Errorf("Expected ipa_cleaned true, got %v", data2["ipa_cleaned"])
	}
}

func TestPanelCreateRequiresIdentity(t *testing.T) {
	env := setupPanelTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/qc-cw-panel-data",
		map[string]interface{}{"pan_id": "15A"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPanelCreateDropsUnconfirmableFloorValues(t *testing.T) {
	env := setupPanelTest(t)
	token := testutil.DefaultTestToken()

	// 构件选型没有下发值，车间确认应被清洗掉
	w := testutil.DoRequest(env.Router, "POST", "/api/qc-cw-panel-data",
		map[string]interface{}{
			"fl_id":   "07",
			"pan_id":  "01",
			"left":    map[string]string{"floor_value": "yes"},
			"width_l": map[string]string{"floor_value": "1199"},
		}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})

	if data["left"] != nil {
		t.Errorf("Expected left mullion dropped, got %v", data["left"])
	}
	widthL, ok := data["width_l"].(map[string]interface{})
	if !ok || widthL["floor_value"] != "1199" {
		t.Errorf("Expected width_l floor value kept, got %v", data["width_l"])
	}
}

func TestPanelCreateReturnsAdvisories(t *testing.T) {
	env := setupPanelTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/qc-cw-panel-data",
		map[string]interface{}{
			"fl_id":    "07",
			"pan_id":   "02",
			"isa_type": map[string]string{"office_value": "ISA-3", "floor_value": "ISA-4"},
		}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})

	advisories, ok := data["advisories"].([]interface{})
	if !ok || len(advisories) != 1 {
		t.Fatalf("Expected 1 advisory, got %v", data["advisories"])
	}
	// 不一致不阻止保存
	isa := data["isa_type"].(map[string]interface{})
	if isa["office_value"] != "ISA-3" || isa["floor_value"] != "ISA-4" {
		t.Errorf("Expected mismatched values saved intact, got %v", isa)
	}
}

func TestPanelCreateAcceptsLegacyISATypeName(t *testing.T) {
	env := setupPanelTest(t)
	token := testutil.DefaultTestToken()

	// 旧版客户端仍用 type_gz_factory 字段名上报
	w := testutil.DoRequest(env.Router, "POST", "/api/qc-cw-panel-data",
		map[string]interface{}{
			"fl_id":           "07",
			"pan_id":          "21",
			"type_gz_factory": map[string]string{"office_value": "ISA-3", "floor_value": "ISA-4"},
		}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})

	isa, ok := data["isa_type"].(map[string]interface{})
	if !ok || isa["office_value"] != "ISA-3" || isa["floor_value"] != "ISA-4" {
		t.Fatalf("Expected legacy name stored under isa_type, got %v", data["isa_type"])
	}
	// 详情里镜像一份旧字段名，旧版读取端不受影响
	legacy, ok := data["type_gz_factory"].(map[string]interface{})
	if !ok || legacy["office_value"] != "ISA-3" {
		t.Errorf("Expected type_gz_factory mirrored in detail, got %v", data["type_gz_factory"])
	}
	// 比对提示同样生效
	if advisories, ok := data["advisories"].([]interface{}); !ok || len(advisories) != 1 {
		t.Errorf("Expected 1 advisory for mismatched values, got %v", data["advisories"])
	}
}

func TestPanelCreateRejectsBadProfilePhoto(t *testing.T) {
	env := setupPanelTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/qc-cw-panel-data",
		map[string]interface{}{
			"fl_id":         "07",
			"pan_id":        "22",
			"profile_photo": "not-valid-base64!!!",
		}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for bad base64, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPanelUpdateRejectsBadPhotoData(t *testing.T) {
	env := setupPanelTest(t)
	token := testutil.DefaultTestToken()
	panel := testutil.SeedTestPanel(t, env.DB, "07", "15A")

	w := testutil.DoRequest(env.Router, "PUT",
		fmt.Sprintf("/api/qc-cw-panel-data/%d", panel.ID),
		map[string]interface{}{
			"new_photos": []map[string]string{
				{"photo": "%%%not-base64%%%", "file_name": "corner_detail.jpg"},
			},
		}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for bad base64, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPanelUpdateFloorIDImmutable(t *testing.T) {
	env := setupPanelTest(t)
	token := testutil.DefaultTestToken()
	panel := testutil.SeedTestPanel(t, env.DB, "07", "15A")

	w := testutil.DoRequest(env.Router, "PUT",
		fmt.Sprintf("/api/qc-cw-panel-data/%d", panel.ID),
		map[string]interface{}{"fl_id": "08"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}

	// 相同 fl_id 允许出现在载荷里
	w2 := testutil.DoRequest(env.Router, "PUT",
		fmt.Sprintf("/api/qc-cw-panel-data/%d", panel.ID),
		map[string]interface{}{"fl_id": "07", "pan_id": "16B"}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data["pan_name"] != "c07.16B" {
		t.Errorf("Expected pan_name recomputed to c07.16B, got %v", data["pan_name"])
	}
}

func TestPanelUpdateMergesAndClearsMeasurements(t *testing.T) {
	env := setupPanelTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/qc-cw-panel-data",
		map[string]interface{}{
			"fl_id":    "07",
			"pan_id":   "03",
			"width_l":  map[string]string{"office_value": "1200"},
			"height_1": map[string]string{"office_value": "2400"},
		}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	id := data["id"].(float64)

	// width_l 显式置空，height_1 未出现保持不变，width_r 新增
	w2 := testutil.DoRequest(env.Router, "PUT",
		fmt.Sprintf("/api/qc-cw-panel-data/%.0f", id),
		map[string]interface{}{
			"width_l": nil,
			"width_r": map[string]string{"office_value": "1180"},
		}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})

	if data2["width_l"] != nil {
		t.Errorf("Expected width_l cleared, got %v", data2["width_l"])
	}
	h1, ok := data2["height_1"].(map[string]interface{})
	if !ok || h1["office_value"] != "2400" {
		t.Errorf("Expected height_1 unchanged, got %v", data2["height_1"])
	}
	wr, ok := data2["width_r"].(map[string]interface{})
	if !ok || wr["office_value"] != "1180" {
		t.Errorf("Expected width_r added, got %v", data2["width_r"])
	}
}

func TestPanelPhotoAddAndIdempotentDelete(t *testing.T) {
	env := setupPanelTest(t)
	token := testutil.DefaultTestToken()
	panel := testutil.SeedTestPanel(t, env.DB, "07", "15A")

	photoData := base64.StdEncoding.EncodeToString([]byte("fake-jpeg-bytes"))
	w := testutil.DoRequest(env.Router, "PUT",
		fmt.Sprintf("/api/qc-cw-panel-data/%d", panel.ID),
		map[string]interface{}{
			"new_photos": []map[string]string{
				{"photo": photoData, "file_name": "corner_detail.jpg"},
			},
		}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	photos := data["additional_photos"].([]interface{})
	if len(photos) != 1 {
		t.Fatalf("Expected 1 photo, got %d", len(photos))
	}
	photo := photos[0].(map[string]interface{})
	if photo["photo_type"] != "corner_detail" {
		t.Errorf("Expected photo_type from file name, got %v", photo["photo_type"])
	}
	photoID := photo["id"].(float64)

	// 同时删除存在与不存在的照片，不存在的静默跳过
	w2 := testutil.DoRequest(env.Router, "PUT",
		fmt.Sprintf("/api/qc-cw-panel-data/%d", panel.ID),
		map[string]interface{}{
			"delete_photos": []float64{photoID, 99999},
		}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if photos2 := data2["additional_photos"].([]interface{}); len(photos2) != 0 {
		t.Errorf("Expected photos removed, got %d", len(photos2))
	}
}

func TestPanelListByFloorOrdering(t *testing.T) {
	env := setupPanelTest(t)
	token := testutil.DefaultTestToken()

	for _, panID := range []string{"03", "01", "02"} {
		w := testutil.DoRequest(env.Router, "POST", "/api/qc-cw-panel-data",
			map[string]interface{}{"fl_id": "12", "pan_id": panID}, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}
	testutil.SeedTestPanel(t, env.DB, "13", "01")

	w := testutil.DoRequest(env.Router, "GET", "/api/qc-cw-panel-data/fl/12", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	rows := testutil.ParseResponse(w)["data"].([]interface{})
	if len(rows) != 3 {
		t.Fatalf("Expected 3 panels on floor 12, got %d", len(rows))
	}
	// 录入顺序，不是 pan_id 字典序
	var got []string
	for _, row := range rows {
		got = append(got, row.(map[string]interface{})["pan_id"].(string))
	}
	want := []string{"03", "01", "02"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected insertion order %v, got %v", want, got)
		}
	}
}

func TestPanelListSummaryHasNoMeasurements(t *testing.T) {
	env := setupPanelTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/qc-cw-panel-data",
		map[string]interface{}{
			"fl_id":   "07",
			"pan_id":  "15A",
			"width_l": map[string]string{"office_value": "1200"},
		}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, "GET", "/api/qc-cw-panel-data?fl_id=07", nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	rows := testutil.ParseResponse(w2)["data"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	row := rows[0].(map[string]interface{})
	if _, ok := row["width_l"]; ok {
		t.Error("Expected summary row without measurement fields")
	}
	if row["has_profile_photo"] != false {
		t.Errorf("Expected has_profile_photo false, got %v", row["has_profile_photo"])
	}
}

func TestPanelDeleteCascades(t *testing.T) {
	env := setupPanelTest(t)
	token := testutil.DefaultTestToken()
	panel := testutil.SeedTestPanel(t, env.DB, "07", "15A")
	env.DB.Create(&entity.PanelPhoto{PanelID: panel.ID, Photo: []byte("x")})

	w := testutil.DoRequest(env.Router, "DELETE",
		fmt.Sprintf("/api/qc-cw-panel-data/%d", panel.ID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, "GET",
		fmt.Sprintf("/api/qc-cw-panel-data/%d", panel.ID), nil, token)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 after delete, got %d", w2.Code)
	}

	var photoCount int64
	env.DB.Model(&entity.PanelPhoto{}).Where("panel_id = ?", panel.ID).Count(&photoCount)
	if photoCount != 0 {
		t.Errorf("Expected photos removed with panel, got %d", photoCount)
	}
}

func TestPanelGetNotFound(t *testing.T) {
	env := setupPanelTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "GET", "/api/qc-cw-panel-data/99999", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPanelRequiresAuth(t *testing.T) {
	env := setupPanelTest(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/qc-cw-panel-data", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", w.Code)
	}
}
