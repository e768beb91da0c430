package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
	"github.com/oleksandr5440/QC-Management/internal/qc/service"
)

// PanelHandler 幕墙板质检处理器
type PanelHandler struct {
	service *service.PanelService
}

func NewPanelHandler(svc *service.PanelService) *PanelHandler {
	return &PanelHandler{service: svc}
}

// List 面板摘要列表，支持 fl_id 模糊过滤
// GET /api/qc-cw-panel-data?fl_id=xxx
func (h *PanelHandler) List(c *gin.Context) {
	panels, err := h.service.List(c.Request.Context(), c.Query("fl_id"))
	if err != nil {
		InternalError(c, "获取面板列表失败: "+err.Error())
		return
	}

	out := make([]gin.H, 0, len(panels))
	for i := range panels {
		out = append(out, panelSummary(&panels[i]))
	}
	Success(c, out)
}

// ListByFloor 按楼层列出面板，按录入顺序返回
// GET /api/qc-cw-panel-data/fl/:flID
func (h *PanelHandler) ListByFloor(c *gin.Context) {
	flID := c.Param("flID")
	if flID == "" {
		BadRequest(c, "缺少楼层编号")
		return
	}

	panels, err := h.service.ListByFloor(c.Request.Context(), flID)
	if err != nil {
		InternalError(c, "获取楼层面板失败: "+err.Error())
		return
	}

	out := make([]gin.H, 0, len(panels))
	for i := range panels {
		out = append(out, panelSummary(&panels[i]))
	}
	Success(c, out)
}

// Get 面板详情
// GET /api/qc-cw-panel-data/:id
func (h *PanelHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	panel, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "面板不存在")
			return
		}
		InternalError(c, "获取面板失败: "+err.Error())
		return
	}
	Success(c, panelDetail(panel))
}

// Create 创建面板
// POST /api/qc-cw-panel-data
func (h *PanelHandler) Create(c *gin.Context) {
	var payload service.PanelPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	panel, advisories, err := h.service.Create(c.Request.Context(), GetUserID(c), &payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingIdentity):
			BadRequest(c, "fl_id 与 pan_id 不能为空")
		case errors.Is(err, service.ErrBadPhotoData):
			BadRequest(c, "照片base64解码失败: "+err.Error())
		default:
			InternalError(c, "创建面板失败: "+err.Error())
		}
		return
	}

	data := panelDetail(panel)
	data["advisories"] = advisories
	Created(c, data)
}

// Update 部分更新面板
// PUT /api/qc-cw-panel-data/:id
func (h *PanelHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var payload service.PanelPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	panel, advisories, err := h.service.Update(c.Request.Context(), id, GetUserID(c), &payload)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "面板不存在")
		case errors.Is(err, service.ErrFloorIDImmutable):
			BadRequest(c, "fl_id 创建后不可修改")
		case errors.Is(err, service.ErrBadPhotoData):
			BadRequest(c, "照片base64解码失败: "+err.Error())
		default:
			InternalError(c, "更新面板失败: "+err.Error())
		}
		return
	}

	data := panelDetail(panel)
	data["advisories"] = advisories
	Success(c, data)
}

// Delete 删除面板及其照片、腔体取值
// DELETE /api/qc-cw-panel-data/:id
func (h *PanelHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "面板不存在")
			return
		}
		InternalError(c, "删除面板失败: "+err.Error())
		return
	}
	Success(c, gin.H{"id": id})
}

// panelSummary 列表行：不含测量字段与照片内容
func panelSummary(p *entity.Panel) gin.H {
	return gin.H{
		"id":                   p.ID,
		"fl_id":                p.FlID,
		"pan_id":               p.PanID,
		"pan_name":             p.PanName,
		"ipa_cleaned":          p.IPACleaned,
		"sealant_frame_enough": p.SealantFrameEnough,
		"has_profile_photo":    len(p.ProfilePhoto) > 0,
		"created_at":           p.CreatedAt,
		"updated_at":           p.UpdatedAt,
	}
}

// panelDetail 详情：测量字段平铺在顶层，缺失字段输出 null
func panelDetail(p *entity.Panel) gin.H {
	data := gin.H{
		"id":                         p.ID,
		"fl_id":                      p.FlID,
		"pan_id":                     p.PanID,
		"pan_name":                   p.PanName,
		"ipa_cleaned":                p.IPACleaned,
		"sealant_frame_enough":       p.SealantFrameEnough,
		"cavities_invert":            p.CavitiesInvert,
		"qc_infill_affix":            p.QCInfillAffix,
		"structural_sealant_records": p.StructuralSealantRecords,
		"lmr":                        p.LMR,
		"edge_bead_attached":         p.EdgeBeadAttached,
		"operable":                   p.Operable,
		"card_checked":               p.CardChecked,
		"paint_damage":               p.PaintDamage,
		"glass_scratched":            p.GlassScratched,
		"cleaned_ready":              p.CleanedReady,
		"crated":                     p.Crated,
		"profile_photo":              p.ProfilePhotoBase64(),
		"created_by":                 p.CreatedBy,
		"updated_by":                 p.UpdatedBy,
		"created_at":                 p.CreatedAt,
		"updated_at":                 p.UpdatedAt,
	}

	for _, f := range entity.Fields() {
		var v interface{}
		if m := p.Measurements.Get(f); m != nil {
			v = m
		}
		data[string(f)] = v
		// 旧版客户端仍按旧字段名读取，镜像一份
		if alias, ok := entity.LegacyAlias(f); ok {
			data[alias] = v
		}
	}

	cavities := make([]gin.H, 0, len(p.FrameCavityValues))
	for i := range p.FrameCavityValues {
		v := &p.FrameCavityValues[i]
		row := gin.H{
			"id":           v.ID,
			"attribute_id": v.AttributeID,
			"value":        v.Value,
		}
		if v.Attribute != nil {
			row["attribute_name"] = v.Attribute.AttributeName
			row["attribute_type"] = v.Attribute.AttributeType
		}
		cavities = append(cavities, row)
	}
	data["frame_cavities_values"] = cavities

	photos := make([]gin.H, 0, len(p.Photos))
	for i := range p.Photos {
		ph := &p.Photos[i]
		photos = append(photos, gin.H{
			"id":         ph.ID,
			"photo":      ph.PhotoBase64(),
			"photo_type": ph.PhotoType,
			"created_at": ph.CreatedAt,
		})
	}
	data["additional_photos"] = photos

	return data
}
