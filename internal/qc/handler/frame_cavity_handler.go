package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
)

// FrameCavityHandler 框架腔体属性处理器
type FrameCavityHandler struct {
	repo      *repository.FrameCavityRepository
	panelRepo *repository.PanelRepository
}

func NewFrameCavityHandler(repo *repository.FrameCavityRepository, panelRepo *repository.PanelRepository) *FrameCavityHandler {
	return &FrameCavityHandler{repo: repo, panelRepo: panelRepo}
}

// ListAttributes 按楼层列出腔体属性定义
// GET /api/frame-cavities-attributes?fl_id=xxx
func (h *FrameCavityHandler) ListAttributes(c *gin.Context) {
	flID := c.Query("fl_id")
	if flID == "" {
		BadRequest(c, "缺少 fl_id 参数")
		return
	}

	attrs, err := h.repo.ListAttributesByFloor(c.Request.Context(), flID)
	if err != nil {
		InternalError(c, "获取腔体属性失败: "+err.Error())
		return
	}
	Success(c, attrs)
}

// CreateAttribute 新建腔体属性定义
// POST /api/frame-cavities-attributes
func (h *FrameCavityHandler) CreateAttribute(c *gin.Context) {
	var req struct {
		FlID          string       `json:"fl_id" binding:"required"`
		AttributeName string       `json:"attribute_name" binding:"required"`
		AttributeType entity.JSONB `json:"attribute_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if req.AttributeType == nil {
		req.AttributeType = entity.JSONB{"input_gz_office": true, "factory_floor": false}
	}
	attr := &entity.FrameCavityAttribute{
		FlID:          req.FlID,
		AttributeName: req.AttributeName,
		AttributeType: req.AttributeType,
	}
	if err := h.repo.CreateAttribute(c.Request.Context(), attr); err != nil {
		InternalError(c, "创建腔体属性失败: "+err.Error())
		return
	}
	Created(c, attr)
}

// UpdateAttribute 更新腔体属性定义
// PUT /api/frame-cavities-attributes/:id
func (h *FrameCavityHandler) UpdateAttribute(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		AttributeName *string      `json:"attribute_name"`
		AttributeType entity.JSONB `json:"attribute_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	attr, err := h.repo.FindAttributeByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "腔体属性不存在")
			return
		}
		InternalError(c, "获取腔体属性失败: "+err.Error())
		return
	}

	if req.AttributeName != nil {
		attr.AttributeName = *req.AttributeName
	}
	if req.AttributeType != nil {
		attr.AttributeType = req.AttributeType
	}
	if err := h.repo.UpdateAttribute(c.Request.Context(), attr); err != nil {
		InternalError(c, "更新腔体属性失败: "+err.Error())
		return
	}
	Success(c, attr)
}

// DeleteAttribute 删除腔体属性定义及其面板取值
// DELETE /api/frame-cavities-attributes/:id
func (h *FrameCavityHandler) DeleteAttribute(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.repo.FindAttributeByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "腔体属性不存在")
			return
		}
		InternalError(c, "获取腔体属性失败: "+err.Error())
		return
	}

	if err := h.repo.DeleteAttribute(c.Request.Context(), id); err != nil {
		InternalError(c, "删除腔体属性失败: "+err.Error())
		return
	}
	Success(c, gin.H{"id": id})
}

// ListValuesByPanel 列出某面板的腔体取值
// GET /api/frame-cavities-values/panel/:panelID
func (h *FrameCavityHandler) ListValuesByPanel(c *gin.Context) {
	panelID, ok := ParseIDParam(c, "panelID")
	if !ok {
		return
	}

	if _, err := h.panelRepo.FindByID(c.Request.Context(), panelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "面板不存在")
			return
		}
		InternalError(c, "获取面板失败: "+err.Error())
		return
	}

	values, err := h.repo.ListValuesByPanel(c.Request.Context(), panelID)
	if err != nil {
		InternalError(c, "获取腔体取值失败: "+err.Error())
		return
	}
	Success(c, values)
}
