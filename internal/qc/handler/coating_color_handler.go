package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
)

// CoatingColorHandler 喷涂颜色处理器
type CoatingColorHandler struct {
	repo *repository.CoatingColorRepository
}

func NewCoatingColorHandler(repo *repository.CoatingColorRepository) *CoatingColorHandler {
	return &CoatingColorHandler{repo: repo}
}

// List 颜色列表
// GET /api/coating-colors
func (h *CoatingColorHandler) List(c *gin.Context) {
	colors, err := h.repo.List(c.Request.Context())
	if err != nil {
		InternalError(c, "获取颜色列表失败: "+err.Error())
		return
	}
	Success(c, colors)
}

// Create 创建颜色
// POST /api/coating-colors
func (h *CoatingColorHandler) Create(c *gin.Context) {
	var req struct {
		CoatingColorName string `json:"coating_color_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	color := &entity.CoatingColor{CoatingColorName: req.CoatingColorName}
	if err := h.repo.Create(c.Request.Context(), color); err != nil {
		InternalError(c, "创建颜色失败: "+err.Error())
		return
	}
	Created(c, color)
}

// Update 更新颜色名称
// PUT /api/coating-colors/:id
func (h *CoatingColorHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		CoatingColorName string `json:"coating_color_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	color, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "颜色不存在")
			return
		}
		InternalError(c, "获取颜色失败: "+err.Error())
		return
	}

	color.CoatingColorName = req.CoatingColorName
	if err := h.repo.Update(c.Request.Context(), color); err != nil {
		InternalError(c, "更新颜色失败: "+err.Error())
		return
	}
	Success(c, color)
}

// Delete 删除颜色，被模具引用时拒绝
// DELETE /api/coating-colors/:id
func (h *CoatingColorHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.repo.FindByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "颜色不存在")
			return
		}
		InternalError(c, "获取颜色失败: "+err.Error())
		return
	}

	refs, err := h.repo.CountReferences(c.Request.Context(), id)
	if err != nil {
		InternalError(c, "检查颜色引用失败: "+err.Error())
		return
	}
	if refs > 0 {
		BadRequest(c, "颜色已被模具引用，无法删除")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		InternalError(c, "删除颜色失败: "+err.Error())
		return
	}
	Success(c, gin.H{"id": id})
}
