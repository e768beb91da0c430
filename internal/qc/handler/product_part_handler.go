package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
)

// ProductPartHandler 模具档案处理器
type ProductPartHandler struct {
	repo      *repository.ProductPartRepository
	colorRepo *repository.CoatingColorRepository
}

func NewProductPartHandler(repo *repository.ProductPartRepository, colorRepo *repository.CoatingColorRepository) *ProductPartHandler {
	return &ProductPartHandler{repo: repo, colorRepo: colorRepo}
}

type productPartRequest struct {
	ProductPartID     string  `json:"product_part_id" binding:"required"`
	ProductPartName   string  `json:"product_part_name" binding:"required"`
	ProductPartVendor *string `json:"product_part_vendor"`
	ProductPartType   *string `json:"product_part_type"`
	ProductPartImage  *string `json:"product_part_image"`
	CoatingColorIDs   []uint  `json:"coating_color_ids"`
}

// List 模具列表，支持 product_part_type 过滤
// GET /api/product-parts?product_part_type=Mullion
func (h *ProductPartHandler) List(c *gin.Context) {
	parts, err := h.repo.List(c.Request.Context(), c.Query("product_part_type"))
	if err != nil {
		InternalError(c, "获取模具列表失败: "+err.Error())
		return
	}

	out := make([]gin.H, 0, len(parts))
	for i := range parts {
		out = append(out, productPartJSON(&parts[i], false))
	}
	Success(c, out)
}

// Get 模具详情（含截面图与颜色关联）
// GET /api/product-parts/:id
func (h *ProductPartHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	part, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "模具不存在")
			return
		}
		InternalError(c, "获取模具失败: "+err.Error())
		return
	}

	data := productPartJSON(part, true)
	colors, err := h.repo.ListColors(c.Request.Context(), part.ID)
	if err != nil {
		InternalError(c, "获取模具颜色失败: "+err.Error())
		return
	}
	data["coating_colors"] = colorAssociations(colors)
	Success(c, data)
}

// GetImage 单独返回模具截面图
// GET /api/product-parts/:id/image
func (h *ProductPartHandler) GetImage(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	part, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "模具不存在")
			return
		}
		InternalError(c, "获取模具失败: "+err.Error())
		return
	}
	Success(c, gin.H{"id": part.ID, "product_part_image": part.ImageBase64()})
}

// Create 创建模具
// POST /api/product-parts
func (h *ProductPartHandler) Create(c *gin.Context) {
	var req productPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	part := &entity.ProductPart{
		ProductPartID:     req.ProductPartID,
		ProductPartName:   req.ProductPartName,
		ProductPartVendor: req.ProductPartVendor,
		ProductPartType:   req.ProductPartType,
	}
	if req.ProductPartImage != nil {
		img, err := entity.DecodeBase64Image(*req.ProductPartImage)
		if err != nil {
			BadRequest(c, "截面图base64解码失败: "+err.Error())
			return
		}
		part.ProductPartImage = img
	}

	if err := h.repo.Create(c.Request.Context(), part); err != nil {
		InternalError(c, "创建模具失败: "+err.Error())
		return
	}
	if len(req.CoatingColorIDs) > 0 {
		if err := h.repo.ReplaceColors(c.Request.Context(), part.ID, req.CoatingColorIDs); err != nil {
			InternalError(c, "关联喷涂颜色失败: "+err.Error())
			return
		}
	}
	Created(c, productPartJSON(part, true))
}

// Update 更新模具
// PUT /api/product-parts/:id
func (h *ProductPartHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		ProductPartID     *string `json:"product_part_id"`
		ProductPartName   *string `json:"product_part_name"`
		ProductPartVendor *string `json:"product_part_vendor"`
		ProductPartType   *string `json:"product_part_type"`
		ProductPartImage  *string `json:"product_part_image"`
		CoatingColorIDs   []uint  `json:"coating_color_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	part, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "模具不存在")
			return
		}
		InternalError(c, "获取模具失败: "+err.Error())
		return
	}

	if req.ProductPartID != nil {
		part.ProductPartID = *req.ProductPartID
	}
	if req.ProductPartName != nil {
		part.ProductPartName = *req.ProductPartName
	}
	if req.ProductPartVendor != nil {
		part.ProductPartVendor = req.ProductPartVendor
	}
	if req.ProductPartType != nil {
		part.ProductPartType = req.ProductPartType
	}
	if req.ProductPartImage != nil {
		img, err := entity.DecodeBase64Image(*req.ProductPartImage)
		if err != nil {
			BadRequest(c, "截面图base64解码失败: "+err.Error())
			return
		}
		part.ProductPartImage = img
	}

	if err := h.repo.Update(c.Request.Context(), part); err != nil {
		InternalError(c, "更新模具失败: "+err.Error())
		return
	}
	if req.CoatingColorIDs != nil {
		if err := h.repo.ReplaceColors(c.Request.Context(), part.ID, req.CoatingColorIDs); err != nil {
			InternalError(c, "更新喷涂颜色失败: "+err.Error())
			return
		}
	}
	Success(c, productPartJSON(part, true))
}

// Delete 删除模具及颜色关联
// DELETE /api/product-parts/:id
func (h *ProductPartHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.repo.FindByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "模具不存在")
			return
		}
		InternalError(c, "获取模具失败: "+err.Error())
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		InternalError(c, "删除模具失败: "+err.Error())
		return
	}
	Success(c, gin.H{"id": id})
}

func productPartJSON(p *entity.ProductPart, withImage bool) gin.H {
	data := gin.H{
		"id":                  p.ID,
		"product_part_id":     p.ProductPartID,
		"product_part_name":   p.ProductPartName,
		"product_part_vendor": p.ProductPartVendor,
		"product_part_type":   p.ProductPartType,
		"has_image":           len(p.ProductPartImage) > 0,
		"created_at":          p.CreatedAt,
		"updated_at":          p.UpdatedAt,
	}
	if withImage {
		data["product_part_image"] = p.ImageBase64()
	}
	return data
}

func colorAssociations(colors []entity.ProductColor) []gin.H {
	out := make([]gin.H, 0, len(colors))
	for i := range colors {
		pc := &colors[i]
		row := gin.H{"coating_color_id": pc.CoatingColorID}
		if pc.CoatingColor != nil {
			row["coating_color_name"] = pc.CoatingColor.CoatingColorName
		}
		out = append(out, row)
	}
	return out
}
