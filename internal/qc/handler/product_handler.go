package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
)

// ProductHandler 成品处理器
type ProductHandler struct {
	repo *repository.ProductRepository
}

func NewProductHandler(repo *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// List 成品列表，可按 status 过滤
// GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !entity.ValidProductStatus(status) {
		BadRequest(c, "无效的状态: "+status)
		return
	}

	products, err := h.repo.List(c.Request.Context(), status)
	if err != nil {
		InternalError(c, "获取成品列表失败: "+err.Error())
		return
	}
	Success(c, products)
}

// Get 成品详情
// GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "成品不存在")
			return
		}
		InternalError(c, "获取成品失败: "+err.Error())
		return
	}
	Success(c, product)
}

// Create 登记成品
// POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req struct {
		ProductNumber string `json:"product_number" binding:"required"`
		Status        string `json:"status"`
		WarehouseID   *uint  `json:"warehouse_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if req.Status == "" {
		req.Status = entity.ProductStatusPending
	}
	if !entity.ValidProductStatus(req.Status) {
		BadRequest(c, "无效的状态: "+req.Status)
		return
	}

	product := &entity.Product{
		ProductNumber: req.ProductNumber,
		Status:        req.Status,
		WarehouseID:   req.WarehouseID,
	}
	if err := h.repo.Create(c.Request.Context(), product); err != nil {
		InternalError(c, "创建成品失败: "+err.Error())
		return
	}
	Created(c, product)
}
