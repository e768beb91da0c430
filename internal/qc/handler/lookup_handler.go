package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
	"github.com/oleksandr5440/QC-Management/internal/qc/service"
)

// LookupHandler 枚举选项处理器
type LookupHandler struct {
	service *service.LookupService
}

func NewLookupHandler(svc *service.LookupService) *LookupHandler {
	return &LookupHandler{service: svc}
}

// ListTypes 一次返回全部选项集及其取值（带缓存）
// GET /api/lookup-types
func (h *LookupHandler) ListTypes(c *gin.Context) {
	types, err := h.service.ListTypes(c.Request.Context())
	if err != nil {
		InternalError(c, "获取选项集失败: "+err.Error())
		return
	}
	Success(c, types)
}

// GetType 单个选项集
// GET /api/lookup-types/:id
func (h *LookupHandler) GetType(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	lt, err := h.service.GetType(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "选项集不存在")
			return
		}
		InternalError(c, "获取选项集失败: "+err.Error())
		return
	}
	Success(c, lt)
}
