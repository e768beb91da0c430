package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
	"github.com/oleksandr5440/QC-Management/internal/qc/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth         *AuthHandler
	Panel        *PanelHandler
	FrameCavity  *FrameCavityHandler
	ProductPart  *ProductPartHandler
	CoatingColor *CoatingColorHandler
	Lookup       *LookupHandler
	Inventory    *InventoryHandler
	Product      *ProductHandler
	QCReport     *QCReportHandler
	QCSession    *QCSessionHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(svc *service.Services, repos *repository.Repositories) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(svc.Auth, repos.User),
		Panel:        NewPanelHandler(svc.Panel),
		FrameCavity:  NewFrameCavityHandler(repos.FrameCavity, repos.Panel),
		ProductPart:  NewProductPartHandler(repos.ProductPart, repos.CoatingColor),
		CoatingColor: NewCoatingColorHandler(repos.CoatingColor),
		Lookup:       NewLookupHandler(svc.Lookup),
		Inventory:    NewInventoryHandler(repos.Inventory),
		Product:      NewProductHandler(repos.Product),
		QCReport:     NewQCReportHandler(repos.QCReport),
		QCSession:    NewQCSessionHandler(repos.QCSession, repos.Product),
	}
}

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 参数错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// Unauthorized 未授权响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

// Forbidden 禁止访问响应
func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// InternalError 服务器错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) uint {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(uint); ok {
		return id
	}
	return 0
}

// ParseIDParam 解析路径中的数字id
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}
