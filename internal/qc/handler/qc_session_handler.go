package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
)

// QCSessionHandler 成品质检会话处理器
type QCSessionHandler struct {
	repo        *repository.QCSessionRepository
	productRepo *repository.ProductRepository
}

func NewQCSessionHandler(repo *repository.QCSessionRepository, productRepo *repository.ProductRepository) *QCSessionHandler {
	return &QCSessionHandler{repo: repo, productRepo: productRepo}
}

type qcAttributeValueInput struct {
	AttributeID  uint     `json:"attribute_id"`
	ValueNumeric *float64 `json:"value_numeric"`
	ValueText    *string  `json:"value_text"`
	LookupID     *uint    `json:"lookup_id"`
	PhotoURL     *string  `json:"photo_url"`
}

type qcSessionRequest struct {
	ProductID       uint                    `json:"product_id"`
	InspectorID     *uint                   `json:"inspector_id"`
	AttributeValues []qcAttributeValueInput `json:"attribute_values"`
}

// List 质检会话列表，按执行时间倒序
// GET /api/qc/sessions
func (h *QCSessionHandler) List(c *gin.Context) {
	sessions, err := h.repo.List(c.Request.Context())
	if err != nil {
		InternalError(c, "获取质检会话列表失败: "+err.Error())
		return
	}

	out := make([]gin.H, 0, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		row := gin.H{
			"id":              s.ID,
			"product_id":      s.ProductID,
			"inspector_id":    s.InspectorID,
			"performed_at":    s.PerformedAt,
			"attribute_count": len(s.AttributeValues),
		}
		if s.Product != nil {
			row["product_number"] = s.Product.ProductNumber
			row["status"] = s.Product.Status
		}
		if s.Inspector != nil {
			row["inspector_name"] = s.Inspector.Username
		}
		out = append(out, row)
	}
	Success(c, out)
}

// Get 会话详情（含属性取值）
// GET /api/qc/sessions/:id
func (h *QCSessionHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "质检会话不存在")
			return
		}
		InternalError(c, "获取质检会话失败: "+err.Error())
		return
	}
	Success(c, qcSessionDetail(session))
}

// Create 创建质检会话并记录属性取值，成品随之标记为 qc_passed
// POST /api/qc/sessions
func (h *QCSessionHandler) Create(c *gin.Context) {
	var req qcSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.ProductID == 0 {
		BadRequest(c, "product_id 不能为空")
		return
	}

	if _, err := h.productRepo.FindByID(c.Request.Context(), req.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "产品不存在")
			return
		}
		InternalError(c, "获取产品失败: "+err.Error())
		return
	}

	session := &entity.QCSession{
		ProductID:   req.ProductID,
		InspectorID: req.InspectorID,
		PerformedAt: time.Now(),
	}
	if session.InspectorID == nil {
		if userID := GetUserID(c); userID != 0 {
			session.InspectorID = &userID
		}
	}
	for _, av := range req.AttributeValues {
		session.AttributeValues = append(session.AttributeValues, entity.QCAttributeValue{
			AttributeID:  av.AttributeID,
			ValueNumeric: av.ValueNumeric,
			ValueText:    av.ValueText,
			LookupID:     av.LookupID,
			PhotoURL:     av.PhotoURL,
		})
	}

	if err := h.repo.Create(c.Request.Context(), session); err != nil {
		InternalError(c, "创建质检会话失败: "+err.Error())
		return
	}

	created, err := h.repo.FindByID(c.Request.Context(), session.ID)
	if err != nil {
		InternalError(c, "获取质检会话失败: "+err.Error())
		return
	}
	Created(c, qcSessionDetail(created))
}

func qcSessionDetail(s *entity.QCSession) gin.H {
	data := gin.H{
		"id":           s.ID,
		"product_id":   s.ProductID,
		"inspector_id": s.InspectorID,
		"performed_at": s.PerformedAt,
	}
	if s.Product != nil {
		data["product"] = gin.H{
			"id":             s.Product.ID,
			"product_number": s.Product.ProductNumber,
			"status":         s.Product.Status,
		}
		data["status"] = s.Product.Status
	}
	if s.Inspector != nil {
		data["inspector"] = gin.H{
			"id":       s.Inspector.ID,
			"username": s.Inspector.Username,
			"role":     s.Inspector.Role,
		}
	}

	values := make([]gin.H, 0, len(s.AttributeValues))
	for i := range s.AttributeValues {
		v := &s.AttributeValues[i]
		row := gin.H{
			"attribute_id":  v.AttributeID,
			"value_numeric": v.ValueNumeric,
			"value_text":    v.ValueText,
			"lookup_id":     v.LookupID,
			"photo_url":     v.PhotoURL,
		}
		if v.Attribute != nil {
			row["attribute_name"] = v.Attribute.Name
			row["data_type"] = v.Attribute.DataType
		}
		values = append(values, row)
	}
	data["attribute_values"] = values

	return data
}
