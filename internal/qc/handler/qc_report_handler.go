package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
)

// QCReportHandler 打胶批次报告处理器
type QCReportHandler struct {
	repo *repository.QCReportRepository
}

func NewQCReportHandler(repo *repository.QCReportRepository) *QCReportHandler {
	return &QCReportHandler{repo: repo}
}

type qcReportRequest struct {
	ReportID      *string           `json:"report_id"`
	StrsBatch     entity.JSONB      `json:"strs_batch"`
	CatalystBatch entity.JSONB      `json:"catalyst_batch"`
	PrimerC       entity.JSONB      `json:"primer_c"`
	BatchItems    entity.JSONBArray `json:"batch_items"`
	PanelsGlazed  *string           `json:"panels_glazed"`
	// 空串表示清除日期/时间
	DateGlazed   *string  `json:"date_glazed"`
	TimeGlazed   *string  `json:"time_glazed"`
	Images       []string `json:"images"`
	NewImages    []string `json:"new_images"`
	DeleteImages []uint   `json:"delete_images"`
}

// List 报告摘要列表，照片只返回有无标记
// GET /api/qc-reports
func (h *QCReportHandler) List(c *gin.Context) {
	reports, imageCounts, err := h.repo.List(c.Request.Context())
	if err != nil {
		InternalError(c, "获取报告列表失败: "+err.Error())
		return
	}

	out := make([]gin.H, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		row := gin.H{
			"id":                r.ID,
			"report_id":         r.ReportID,
			"strs_batch":        r.StrsBatch,
			"catalyst_batch":    r.CatalystBatch,
			"primer_c":          r.PrimerC,
			"batch_items_count": len(r.BatchItems),
			"panels_glazed":     summaryPanelsGlazed(r),
			"date_glazed":       formatReportDate(r.DateGlazed),
			"time_glazed":       r.TimeGlazed,
			"has_images":        imageCounts[r.ID] > 0,
			"created_at":        r.CreatedAt,
			"updated_at":        r.UpdatedAt,
			"created_by":        reportCreator(r),
		}
		out = append(out, row)
	}
	Success(c, out)
}

// Get 报告详情（含照片）
// GET /api/qc-reports/:id
func (h *QCReportHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "报告不存在")
			return
		}
		InternalError(c, "获取报告失败: "+err.Error())
		return
	}
	Success(c, qcReportDetail(report))
}

// Create 创建报告
// POST /api/qc-reports
func (h *QCReportHandler) Create(c *gin.Context) {
	var req qcReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.ReportID == nil || *req.ReportID == "" {
		BadRequest(c, "report_id 不能为空")
		return
	}

	report := &entity.QCReport{
		ReportID:      *req.ReportID,
		StrsBatch:     req.StrsBatch,
		CatalystBatch: req.CatalystBatch,
		PrimerC:       req.PrimerC,
		BatchItems:    req.BatchItems,
		PanelsGlazed:  req.PanelsGlazed,
	}
	if !applyGlazedAt(c, report, req.DateGlazed, req.TimeGlazed) {
		return
	}
	if userID := GetUserID(c); userID != 0 {
		report.CreatedBy = &userID
	}

	images, ok := decodeReportImages(c, req.Images)
	if !ok {
		return
	}
	report.Images = images

	if err := h.repo.Create(c.Request.Context(), report); err != nil {
		InternalError(c, "创建报告失败: "+err.Error())
		return
	}

	created, err := h.repo.FindByID(c.Request.Context(), report.ID)
	if err != nil {
		InternalError(c, "获取报告失败: "+err.Error())
		return
	}
	Created(c, qcReportDetail(created))
}

// Update 部分更新报告，照片删除先于新增
// PUT /api/qc-reports/:id
func (h *QCReportHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req qcReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	report, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "报告不存在")
			return
		}
		InternalError(c, "获取报告失败: "+err.Error())
		return
	}

	if req.ReportID != nil && *req.ReportID != "" {
		report.ReportID = *req.ReportID
	}
	if req.StrsBatch != nil {
		report.StrsBatch = req.StrsBatch
	}
	if req.CatalystBatch != nil {
		report.CatalystBatch = req.CatalystBatch
	}
	if req.PrimerC != nil {
		report.PrimerC = req.PrimerC
	}
	if req.BatchItems != nil {
		report.BatchItems = req.BatchItems
	}
	if req.PanelsGlazed != nil {
		report.PanelsGlazed = req.PanelsGlazed
	}
	if !applyGlazedAt(c, report, req.DateGlazed, req.TimeGlazed) {
		return
	}

	newImages, ok := decodeReportImages(c, req.NewImages)
	if !ok {
		return
	}

	if err := h.repo.Update(c.Request.Context(), report, req.DeleteImages, newImages); err != nil {
		InternalError(c, "更新报告失败: "+err.Error())
		return
	}

	updated, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		InternalError(c, "获取报告失败: "+err.Error())
		return
	}
	Success(c, qcReportDetail(updated))
}

// Delete 删除报告及照片
// DELETE /api/qc-reports/:id
func (h *QCReportHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.repo.FindByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "报告不存在")
			return
		}
		InternalError(c, "获取报告失败: "+err.Error())
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		InternalError(c, "删除报告失败: "+err.Error())
		return
	}
	Success(c, gin.H{"id": id})
}

// applyGlazedAt 解析并写入打胶日期/时间，格式不合法时响应400并返回false
func applyGlazedAt(c *gin.Context, report *entity.QCReport, dateGlazed, timeGlazed *string) bool {
	if dateGlazed != nil {
		if *dateGlazed == "" {
			report.DateGlazed = nil
		} else {
			d, err := time.Parse("2006-01-02", *dateGlazed)
			if err != nil {
				BadRequest(c, "date_glazed 格式应为 YYYY-MM-DD")
				return false
			}
			report.DateGlazed = &d
		}
	}
	if timeGlazed != nil {
		if *timeGlazed == "" {
			report.TimeGlazed = nil
		} else {
			if _, err := time.Parse("15:04", *timeGlazed); err != nil {
				BadRequest(c, "time_glazed 格式应为 HH:MM")
				return false
			}
			report.TimeGlazed = timeGlazed
		}
	}
	return true
}

// decodeReportImages 解码base64照片，失败时响应400并返回false
func decodeReportImages(c *gin.Context, inputs []string) ([]entity.ReportImage, bool) {
	if len(inputs) == 0 {
		return nil, true
	}
	images := make([]entity.ReportImage, 0, len(inputs))
	for _, in := range inputs {
		data, err := entity.DecodeBase64Image(in)
		if err != nil {
			BadRequest(c, "照片base64解码失败: "+err.Error())
			return nil, false
		}
		images = append(images, entity.ReportImage{Image: data})
	}
	return images, true
}

// summaryPanelsGlazed 列表行显示首个批次项的 panels_glazed，
// 没有批次项时回退到报告级字段
func summaryPanelsGlazed(r *entity.QCReport) interface{} {
	if len(r.BatchItems) > 0 {
		if v, ok := r.BatchItems[0]["panels_glazed"]; ok {
			return v
		}
	}
	return r.PanelsGlazed
}

func formatReportDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.Format("2006-01-02")
	return &s
}

func reportCreator(r *entity.QCReport) gin.H {
	if r.Creator == nil {
		return nil
	}
	return gin.H{"id": r.Creator.ID, "username": r.Creator.Username}
}

func qcReportDetail(r *entity.QCReport) gin.H {
	// 早期报告的批次项没有单独的 panels_glazed，详情里补上报告级的值
	items := r.BatchItems
	if len(items) > 0 && r.PanelsGlazed != nil {
		missing := true
		for _, item := range items {
			if _, ok := item["panels_glazed"]; ok {
				missing = false
				break
			}
		}
		if missing {
			for _, item := range items {
				item["panels_glazed"] = *r.PanelsGlazed
			}
		}
	}

	images := make([]gin.H, 0, len(r.Images))
	for i := range r.Images {
		img := &r.Images[i]
		images = append(images, gin.H{
			"id":         img.ID,
			"image_data": img.ImageBase64(),
			"created_at": img.CreatedAt,
		})
	}

	return gin.H{
		"id":             r.ID,
		"report_id":      r.ReportID,
		"strs_batch":     r.StrsBatch,
		"catalyst_batch": r.CatalystBatch,
		"primer_c":       r.PrimerC,
		"batch_items":    items,
		"panels_glazed":  r.PanelsGlazed,
		"date_glazed":    formatReportDate(r.DateGlazed),
		"time_glazed":    r.TimeGlazed,
		"created_at":     r.CreatedAt,
		"updated_at":     r.UpdatedAt,
		"created_by":     reportCreator(r),
		"images":         images,
	}
}
