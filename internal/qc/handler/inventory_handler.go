package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
)

// InventoryHandler 库存只读查询处理器
type InventoryHandler struct {
	repo *repository.InventoryRepository
}

func NewInventoryHandler(repo *repository.InventoryRepository) *InventoryHandler {
	return &InventoryHandler{repo: repo}
}

// ListWarehouses 仓库列表
// GET /api/warehouses
func (h *InventoryHandler) ListWarehouses(c *gin.Context) {
	warehouses, err := h.repo.ListWarehouses(c.Request.Context())
	if err != nil {
		InternalError(c, "获取仓库列表失败: "+err.Error())
		return
	}
	Success(c, warehouses)
}

// ListPartTypes 零件大类列表
// GET /api/part-types
func (h *InventoryHandler) ListPartTypes(c *gin.Context) {
	types, err := h.repo.ListPartTypes(c.Request.Context())
	if err != nil {
		InternalError(c, "获取零件大类失败: "+err.Error())
		return
	}
	Success(c, types)
}

// ListPartSubtypes 零件细类列表，可按 part_type_id 过滤
// GET /api/part-subtypes
func (h *InventoryHandler) ListPartSubtypes(c *gin.Context) {
	subtypes, err := h.repo.ListPartSubtypes(c.Request.Context(), queryUint(c, "part_type_id"))
	if err != nil {
		InternalError(c, "获取零件细类失败: "+err.Error())
		return
	}
	Success(c, subtypes)
}

// ListSnapshots 库存快照
// GET /api/inventory-snapshots?warehouse_id=&part_subtype_id=
func (h *InventoryHandler) ListSnapshots(c *gin.Context) {
	filter := repository.SnapshotFilter{
		WarehouseID:   queryUint(c, "warehouse_id"),
		PartSubtypeID: queryUint(c, "part_subtype_id"),
	}
	snapshots, err := h.repo.ListSnapshots(c.Request.Context(), filter)
	if err != nil {
		InternalError(c, "获取库存快照失败: "+err.Error())
		return
	}
	Success(c, snapshots)
}

// ListPartShipments 零件到货记录
// GET /api/part-shipments?warehouse_id=
func (h *InventoryHandler) ListPartShipments(c *gin.Context) {
	shipments, err := h.repo.ListPartShipments(c.Request.Context(), queryUint(c, "warehouse_id"))
	if err != nil {
		InternalError(c, "获取到货记录失败: "+err.Error())
		return
	}
	Success(c, shipments)
}

func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
