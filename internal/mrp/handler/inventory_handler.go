package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mmtecheng/mmrp/internal/mrp/service"
)

// InventoryHandler 库存处理器
type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Snapshot 全局库存快照
// GET /api/v1/mrp/inventory/snapshot
func (h *InventoryHandler) Snapshot(c *gin.Context) {
	snap, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, snap)
}

// ForPart 单零件库存明细
// GET /api/v1/mrp/inventory/:partNumber
func (h *InventoryHandler) ForPart(c *gin.Context) {
	inv, err := h.svc.ForPart(c.Request.Context(), c.Param("partNumber"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, inv)
}

// Locations 库位参照表
// GET /api/v1/mrp/locations
func (h *InventoryHandler) Locations(c *gin.Context) {
	locs, err := h.svc.ListLocations(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": locs})
}
