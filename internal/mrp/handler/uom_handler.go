package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mmtecheng/mmrp/internal/mrp/service"
)

// UOMHandler 计量单位处理器
type UOMHandler struct {
	svc *service.UOMService
}

func NewUOMHandler(svc *service.UOMService) *UOMHandler {
	return &UOMHandler{svc: svc}
}

// List 计量单位列表
// GET /api/v1/mrp/uoms?type=stock
func (h *UOMHandler) List(c *gin.Context) {
	uoms, err := h.svc.List(c.Request.Context(), c.Query("type"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": uoms})
}
