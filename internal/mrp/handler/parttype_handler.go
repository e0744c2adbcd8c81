package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmtecheng/mmrp/internal/mrp/service"
)

// PartTypeHandler 零件类型处理器
type PartTypeHandler struct {
	svc *service.PartTypeService
}

func NewPartTypeHandler(svc *service.PartTypeService) *PartTypeHandler {
	return &PartTypeHandler{svc: svc}
}

// List 零件类型列表
// GET /api/v1/mrp/part-types
func (h *PartTypeHandler) List(c *gin.Context) {
	types, err := h.svc.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": types})
}

// Attributes 某零件类型的属性定义，按可选的子类型值求值必填/可见性
// GET /api/v1/mrp/part-types/:id/attributes?subtype=SMT
func (h *PartTypeHandler) Attributes(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		BadRequest(c, "零件类型ID必须是整数")
		return
	}

	views, err := h.svc.Attributes(c.Request.Context(), id, c.Query("subtype"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": views})
}
