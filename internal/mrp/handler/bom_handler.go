package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmtecheng/mmrp/internal/mrp/service"
)

// BOM列表的默认上限：单装配件的清单预期完整展示，上限更大
const (
	defaultBOMLimit         = 100
	defaultAssemblyBOMLimit = 200
)

// BOMHandler BOM处理器
type BOMHandler struct {
	svc *service.BOMService
}

func NewBOMHandler(svc *service.BOMService) *BOMHandler {
	return &BOMHandler{svc: svc}
}

// List BOM清单
// GET /api/v1/mrp/bom?assembly=xxx&limit=200
func (h *BOMHandler) List(c *gin.Context) {
	assembly := c.Query("assembly")
	defaultLimit := defaultBOMLimit
	if assembly != "" {
		defaultLimit = defaultAssemblyBOMLimit
	}

	lines, err := h.svc.BillOfMaterials(c.Request.Context(), service.BOMParams{
		Assembly: assembly,
		Limit:    QueryInt(c, "limit", defaultLimit),
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	result := gin.H{"items": lines, "count": len(lines)}
	if assembly != "" {
		result["assemblies_available"] = service.AssembliesAvailable(lines)
	}
	Success(c, result)
}

// Build 装配能力计算
// GET /api/v1/mrp/bom/build?assembly=xxx&count=5
func (h *BOMHandler) Build(c *gin.Context) {
	plan, err := h.svc.Build(c.Request.Context(), c.Query("assembly"), int64(QueryInt(c, "count", 1)))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, plan)
}

// Export 导出BOM为xlsx
// GET /api/v1/mrp/bom/export?assembly=xxx
func (h *BOMHandler) Export(c *gin.Context) {
	f, filename, err := h.svc.ExportBOM(c.Request.Context(), c.Query("assembly"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
