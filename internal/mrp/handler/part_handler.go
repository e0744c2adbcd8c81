package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mmtecheng/mmrp/internal/mrp/service"
)

// defaultSearchLimit HTTP层的默认搜索结果上限
const defaultSearchLimit = 100

// PartHandler 零件处理器
type PartHandler struct {
	svc *service.PartService
}

func NewPartHandler(svc *service.PartService) *PartHandler {
	return &PartHandler{svc: svc}
}

// Search 零件搜索
// GET /api/v1/mrp/parts?part_number=xxx&description=xxx&in_stock=1&limit=100
func (h *PartHandler) Search(c *gin.Context) {
	params := service.SearchParams{
		PartNumber:  c.Query("part_number"),
		Description: c.Query("description"),
		InStockOnly: QueryBool(c, "in_stock"),
		Limit:       QueryInt(c, "limit", defaultSearchLimit),
	}

	// 无任何过滤条件时拒绝全表扫描
	if !params.HasFilter() {
		BadRequest(c, "请至少输入零件号、描述或勾选仅看有库存")
		return
	}

	rows, err := h.svc.Search(c.Request.Context(), params)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	Success(c, gin.H{"items": rows, "count": len(rows)})
}

// Get 零件详情
// GET /api/v1/mrp/parts/:partNumber
func (h *PartHandler) Get(c *gin.Context) {
	detail, err := h.svc.Get(c.Request.Context(), c.Param("partNumber"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, detail)
}

// Create 新建零件（允许创建）
// POST /api/v1/mrp/parts
func (h *PartHandler) Create(c *gin.Context) {
	var req service.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	detail, err := h.svc.Upsert(c.Request.Context(), &req, true)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Created(c, detail)
}

// Update 更新既有零件（不存在则报错）
// PUT /api/v1/mrp/parts/:partNumber
func (h *PartHandler) Update(c *gin.Context) {
	var req service.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	req.PartNumber = c.Param("partNumber")

	detail, err := h.svc.Upsert(c.Request.Context(), &req, false)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, detail)
}
