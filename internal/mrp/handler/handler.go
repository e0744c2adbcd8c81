package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmtecheng/mmrp/internal/mrp/repository"
	"github.com/mmtecheng/mmrp/internal/mrp/service"
)

// Handlers MRP处理器集合
type Handlers struct {
	Part      *PartHandler
	BOM       *BOMHandler
	Inventory *InventoryHandler
	PartType  *PartTypeHandler
	UOM       *UOMHandler
}

// NewHandlers 创建MRP处理器集合
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Part:      NewPartHandler(services.Part),
		BOM:       NewBOMHandler(services.BOM),
		Inventory: NewInventoryHandler(services.Inventory),
		PartType:  NewPartTypeHandler(services.PartType),
		UOM:       NewUOMHandler(services.UOM),
	}
}

// === 响应辅助函数 ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

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

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// HandleServiceError 按错误类别映射响应：
// 输入/校验错误 → 400，未找到 → 404，其余存储错误原样透传为 500。
func HandleServiceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		BadRequest(c, err.Error())
	case errors.As(err, &ve):
		BadRequest(c, ve.Error())
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

// QueryInt 读取正整型查询参数，缺失、非法或非正时返回默认值。
// limit/count 类参数的零和负值不代表"不限制"，一律退回默认值。
func QueryInt(c *gin.Context, key string, defaultValue int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return defaultValue
}

// QueryBool 读取布尔查询参数
func QueryBool(c *gin.Context, key string) bool {
	switch c.Query(key) {
	case "1", "true", "yes":
		return true
	}
	return false
}
