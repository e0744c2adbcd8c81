package service

import (
	"github.com/mmtecheng/mmrp/internal/mrp/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Services MRP服务集合
type Services struct {
	Part      *PartService
	BOM       *BOMService
	Inventory *InventoryService
	PartType  *PartTypeService
	UOM       *UOMService
	Attribute *AttributeService
}

// NewServices 创建MRP服务集合。rdb 可为nil（不启用缓存）。
func NewServices(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger) *Services {
	attrSvc := NewAttributeService(repos.Attribute)
	return &Services{
		Part:      NewPartService(repos.Part, attrSvc),
		BOM:       NewBOMService(repos.BOM),
		Inventory: NewInventoryService(repos.Inventory, rdb, logger),
		PartType:  NewPartTypeService(repos.Attribute, attrSvc),
		UOM:       NewUOMService(repos.UOM),
		Attribute: attrSvc,
	}
}
