package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// availableQtyExpr 生成某零件可用量的SQL片段：
// GREATEST(批次数量合计 - 非空预留数量合计, 0)，缺行按0处理。
// ref 为零件号列的引用（如 p.part_number）。
func availableQtyExpr(ref string) string {
	return fmt.Sprintf(`GREATEST(COALESCE((SELECT SUM(l.quantity) FROM inventory_lots l WHERE l.part_number = %s), 0) - COALESCE((SELECT SUM(t.quantity_allocated) FROM inventory_tags t WHERE t.part_number = %s AND t.quantity_allocated IS NOT NULL), 0), 0)`, ref, ref)
}

// Repositories MRP仓库集合
type Repositories struct {
	Part      *PartRepository
	Attribute *AttributeRepository
	BOM       *BOMRepository
	Inventory *InventoryRepository
	UOM       *UOMRepository
}

// NewRepositories 创建MRP仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Part:      NewPartRepository(db),
		Attribute: NewAttributeRepository(db),
		BOM:       NewBOMRepository(db),
		Inventory: NewInventoryRepository(db),
		UOM:       NewUOMRepository(db),
	}
}
