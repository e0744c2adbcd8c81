package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移所有MRP表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 零件与类型元数据
		&PartType{},
		&AttributeDefinition{},
		&PartTypeAttribute{},
		&Part{},
		&PartAttributeValue{},

		// BOM
		&BOMLine{},

		// 库存
		&InventoryLot{},
		&InventoryTag{},
		&StockLocation{},

		// 参照表
		&UnitOfMeasure{},
	)
}
