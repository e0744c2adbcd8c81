package entity

import "time"

// InventoryLot 库存批次，正向计入在库量
type InventoryLot struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	PartNumber   string     `json:"part_number" gorm:"size:64;not null;index"`
	Quantity     float64    `json:"quantity" gorm:"type:numeric(15,4);not null;default:0"`
	DateReceived *time.Time `json:"date_received"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (InventoryLot) TableName() string {
	return "inventory_lots"
}

// InventoryTag 库存预留标签，负向计入可用量；数量可为空
type InventoryTag struct {
	ID                string    `json:"id" gorm:"primaryKey;size:36"`
	PartNumber        string    `json:"part_number" gorm:"size:64;not null;index"`
	QuantityAllocated *float64  `json:"quantity_allocated" gorm:"type:numeric(15,4)"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (InventoryTag) TableName() string {
	return "inventory_tags"
}

// StockLocation 库位参照表，展示时优先使用描述
type StockLocation struct {
	Room        string `json:"room" gorm:"primaryKey;size:16"`
	Code        string `json:"code" gorm:"primaryKey;size:32"`
	Description string `json:"description" gorm:"size:128"`
}

func (StockLocation) TableName() string {
	return "stock_locations"
}
