package entity

import "time"

// UnitOfMeasure 计量单位参照表
type UnitOfMeasure struct {
	Code               string    `json:"code" gorm:"primaryKey;size:16"`
	Description        string    `json:"description" gorm:"size:128"`
	Type               string    `json:"type" gorm:"size:16"`
	ConversionFactor   float64   `json:"conversion_factor" gorm:"type:numeric(15,6);default:1"`
	StockCount         int       `json:"stock_count" gorm:"default:0"`
	PurchaseCount      int       `json:"purchase_count" gorm:"default:0"`
	SalesCount         int       `json:"sales_count" gorm:"default:0"`
	ManufacturingCount int       `json:"manufacturing_count" gorm:"default:0"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (UnitOfMeasure) TableName() string {
	return "units_of_measure"
}

// UOMType 计量单位用途
const (
	UOMTypeStock         = "stock"
	UOMTypePurchase      = "purchase"
	UOMTypeSales         = "sales"
	UOMTypeManufacturing = "manufacturing"
	UOMTypeUnspecified   = "unspecified"
)
