package entity

import "time"

// BOMLine BOM行：装配件与元件的父子关系
type BOMLine struct {
	ID            string     `json:"id" gorm:"primaryKey;size:36"`
	Assembly      string     `json:"assembly" gorm:"size:64;not null;index"`
	Component     string     `json:"component" gorm:"size:64;not null;index"`
	Sequence      string     `json:"sequence" gorm:"size:16"`
	QuantityPer   *float64   `json:"quantity_per" gorm:"type:numeric(15,4)"`
	EffectiveDate *time.Time `json:"effective_date"`
	ObsoleteDate  *time.Time `json:"obsolete_date"`
	Notes         string     `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (BOMLine) TableName() string {
	return "bom_lines"
}
