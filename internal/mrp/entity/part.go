package entity

import "time"

// Part 零件主档
type Part struct {
	PartNumber  string    `json:"part_number" gorm:"primaryKey;size:64"`
	Description string    `json:"description" gorm:"size:256"`
	Revision    string    `json:"revision" gorm:"size:16"`
	StockUOM    string    `json:"stock_uom" gorm:"column:stock_uom;size:16"`
	Status      string    `json:"status" gorm:"size:16"`
	PartTypeID  *int      `json:"part_type_id" gorm:"index"`
	Room        string    `json:"room" gorm:"size:16"`
	Location    string    `json:"location" gorm:"size:32"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 关联
	PartType   *PartType            `json:"part_type,omitempty" gorm:"foreignKey:PartTypeID"`
	Attributes []PartAttributeValue `json:"attributes,omitempty" gorm:"foreignKey:PartNumber;references:PartNumber"`
}

func (Part) TableName() string {
	return "parts"
}

// PartStatus 零件状态
const (
	PartStatusActive   = "active"
	PartStatusInactive = "inactive"
	PartStatusObsolete = "obsolete"
)

// PartType 零件类型，决定零件暴露哪些属性以及适用的封装目录
type PartType struct {
	ID            int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Code          string    `json:"code" gorm:"size:32;not null;uniqueIndex"`
	SheetName     string    `json:"sheet_name" gorm:"size:64"`
	PackageColumn string    `json:"package_column" gorm:"size:32"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (PartType) TableName() string {
	return "part_types"
}

// AttributeDefinition 属性定义
// Datatype 为自由文本描述：enum('a','b',...)、int、double，其余按纯文本处理。
// RequiredRule 为 yes/no 或内嵌单引号子类型列表的条件文本。
type AttributeDefinition struct {
	ID           int      `json:"id" gorm:"primaryKey;autoIncrement"`
	Code         string   `json:"code" gorm:"size:64;not null"`
	Datatype     string   `json:"datatype" gorm:"size:256"`
	MinValue     *float64 `json:"min_value" gorm:"type:numeric(15,4)"`
	MaxValue     *float64 `json:"max_value" gorm:"type:numeric(15,4)"`
	Unit         string   `json:"unit" gorm:"size:16"`
	RequiredRule string   `json:"required_rule" gorm:"size:256"`
}

func (AttributeDefinition) TableName() string {
	return "attribute_definitions"
}

// PartTypeAttribute 零件类型与属性定义的多对多映射（含排序）
type PartTypeAttribute struct {
	PartTypeID  int `json:"part_type_id" gorm:"primaryKey"`
	AttributeID int `json:"attribute_id" gorm:"primaryKey"`
	SortOrder   int `json:"sort_order" gorm:"not null;default:0"`
}

func (PartTypeAttribute) TableName() string {
	return "part_type_attributes"
}

// PartAttributeValue 零件属性值，随零件整组替换
type PartAttributeValue struct {
	PartNumber  string `json:"part_number" gorm:"primaryKey;size:64"`
	AttributeID int    `json:"attribute_id" gorm:"primaryKey"`
	Value       string `json:"value" gorm:"size:256"`
}

func (PartAttributeValue) TableName() string {
	return "part_attribute_values"
}
