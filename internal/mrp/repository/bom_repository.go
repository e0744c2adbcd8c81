package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

type BOMRepository struct {
	db *gorm.DB
}

func NewBOMRepository(db *gorm.DB) *BOMRepository {
	return &BOMRepository{db: db}
}

// BOMLineRow BOM行查询结果：装配件/元件描述、元件库位与可用量已联表解出
type BOMLineRow struct {
	ID                   string     `gorm:"column:id"`
	Assembly             string     `gorm:"column:assembly"`
	AssemblyDescription  string     `gorm:"column:assembly_description"`
	Component            string     `gorm:"column:component"`
	ComponentDescription string     `gorm:"column:component_description"`
	Sequence             string     `gorm:"column:sequence"`
	QuantityPer          *float64   `gorm:"column:quantity_per"`
	EffectiveDate        *time.Time `gorm:"column:effective_date"`
	ObsoleteDate         *time.Time `gorm:"column:obsolete_date"`
	Notes                string     `gorm:"column:notes"`
	Location             string     `gorm:"column:location_label"`
	AvailableQty         float64    `gorm:"column:available_qty"`
}

// List 查询BOM行。assembly 非空时精确限定装配件，否则返回全局清单。
// 数值感知的序号排序在服务层完成，这里只保证装配件升序的稳定基序。
func (r *BOMRepository) List(ctx context.Context, assembly string) ([]BOMLineRow, error) {
	var sb strings.Builder
	var args []interface{}

	sb.WriteString(`SELECT b.id, b.assembly,
		COALESCE(pa.description, '') AS assembly_description,
		b.component,
		COALESCE(pc.description, '') AS component_description,
		b.sequence, b.quantity_per, b.effective_date, b.obsolete_date, b.notes,
		COALESCE(NULLIF(sl.description, ''), NULLIF(pc.location, ''), '') AS location_label,
		` + availableQtyExpr("b.component") + ` AS available_qty
		FROM bom_lines b
		LEFT JOIN parts pa ON pa.part_number = b.assembly
		LEFT JOIN parts pc ON pc.part_number = b.component
		LEFT JOIN stock_locations sl ON sl.room = pc.room AND sl.code = pc.location`)
	if assembly != "" {
		sb.WriteString(" WHERE b.assembly = ?")
		args = append(args, assembly)
	}
	sb.WriteString(" ORDER BY b.assembly ASC, b.component ASC")

	var rows []BOMLineRow
	err := r.db.WithContext(ctx).Raw(sb.String(), args...).Scan(&rows).Error
	return rows, err
}
