package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/mmtecheng/mmrp/internal/mrp/entity"
	"github.com/mmtecheng/mmrp/internal/mrp/pattern"
	"gorm.io/gorm"
)

type PartRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{db: db}
}

func (r *PartRepository) DB() *gorm.DB {
	return r.db
}

// PartSearchQuery 零件搜索条件。Number/Description 为空表示该字段不参与过滤；
// Limit <= 0 表示不限制行数。
type PartSearchQuery struct {
	Number      *pattern.LikePatterns
	Description *pattern.LikePatterns
	InStockOnly bool
	Limit       int
}

// PartSearchRow 零件搜索结果行
type PartSearchRow struct {
	PartNumber   string  `gorm:"column:part_number" json:"part_number"`
	Description  string  `gorm:"column:description" json:"description"`
	Revision     string  `gorm:"column:revision" json:"revision"`
	StockUOM     string  `gorm:"column:stock_uom" json:"stock_uom"`
	Status       string  `gorm:"column:status" json:"status"`
	Location     string  `gorm:"column:location_label" json:"location"`
	AvailableQty float64 `gorm:"column:available_qty" json:"available_qty"`
}

// collapsedColumn 去掉连字符与空格后的列引用，与折叠模式配对比较
func collapsedColumn(ref string) string {
	return "REPLACE(REPLACE(LOWER(" + ref + "), '-', ''), ' ', '')"
}

// likeGroup 单字段的OR谓词组：标准模式匹配小写原值，折叠模式匹配折叠后的值
func likeGroup(ref string, p *pattern.LikePatterns, args *[]interface{}) string {
	conds := []string{"LOWER(" + ref + `) LIKE ? ESCAPE '\'`}
	*args = append(*args, p.Standard)
	if p.Collapsed != "" {
		conds = append(conds, collapsedColumn(ref)+` LIKE ? ESCAPE '\'`)
		*args = append(*args, p.Collapsed)
	}
	return "(" + strings.Join(conds, " OR ") + ")"
}

// Search 组合谓词执行零件搜索，按零件号升序。
// 所有条件为空时不做隐式兜底，边界层需先行拒绝空搜索。
func (r *PartRepository) Search(ctx context.Context, q PartSearchQuery) ([]PartSearchRow, error) {
	var conds []string
	var args []interface{}

	if q.Number != nil {
		conds = append(conds, likeGroup("p.part_number", q.Number, &args))
	}
	if q.Description != nil {
		conds = append(conds, likeGroup("p.description", q.Description, &args))
	}
	if q.InStockOnly {
		conds = append(conds, availableQtyExpr("p.part_number")+" > 0")
	}

	var sb strings.Builder
	sb.WriteString(`SELECT p.part_number, p.description, p.revision, p.stock_uom, p.status,
		COALESCE(NULLIF(sl.description, ''), NULLIF(p.location, ''), '') AS location_label,
		` + availableQtyExpr("p.part_number") + ` AS available_qty
		FROM parts p
		LEFT JOIN stock_locations sl ON sl.room = p.room AND sl.code = p.location`)
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY p.part_number ASC")
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	var rows []PartSearchRow
	err := r.db.WithContext(ctx).Raw(sb.String(), args...).Scan(&rows).Error
	return rows, err
}

// FindByNumber 根据零件号查找零件（含属性值与类型）
func (r *PartRepository) FindByNumber(ctx context.Context, partNumber string) (*entity.Part, error) {
	var part entity.Part
	err := r.db.WithContext(ctx).
		Preload("Attributes").
		Preload("PartType").
		Where("part_number = ?", partNumber).
		First(&part).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &part, nil
}

// LocationLabel 解析零件的库位展示名：库位描述优先，其次原始库位代码
func (r *PartRepository) LocationLabel(ctx context.Context, part *entity.Part) string {
	if part.Room != "" || part.Location != "" {
		var loc entity.StockLocation
		err := r.db.WithContext(ctx).
			Where("room = ? AND code = ?", part.Room, part.Location).
			First(&loc).Error
		if err == nil && loc.Description != "" {
			return loc.Description
		}
	}
	return part.Location
}

// ReplaceWithAttributes 在一个事务内保存零件标量字段并整组替换属性值。
// 先删后插，保证子类型变更后被取消的属性不会残留。
func (r *PartRepository) ReplaceWithAttributes(ctx context.Context, part *entity.Part, values []entity.PartAttributeValue, create bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if create {
			if err := tx.Create(part).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(part).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("part_number = ?", part.PartNumber).
			Delete(&entity.PartAttributeValue{}).Error; err != nil {
			return err
		}

		if len(values) > 0 {
			if err := tx.Create(&values).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
