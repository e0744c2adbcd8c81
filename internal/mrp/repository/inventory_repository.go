package repository

import (
	"context"
	"time"

	"github.com/mmtecheng/mmrp/internal/mrp/entity"
	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// AvailableQuantity 单个零件的可用量：max(在库 - 预留, 0)
func (r *InventoryRepository) AvailableQuantity(ctx context.Context, partNumber string) (float64, error) {
	var result struct {
		Qty float64 `gorm:"column:qty"`
	}
	err := r.db.WithContext(ctx).
		Raw("SELECT "+availableQtyExpr("?")+" AS qty", partNumber, partNumber).
		Scan(&result).Error
	return result.Qty, err
}

// SnapshotRow 全局库存汇总
type SnapshotRow struct {
	OnHand      float64    `gorm:"column:on_hand"`
	Allocated   float64    `gorm:"column:allocated"`
	LotCount    int64      `gorm:"column:lot_count"`
	LastReceipt *time.Time `gorm:"column:last_receipt"`
}

// Snapshot 一次查询取得全局在库、预留、批次行数与最近收货日期
func (r *InventoryRepository) Snapshot(ctx context.Context) (*SnapshotRow, error) {
	var row SnapshotRow
	err := r.db.WithContext(ctx).Raw(`SELECT
		COALESCE((SELECT SUM(quantity) FROM inventory_lots), 0) AS on_hand,
		COALESCE((SELECT SUM(quantity_allocated) FROM inventory_tags WHERE quantity_allocated IS NOT NULL), 0) AS allocated,
		(SELECT COUNT(*) FROM inventory_lots) AS lot_count,
		(SELECT MAX(date_received) FROM inventory_lots) AS last_receipt`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListLots 某零件的全部库存批次，按收货日期倒序
func (r *InventoryRepository) ListLots(ctx context.Context, partNumber string) ([]entity.InventoryLot, error) {
	var lots []entity.InventoryLot
	err := r.db.WithContext(ctx).
		Where("part_number = ?", partNumber).
		Order("date_received DESC NULLS LAST").
		Find(&lots).Error
	return lots, err
}

// AllocatedQuantity 某零件的预留数量合计
func (r *InventoryRepository) AllocatedQuantity(ctx context.Context, partNumber string) (float64, error) {
	var result struct {
		Qty float64 `gorm:"column:qty"`
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(quantity_allocated), 0) AS qty
			FROM inventory_tags WHERE part_number = ? AND quantity_allocated IS NOT NULL`, partNumber).
		Scan(&result).Error
	return result.Qty, err
}

// ListLocations 库位参照表
func (r *InventoryRepository) ListLocations(ctx context.Context) ([]entity.StockLocation, error) {
	var locs []entity.StockLocation
	err := r.db.WithContext(ctx).Order("room ASC, code ASC").Find(&locs).Error
	return locs, err
}
