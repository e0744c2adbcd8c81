package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mmtecheng/mmrp/internal/mrp/entity"
	"github.com/mmtecheng/mmrp/internal/mrp/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	snapshotCacheKey = "mmrp:inventory:snapshot"
	snapshotCacheTTL = 30 * time.Second
)

// InventoryService 库存聚合：单零件可用量与全局库存快照
type InventoryService struct {
	invRepo *repository.InventoryRepository
	rdb     *redis.Client // 可为nil，缓存降级为直查
	logger  *zap.Logger
}

func NewInventoryService(invRepo *repository.InventoryRepository, rdb *redis.Client, logger *zap.Logger) *InventoryService {
	return &InventoryService{invRepo: invRepo, rdb: rdb, logger: logger}
}

// AvailableQuantity 单零件可用量，恒 >= 0
func (s *InventoryService) AvailableQuantity(ctx context.Context, partNumber string) (float64, error) {
	qty, err := s.invRepo.AvailableQuantity(ctx, partNumber)
	if err != nil {
		return 0, fmt.Errorf("available quantity: %w", err)
	}
	return qty, nil
}

// InventorySnapshot 全局库存快照
type InventorySnapshot struct {
	QuantityOnHand    float64 `json:"quantity_on_hand"`
	QuantityAllocated float64 `json:"quantity_allocated"`
	QuantityAvailable float64 `json:"quantity_available"`
	LotCount          int64   `json:"lot_count"`
	LastReceiptDate   *string `json:"last_receipt_date"`
}

// Snapshot 全局库存快照，短TTL缓存；缓存不可用时直查
func (s *InventoryService) Snapshot(ctx context.Context) (*InventorySnapshot, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, snapshotCacheKey).Bytes(); err == nil {
			var snap InventorySnapshot
			if json.Unmarshal(cached, &snap) == nil {
				return &snap, nil
			}
		}
	}

	row, err := s.invRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}

	available := row.OnHand - row.Allocated
	if available < 0 {
		available = 0
	}
	snap := &InventorySnapshot{
		QuantityOnHand:    row.OnHand,
		QuantityAllocated: row.Allocated,
		QuantityAvailable: available,
		LotCount:          row.LotCount,
		LastReceiptDate:   isoDate(row.LastReceipt),
	}

	if s.rdb != nil {
		if data, err := json.Marshal(snap); err == nil {
			if err := s.rdb.Set(ctx, snapshotCacheKey, data, snapshotCacheTTL).Err(); err != nil && s.logger != nil {
				s.logger.Debug("snapshot cache write failed", zap.Error(err))
			}
		}
	}
	return snap, nil
}

// PartInventory 单零件库存明细
type PartInventory struct {
	PartNumber        string                `json:"part_number"`
	QuantityOnHand    float64               `json:"quantity_on_hand"`
	QuantityAllocated float64               `json:"quantity_allocated"`
	QuantityAvailable float64               `json:"quantity_available"`
	Lots              []entity.InventoryLot `json:"lots"`
}

// ForPart 单零件在库/预留/可用与批次明细
func (s *InventoryService) ForPart(ctx context.Context, partNumber string) (*PartInventory, error) {
	lots, err := s.invRepo.ListLots(ctx, partNumber)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}

	var onHand float64
	for _, lot := range lots {
		onHand += lot.Quantity
	}

	allocated, err := s.invRepo.AllocatedQuantity(ctx, partNumber)
	if err != nil {
		return nil, fmt.Errorf("allocated quantity: %w", err)
	}

	available := onHand - allocated
	if available < 0 {
		available = 0
	}
	return &PartInventory{
		PartNumber:        partNumber,
		QuantityOnHand:    onHand,
		QuantityAllocated: allocated,
		QuantityAvailable: available,
		Lots:              lots,
	}, nil
}

// ListLocations 库位参照表
func (s *InventoryService) ListLocations(ctx context.Context) ([]entity.StockLocation, error) {
	return s.invRepo.ListLocations(ctx)
}
