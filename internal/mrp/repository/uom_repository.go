package repository

import (
	"context"

	"github.com/mmtecheng/mmrp/internal/mrp/entity"
	"gorm.io/gorm"
)

type UOMRepository struct {
	db *gorm.DB
}

func NewUOMRepository(db *gorm.DB) *UOMRepository {
	return &UOMRepository{db: db}
}

// List 计量单位列表，可按用途过滤
func (r *UOMRepository) List(ctx context.Context, uomType string) ([]entity.UnitOfMeasure, error) {
	query := r.db.WithContext(ctx).Model(&entity.UnitOfMeasure{})
	if uomType != "" {
		query = query.Where("type = ?", uomType)
	}
	var uoms []entity.UnitOfMeasure
	err := query.Order("code ASC").Find(&uoms).Error
	return uoms, err
}
