package repository

import (
	"context"
	"errors"

	"github.com/mmtecheng/mmrp/internal/mrp/entity"
	"gorm.io/gorm"
)

type AttributeRepository struct {
	db *gorm.DB
}

func NewAttributeRepository(db *gorm.DB) *AttributeRepository {
	return &AttributeRepository{db: db}
}

// ListPartTypes 零件类型列表
func (r *AttributeRepository) ListPartTypes(ctx context.Context) ([]entity.PartType, error) {
	var types []entity.PartType
	err := r.db.WithContext(ctx).Order("code ASC").Find(&types).Error
	return types, err
}

// FindPartType 根据ID查找零件类型
func (r *AttributeRepository) FindPartType(ctx context.Context, id int) (*entity.PartType, error) {
	var pt entity.PartType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pt, nil
}

// ListByPartType 按映射表顺序列出某零件类型的全部属性定义
func (r *AttributeRepository) ListByPartType(ctx context.Context, partTypeID int) ([]entity.AttributeDefinition, error) {
	var defs []entity.AttributeDefinition
	err := r.db.WithContext(ctx).
		Joins("JOIN part_type_attributes pta ON pta.attribute_id = attribute_definitions.id").
		Where("pta.part_type_id = ?", partTypeID).
		Order("pta.sort_order ASC, attribute_definitions.id ASC").
		Find(&defs).Error
	return defs, err
}
