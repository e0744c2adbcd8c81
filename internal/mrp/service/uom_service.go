package service

import (
	"context"

	"github.com/mmtecheng/mmrp/internal/mrp/entity"
	"github.com/mmtecheng/mmrp/internal/mrp/repository"
)

// UOMService 计量单位参照
type UOMService struct {
	uomRepo *repository.UOMRepository
}

func NewUOMService(uomRepo *repository.UOMRepository) *UOMService {
	return &UOMService{uomRepo: uomRepo}
}

// List 计量单位列表，可按用途过滤
func (s *UOMService) List(ctx context.Context, uomType string) ([]entity.UnitOfMeasure, error) {
	return s.uomRepo.List(ctx, uomType)
}

// PartTypeService 零件类型与属性定义查询
type PartTypeService struct {
	attrRepo *repository.AttributeRepository
	attrSvc  *AttributeService
}

func NewPartTypeService(attrRepo *repository.AttributeRepository, attrSvc *AttributeService) *PartTypeService {
	return &PartTypeService{attrRepo: attrRepo, attrSvc: attrSvc}
}

// List 零件类型列表
func (s *PartTypeService) List(ctx context.Context) ([]entity.PartType, error) {
	return s.attrRepo.ListPartTypes(ctx)
}

// Attributes 某零件类型的属性定义，按给定子类型值求值必填/可见性
func (s *PartTypeService) Attributes(ctx context.Context, partTypeID int, subtype string) ([]AttributeView, error) {
	if _, err := s.attrRepo.FindPartType(ctx, partTypeID); err != nil {
		return nil, err
	}
	defs, err := s.attrSvc.ResolveDefinitions(ctx, partTypeID)
	if err != nil {
		return nil, err
	}
	return s.attrSvc.EvaluateForSubtype(defs, subtype), nil
}
