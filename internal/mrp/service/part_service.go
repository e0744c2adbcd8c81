package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmtecheng/mmrp/internal/mrp/entity"
	"github.com/mmtecheng/mmrp/internal/mrp/pattern"
	"github.com/mmtecheng/mmrp/internal/mrp/repository"
)

// PartService 零件搜索与保存
type PartService struct {
	partRepo *repository.PartRepository
	attrSvc  *AttributeService
}

func NewPartService(partRepo *repository.PartRepository, attrSvc *AttributeService) *PartService {
	return &PartService{partRepo: partRepo, attrSvc: attrSvc}
}

// SearchParams 零件搜索条件
type SearchParams struct {
	PartNumber  string
	Description string
	InStockOnly bool
	Limit       int
}

// HasFilter 是否至少有一个有效过滤条件
func (p SearchParams) HasFilter() bool {
	return strings.TrimSpace(p.PartNumber) != "" ||
		strings.TrimSpace(p.Description) != "" ||
		p.InStockOnly
}

// Search 按条件搜索零件。零件号与描述各自编译为一组LIKE谓词（组内OR、组间AND），
// InStockOnly 追加可用量大于零的谓词。空条件的拒绝由边界层负责。
func (s *PartService) Search(ctx context.Context, params SearchParams) ([]repository.PartSearchRow, error) {
	q := repository.PartSearchQuery{
		Number:      pattern.Compile(params.PartNumber),
		Description: pattern.Compile(params.Description),
		InStockOnly: params.InStockOnly,
		Limit:       params.Limit,
	}

	rows, err := s.partRepo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search parts: %w", err)
	}
	return rows, nil
}

// PartDetail 零件详情：标量字段、属性值与按当前子类型求值后的属性定义
type PartDetail struct {
	*entity.Part
	Location    string          `json:"location_label"`
	Values      map[int]string  `json:"values"`
	Definitions []AttributeView `json:"definitions,omitempty"`
}

// Get 零件详情
func (s *PartService) Get(ctx context.Context, partNumber string) (*PartDetail, error) {
	part, err := s.partRepo.FindByNumber(ctx, partNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("零件 %s 不存在: %w", partNumber, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("find part: %w", err)
	}

	detail := &PartDetail{
		Part:     part,
		Location: s.partRepo.LocationLabel(ctx, part),
		Values:   make(map[int]string, len(part.Attributes)),
	}
	for _, v := range part.Attributes {
		detail.Values[v.AttributeID] = v.Value
	}

	if part.PartTypeID != nil {
		defs, err := s.attrSvc.ResolveDefinitions(ctx, *part.PartTypeID)
		if err != nil {
			return nil, err
		}
		subtype := SubtypeValue(detail.Values, defs)
		detail.Definitions = s.attrSvc.EvaluateForSubtype(defs, subtype)
	}
	return detail, nil
}

// AttributeInput 提交的单个属性值
type AttributeInput struct {
	AttributeID int    `json:"attribute_id" binding:"required"`
	Value       string `json:"value"`
}

// UpsertRequest 零件保存请求
type UpsertRequest struct {
	PartNumber  string           `json:"part_number"`
	Description string           `json:"description"`
	Revision    string           `json:"revision"`
	StockUOM    string           `json:"stock_uom"`
	Status      string           `json:"status"`
	PartTypeID  *int             `json:"part_type_id"`
	Room        string           `json:"room"`
	Location    string           `json:"location"`
	Attributes  []AttributeInput `json:"attributes"`
}

// Upsert 校验并保存零件：标量字段与整组属性值在同一事务内原子替换。
// 所有校验先于任何写入完成，校验失败不落任何数据。
func (s *PartService) Upsert(ctx context.Context, req *UpsertRequest, allowCreate bool) (*PartDetail, error) {
	partNumber := strings.TrimSpace(req.PartNumber)
	if partNumber == "" {
		return nil, fmt.Errorf("%w: 零件号不能为空", ErrInvalidInput)
	}

	existing, err := s.partRepo.FindByNumber(ctx, partNumber)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find part: %w", err)
	}

	// 解析生效的零件类型：请求显式给出的优先，其次沿用现有零件的类型
	var partTypeID int
	switch {
	case req.PartTypeID != nil:
		partTypeID = *req.PartTypeID
		// 显式提交的类型必须真实存在，否则属性定义会悄悄解析为空组
		if err := s.attrSvc.VerifyPartType(ctx, partTypeID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: 零件类型 %d 不存在", ErrInvalidInput, partTypeID)
			}
			return nil, fmt.Errorf("find part type: %w", err)
		}
	case existing != nil && existing.PartTypeID != nil:
		partTypeID = *existing.PartTypeID
	case existing == nil:
		return nil, fmt.Errorf("%w: 新建零件必须选择零件类型", ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: 零件未设置类型，请先选择零件类型", ErrInvalidInput)
	}

	defs, err := s.attrSvc.ResolveDefinitions(ctx, partTypeID)
	if err != nil {
		return nil, err
	}
	defMap := DefinitionMap(defs)

	// 只保留属于该类型且通过数据类型校验的属性
	normalized := make(map[int]string, len(req.Attributes))
	for _, in := range req.Attributes {
		def, ok := defMap[in.AttributeID]
		if !ok {
			continue
		}
		v, err := s.attrSvc.ValidateValue(def, in.Value)
		if err != nil {
			return nil, err
		}
		normalized[in.AttributeID] = v
	}

	if len(defs) > 0 {
		if err := s.attrSvc.AssertRequired(normalized, defs); err != nil {
			return nil, err
		}
	}

	if existing == nil && !allowCreate {
		return nil, fmt.Errorf("零件 %s 不存在: %w", partNumber, repository.ErrNotFound)
	}

	now := time.Now()
	part := &entity.Part{
		PartNumber:  partNumber,
		Description: strings.TrimSpace(req.Description),
		Revision:    strings.TrimSpace(req.Revision),
		StockUOM:    strings.TrimSpace(req.StockUOM),
		Status:      strings.TrimSpace(req.Status),
		PartTypeID:  &partTypeID,
		Room:        strings.TrimSpace(req.Room),
		Location:    strings.TrimSpace(req.Location),
		UpdatedAt:   now,
	}
	if existing != nil {
		part.CreatedAt = existing.CreatedAt
	} else {
		part.CreatedAt = now
	}

	values := make([]entity.PartAttributeValue, 0, len(normalized))
	for id, v := range normalized {
		if v == "" {
			continue
		}
		values = append(values, entity.PartAttributeValue{
			PartNumber:  partNumber,
			AttributeID: id,
			Value:       v,
		})
	}

	if err := s.partRepo.ReplaceWithAttributes(ctx, part, values, existing == nil); err != nil {
		return nil, fmt.Errorf("save part: %w", err)
	}

	// 提交后重读，响应始终反映已提交状态
	return s.Get(ctx, partNumber)
}
