package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mmtecheng/mmrp/internal/mrp/repository"
)

// AttributeService 属性规则引擎：解析属性定义、求值必填/可见性、校验属性值
type AttributeService struct {
	attrRepo *repository.AttributeRepository
}

func NewAttributeService(attrRepo *repository.AttributeRepository) *AttributeService {
	return &AttributeService{attrRepo: attrRepo}
}

// AttributeDef 解析后的属性定义视图：数据类型与必填规则只解析一次
type AttributeDef struct {
	ID       int          `json:"id"`
	Code     string       `json:"code"`
	Label    string       `json:"label"`
	Datatype Datatype     `json:"-"`
	RawType  string       `json:"datatype"`
	Min      *float64     `json:"min_value"`
	Max      *float64     `json:"max_value"`
	Unit     string       `json:"unit"`
	Rule     RequiredRule `json:"-"`
	RawRule  string       `json:"required_rule"`
}

// IsSubtype 该定义是否为子类型判别属性
func (d *AttributeDef) IsSubtype() bool {
	return NormalizeAttributeCode(d.Code) == "subtype"
}

// VerifyPartType 校验零件类型存在，未知类型返回 repository.ErrNotFound
func (s *AttributeService) VerifyPartType(ctx context.Context, partTypeID int) error {
	_, err := s.attrRepo.FindPartType(ctx, partTypeID)
	return err
}

// ResolveDefinitions 加载某零件类型映射的全部属性定义，按映射顺序返回
func (s *AttributeService) ResolveDefinitions(ctx context.Context, partTypeID int) ([]*AttributeDef, error) {
	rows, err := s.attrRepo.ListByPartType(ctx, partTypeID)
	if err != nil {
		return nil, fmt.Errorf("list attribute definitions: %w", err)
	}

	defs := make([]*AttributeDef, 0, len(rows))
	for _, row := range rows {
		defs = append(defs, &AttributeDef{
			ID:       row.ID,
			Code:     row.Code,
			Label:    attrCodeSuffix.ReplaceAllString(row.Code, ""),
			Datatype: ParseDatatype(row.Datatype),
			RawType:  row.Datatype,
			Min:      row.MinValue,
			Max:      row.MaxValue,
			Unit:     row.Unit,
			Rule:     ParseRequiredRule(row.RequiredRule),
			RawRule:  row.RequiredRule,
		})
	}
	return defs, nil
}

// DefinitionMap 以属性ID为键的定义索引
func DefinitionMap(defs []*AttributeDef) map[int]*AttributeDef {
	m := make(map[int]*AttributeDef, len(defs))
	for _, d := range defs {
		m[d.ID] = d
	}
	return m
}

// ValidateValue 按数据类型校验并归一化单个属性值。
// 空值恒通过并归一化为空串——是否允许为空由必填检查单独负责。
func (s *AttributeService) ValidateValue(def *AttributeDef, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", nil
	}

	switch def.Datatype.Kind {
	case DatatypeEnum:
		if len(def.Datatype.Options) == 0 {
			return v, nil
		}
		lower := strings.ToLower(v)
		for _, opt := range def.Datatype.Options {
			if opt == lower {
				return v, nil
			}
		}
		return "", &ValidationError{
			Attribute: def.Code,
			Message:   fmt.Sprintf("值 %q 不在可选项 (%s) 中", v, strings.Join(def.Datatype.Options, ", ")),
		}

	case DatatypeInt:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return "", &ValidationError{Attribute: def.Code, Message: fmt.Sprintf("值 %q 不是整数", v)}
		}
		if err := checkRange(def, float64(n)); err != nil {
			return "", err
		}
		return v, nil

	case DatatypeDouble:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return "", &ValidationError{Attribute: def.Code, Message: fmt.Sprintf("值 %q 不是数值", v)}
		}
		if err := checkRange(def, f); err != nil {
			return "", err
		}
		return v, nil

	default:
		return v, nil
	}
}

func checkRange(def *AttributeDef, n float64) error {
	if def.Min != nil && n < *def.Min {
		return &ValidationError{Attribute: def.Code, Message: fmt.Sprintf("值 %v 小于下限 %v", n, *def.Min)}
	}
	if def.Max != nil && n > *def.Max {
		return &ValidationError{Attribute: def.Code, Message: fmt.Sprintf("值 %v 大于上限 %v", n, *def.Max)}
	}
	return nil
}

// SubtypeValue 在提交的属性集中找出子类型判别值
func SubtypeValue(values map[int]string, defs []*AttributeDef) string {
	for _, def := range defs {
		if def.IsSubtype() {
			return values[def.ID]
		}
	}
	return ""
}

// AssertRequired 对照当前子类型值检查所有必填属性均已提交非空值，
// 缺失的属性代码汇总到一个错误里报告。
func (s *AttributeService) AssertRequired(values map[int]string, defs []*AttributeDef) error {
	subtype := SubtypeValue(values, defs)

	var missing []string
	for _, def := range defs {
		required, _ := def.Rule.Evaluate(subtype)
		if required && strings.TrimSpace(values[def.ID]) == "" {
			missing = append(missing, def.Label)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &ValidationError{Message: "缺少必填属性: " + strings.Join(missing, ", ")}
	}
	return nil
}

// AttributeView 面向前端的属性定义视图，已按子类型求值必填/可见性
type AttributeView struct {
	*AttributeDef
	Required bool `json:"required"`
	Visible  bool `json:"visible"`
}

// EvaluateForSubtype 以给定子类型值求值整组定义的必填/可见性
func (s *AttributeService) EvaluateForSubtype(defs []*AttributeDef, subtype string) []AttributeView {
	views := make([]AttributeView, 0, len(defs))
	for _, def := range defs {
		required, visible := def.Rule.Evaluate(subtype)
		views = append(views, AttributeView{AttributeDef: def, Required: required, Visible: visible})
	}
	return views
}
