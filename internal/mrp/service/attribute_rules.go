package service

import (
	"regexp"
	"strings"
)

// quotedLiteral 提取规则文本中的单引号字面量，规则的其余文本不作逻辑求值
var quotedLiteral = regexp.MustCompile(`'([^']*)'`)

// attrCodeSuffix 属性代码的数字消歧后缀（如 voltage_2）
var attrCodeSuffix = regexp.MustCompile(`_\d+$`)

// NormalizeAttributeCode 归一化属性代码：去掉数字后缀并转小写。
// 归一化后等于 subtype 的属性充当同类型其他属性的条件判别值。
func NormalizeAttributeCode(code string) string {
	return strings.ToLower(attrCodeSuffix.ReplaceAllString(strings.TrimSpace(code), ""))
}

type RuleKind int

const (
	// RuleUnconditional 无条件规则：yes/no/空
	RuleUnconditional RuleKind = iota
	// RuleConditional 条件规则：仅当子类型命中引号列表时必填
	RuleConditional
)

// RequiredRule 必填规则的封闭解析结果，加载属性定义时解析一次，不逐次重解析
type RequiredRule struct {
	Kind     RuleKind
	Required bool
	Subtypes []string
}

// ParseRequiredRule 解析必填规则文本。
// 空 → 可选且可见；yes/no → 无条件；
// 其余文本只取其中的单引号字面量作为子类型白名单。
func ParseRequiredRule(text string) RequiredRule {
	t := strings.ToLower(strings.TrimSpace(text))
	switch t {
	case "":
		return RequiredRule{Kind: RuleUnconditional}
	case "yes":
		return RequiredRule{Kind: RuleUnconditional, Required: true}
	case "no":
		return RequiredRule{Kind: RuleUnconditional}
	}

	var subtypes []string
	for _, m := range quotedLiteral.FindAllStringSubmatch(t, -1) {
		if lit := strings.TrimSpace(m[1]); lit != "" {
			subtypes = append(subtypes, lit)
		}
	}
	if len(subtypes) == 0 {
		// 条件文本里没有任何字面量，退化为可选且可见
		return RequiredRule{Kind: RuleUnconditional}
	}
	return RequiredRule{Kind: RuleConditional, Subtypes: subtypes}
}

// Evaluate 依据当前子类型值求值必填/可见性。
// 未设置子类型时条件规则一律视为可选且可见。
func (r RequiredRule) Evaluate(subtype string) (required, visible bool) {
	if r.Kind == RuleUnconditional {
		return r.Required, true
	}
	st := strings.ToLower(strings.TrimSpace(subtype))
	if st == "" {
		return false, true
	}
	for _, s := range r.Subtypes {
		if s == st {
			return true, true
		}
	}
	return false, false
}

type DatatypeKind int

const (
	DatatypeText DatatypeKind = iota
	DatatypeInt
	DatatypeDouble
	DatatypeEnum
)

// Datatype 数据类型描述符的解析结果
type Datatype struct {
	Kind    DatatypeKind
	Options []string
}

// ParseDatatype 解析数据类型描述符：enum('a','b',...)、int、double，其余按文本
func ParseDatatype(descriptor string) Datatype {
	d := strings.ToLower(strings.TrimSpace(descriptor))
	switch {
	case strings.HasPrefix(d, "enum("):
		var options []string
		for _, m := range quotedLiteral.FindAllStringSubmatch(d, -1) {
			options = append(options, m[1])
		}
		return Datatype{Kind: DatatypeEnum, Options: options}
	case d == "int":
		return Datatype{Kind: DatatypeInt}
	case d == "double":
		return Datatype{Kind: DatatypeDouble}
	default:
		return Datatype{Kind: DatatypeText}
	}
}
