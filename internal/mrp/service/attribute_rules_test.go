package service

import "testing"

func TestParseRequiredRule(t *testing.T) {
	tests := []struct {
		name     string
		rule     string
		kind     RuleKind
		required bool
		subtypes int
	}{
		{"empty", "", RuleUnconditional, false, 0},
		{"yes", "yes", RuleUnconditional, true, 0},
		{"no", "no", RuleUnconditional, false, 0},
		{"yes with spaces", "  YES ", RuleUnconditional, true, 0},
		{"conditional", "required if subtype in 'SMD','SMT'", RuleConditional, false, 2},
		{"conditional without literals", "required sometimes", RuleUnconditional, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ParseRequiredRule(tt.rule)
			if r.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", r.Kind, tt.kind)
			}
			if r.Required != tt.required {
				t.Errorf("Required = %v, want %v", r.Required, tt.required)
			}
			if len(r.Subtypes) != tt.subtypes {
				t.Errorf("len(Subtypes) = %d, want %d", len(r.Subtypes), tt.subtypes)
			}
		})
	}
}

func TestRequiredRuleEvaluate(t *testing.T) {
	conditional := ParseRequiredRule("required if subtype in 'SMD','SMT'")

	tests := []struct {
		name     string
		rule     RequiredRule
		subtype  string
		required bool
		visible  bool
	}{
		{"conditional hit", conditional, "SMT", true, true},
		{"conditional hit case-insensitive", conditional, "smd", true, true},
		{"conditional miss hides", conditional, "THT", false, false},
		{"conditional no subtype", conditional, "", false, true},
		{"yes without subtype", ParseRequiredRule("yes"), "", true, true},
		{"yes with subtype", ParseRequiredRule("yes"), "THT", true, true},
		{"no with subtype", ParseRequiredRule("no"), "SMT", false, true},
		{"empty rule", ParseRequiredRule(""), "SMT", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			required, visible := tt.rule.Evaluate(tt.subtype)
			if required != tt.required || visible != tt.visible {
				t.Errorf("Evaluate(%q) = (%v, %v), want (%v, %v)",
					tt.subtype, required, visible, tt.required, tt.visible)
			}
		})
	}
}

func TestParseDatatype(t *testing.T) {
	enum := ParseDatatype("enum('0402','0603','0805')")
	if enum.Kind != DatatypeEnum {
		t.Fatalf("Kind = %v, want DatatypeEnum", enum.Kind)
	}
	if len(enum.Options) != 3 || enum.Options[0] != "0402" {
		t.Errorf("Options = %v, want [0402 0603 0805]", enum.Options)
	}

	if dt := ParseDatatype("int"); dt.Kind != DatatypeInt {
		t.Errorf("ParseDatatype(int).Kind = %v", dt.Kind)
	}
	if dt := ParseDatatype(" Double "); dt.Kind != DatatypeDouble {
		t.Errorf("ParseDatatype(Double).Kind = %v", dt.Kind)
	}
	if dt := ParseDatatype("varchar(64)"); dt.Kind != DatatypeText {
		t.Errorf("ParseDatatype(varchar).Kind = %v", dt.Kind)
	}
	if dt := ParseDatatype(""); dt.Kind != DatatypeText {
		t.Errorf("ParseDatatype(empty).Kind = %v", dt.Kind)
	}
}

func TestNormalizeAttributeCode(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Subtype", "subtype"},
		{"subtype_2", "subtype"},
		{"VOLTAGE_10", "voltage"},
		{"tolerance", "tolerance"},
		{"  subtype  ", "subtype"},
	}
	for _, tt := range tests {
		if got := NormalizeAttributeCode(tt.in); got != tt.want {
			t.Errorf("NormalizeAttributeCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateValue(t *testing.T) {
	svc := NewAttributeService(nil)

	enumDef := &AttributeDef{Code: "package", Datatype: ParseDatatype("enum('0402','0603')")}
	intDef := &AttributeDef{Code: "pins", Datatype: ParseDatatype("int"), Min: floatPtr(1), Max: floatPtr(100)}
	doubleDef := &AttributeDef{Code: "voltage", Datatype: ParseDatatype("double"), Max: floatPtr(50)}
	textDef := &AttributeDef{Code: "notes", Datatype: ParseDatatype("")}

	// 空值恒通过并归一化为空串
	for _, def := range []*AttributeDef{enumDef, intDef, doubleDef, textDef} {
		v, err := svc.ValidateValue(def, "   ")
		if err != nil || v != "" {
			t.Errorf("ValidateValue(%s, blank) = (%q, %v), want (\"\", nil)", def.Code, v, err)
		}
	}

	if _, err := svc.ValidateValue(enumDef, "0402"); err != nil {
		t.Errorf("enum valid value rejected: %v", err)
	}
	if _, err := svc.ValidateValue(enumDef, "0805"); err == nil {
		t.Error("enum invalid value accepted")
	}

	if _, err := svc.ValidateValue(intDef, "42"); err != nil {
		t.Errorf("int valid value rejected: %v", err)
	}
	if _, err := svc.ValidateValue(intDef, "4.2"); err == nil {
		t.Error("int accepted a float")
	}
	if _, err := svc.ValidateValue(intDef, "101"); err == nil {
		t.Error("int accepted value above max")
	}
	if _, err := svc.ValidateValue(intDef, "0"); err == nil {
		t.Error("int accepted value below min")
	}

	if _, err := svc.ValidateValue(doubleDef, "3.3"); err != nil {
		t.Errorf("double valid value rejected: %v", err)
	}
	if _, err := svc.ValidateValue(doubleDef, "abc"); err == nil {
		t.Error("double accepted a non-number")
	}
	if _, err := svc.ValidateValue(doubleDef, "51.0"); err == nil {
		t.Error("double accepted value above max")
	}

	if v, err := svc.ValidateValue(textDef, " anything goes "); err != nil || v != "anything goes" {
		t.Errorf("text value = (%q, %v), want trimmed passthrough", v, err)
	}
}

func TestAssertRequired(t *testing.T) {
	svc := NewAttributeService(nil)

	defs := []*AttributeDef{
		{ID: 1, Code: "subtype", Label: "subtype", Rule: ParseRequiredRule("yes")},
		{ID: 2, Code: "package", Label: "package", Rule: ParseRequiredRule("required if subtype in 'SMD'")},
		{ID: 3, Code: "notes", Label: "notes", Rule: ParseRequiredRule("")},
	}

	// 子类型命中：package 必填且缺失
	err := svc.AssertRequired(map[int]string{1: "SMD"}, defs)
	if err == nil {
		t.Fatal("expected missing required error")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if ve.Message != "缺少必填属性: package" {
		t.Errorf("message = %q", ve.Message)
	}

	// 子类型未命中：package 不必填
	if err := svc.AssertRequired(map[int]string{1: "THT"}, defs); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// 全部提交
	if err := svc.AssertRequired(map[int]string{1: "SMD", 2: "0402"}, defs); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// 子类型本身缺失（无条件yes）
	err = svc.AssertRequired(map[int]string{}, defs)
	if err == nil {
		t.Fatal("expected missing subtype error")
	}
}

func floatPtr(f float64) *float64 { return &f }
