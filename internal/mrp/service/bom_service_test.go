package service

import "testing"

func line(assembly, component, seq string, qtyPer, available float64) BOMLine {
	return BOMLine{
		Assembly:     assembly,
		Component:    component,
		Sequence:     seq,
		QuantityPer:  &qtyPer,
		AvailableQty: available,
	}
}

func TestSortLinesNumericAwareSequence(t *testing.T) {
	lines := []BOMLine{
		line("A1", "C1", "10", 1, 0),
		line("A1", "C2", "2", 1, 0),
		line("A1", "C3", "abc", 1, 0),
		line("A1", "C4", "1", 1, 0),
	}
	sortLines(lines)

	want := []string{"1", "2", "10", "abc"}
	for i, w := range want {
		if lines[i].Sequence != w {
			t.Fatalf("position %d sequence = %q, want %q", i, lines[i].Sequence, w)
		}
	}
}

func TestSortLinesGroupsByAssembly(t *testing.T) {
	lines := []BOMLine{
		line("B2", "C1", "1", 1, 0),
		line("A1", "C9", "5", 1, 0),
		line("A1", "C9", "3", 1, 0),
		{Assembly: "A1", Component: "C2", Sequence: "3"},
	}
	sortLines(lines)

	if lines[0].Assembly != "A1" || lines[3].Assembly != "B2" {
		t.Fatalf("assemblies not grouped: %v %v", lines[0].Assembly, lines[3].Assembly)
	}
	// 同序号按元件号次序
	if lines[0].Component != "C2" || lines[1].Component != "C9" {
		t.Errorf("equal-sequence tie not broken by component: %s, %s", lines[0].Component, lines[1].Component)
	}
}

func TestAssembliesAvailable(t *testing.T) {
	tests := []struct {
		name  string
		lines []BOMLine
		want  int64
	}{
		{"empty bom", nil, 0},
		{
			"limited by scarcest component",
			[]BOMLine{
				line("A", "C1", "1", 2, 10),
				line("A", "C2", "2", 1, 3),
			},
			3,
		},
		{
			"zero quantity per blocks build",
			[]BOMLine{
				line("A", "C1", "1", 2, 10),
				line("A", "C2", "2", 0, 5),
			},
			0,
		},
		{
			"nil quantity per blocks build",
			[]BOMLine{
				{Assembly: "A", Component: "C1", AvailableQty: 10},
			},
			0,
		},
		{
			"fractional quantity per floors",
			[]BOMLine{
				line("A", "C1", "1", 0.3, 1),
			},
			3,
		},
		{
			"no stock",
			[]BOMLine{
				line("A", "C1", "1", 1, 0),
			},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssembliesAvailable(tt.lines); got != tt.want {
				t.Errorf("AssembliesAvailable() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestShortageForAssemblies(t *testing.T) {
	lines := []BOMLine{
		line("A", "C1", "1", 2, 10), // 需 20，缺 10
		line("A", "C2", "2", 1, 50), // 需 10，不缺
		line("A", "C3", "3", 0, 0),  // 单耗非正，跳过
	}

	shortages := ShortageForAssemblies(lines, 10)
	if len(shortages) != 2 {
		t.Fatalf("len(shortages) = %d, want 2", len(shortages))
	}

	if shortages[0].Component != "C1" || shortages[0].Required != 20 || shortages[0].Shortage != 10 {
		t.Errorf("C1 = %+v, want required 20 shortage 10", shortages[0])
	}
	if shortages[1].Component != "C2" || shortages[1].Shortage != 0 {
		t.Errorf("C2 = %+v, want zero shortage", shortages[1])
	}
}

func TestSequenceSortKey(t *testing.T) {
	if sequenceSortKey("15") != 15 {
		t.Error("numeric sequence should parse")
	}
	if sequenceSortKey(" 7 ") != 7 {
		t.Error("padded numeric sequence should parse")
	}
	if sequenceSortKey("A1") != nonNumericSequence {
		t.Error("non-numeric sequence should use sentinel")
	}
	if sequenceSortKey("") != nonNumericSequence {
		t.Error("empty sequence should use sentinel")
	}
}
