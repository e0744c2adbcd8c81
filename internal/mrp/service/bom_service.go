package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mmtecheng/mmrp/internal/mrp/repository"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// BOMService BOM解析：单个装配件或全局清单、可装配数量与缺料计算、导出
type BOMService struct {
	bomRepo *repository.BOMRepository
}

func NewBOMService(bomRepo *repository.BOMRepository) *BOMService {
	return &BOMService{bomRepo: bomRepo}
}

// BOMLine 解析后的BOM行
type BOMLine struct {
	Assembly             string   `json:"assembly"`
	AssemblyDescription  string   `json:"assembly_description"`
	Component            string   `json:"component"`
	ComponentDescription string   `json:"component_description"`
	Sequence             string   `json:"sequence"`
	QuantityPer          *float64 `json:"quantity_per"`
	EffectiveDate        *string  `json:"effective_date"`
	ObsoleteDate         *string  `json:"obsolete_date"`
	Notes                string   `json:"notes"`
	Location             string   `json:"location"`
	AvailableQty         float64  `json:"available_qty"`
}

// BOMParams BOM查询条件。Limit <= 0 表示使用HTTP层默认上限前的全量结果。
type BOMParams struct {
	Assembly string
	Limit    int
}

// sequenceSortKey 数值感知的序号排序键：数字序号按数值排，
// 非数字序号排在所有数字之后（大哨兵值）。
const nonNumericSequence = int64(math.MaxInt32)

func sequenceSortKey(seq string) int64 {
	s := strings.TrimSpace(seq)
	if s == "" {
		return nonNumericSequence
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return nonNumericSequence
	}
	return n
}

// sortLines 装配件升序 → 序号（数值感知）→ 元件号 → 序号原文，排序完全确定
func sortLines(lines []BOMLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Assembly != lines[j].Assembly {
			return lines[i].Assembly < lines[j].Assembly
		}
		ki, kj := sequenceSortKey(lines[i].Sequence), sequenceSortKey(lines[j].Sequence)
		if ki != kj {
			return ki < kj
		}
		if lines[i].Component != lines[j].Component {
			return lines[i].Component < lines[j].Component
		}
		return lines[i].Sequence < lines[j].Sequence
	})
}

func isoDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// BillOfMaterials 查询并排序BOM行。assembly 非空时精确限定装配件。
func (s *BOMService) BillOfMaterials(ctx context.Context, params BOMParams) ([]BOMLine, error) {
	rows, err := s.bomRepo.List(ctx, strings.TrimSpace(params.Assembly))
	if err != nil {
		return nil, fmt.Errorf("list bom lines: %w", err)
	}

	lines := make([]BOMLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, BOMLine{
			Assembly:             row.Assembly,
			AssemblyDescription:  row.AssemblyDescription,
			Component:            row.Component,
			ComponentDescription: row.ComponentDescription,
			Sequence:             row.Sequence,
			QuantityPer:          row.QuantityPer,
			EffectiveDate:        isoDate(row.EffectiveDate),
			ObsoleteDate:         isoDate(row.ObsoleteDate),
			Notes:                row.Notes,
			Location:             row.Location,
			AvailableQty:         row.AvailableQty,
		})
	}

	sortLines(lines)

	if params.Limit > 0 && len(lines) > params.Limit {
		lines = lines[:params.Limit]
	}
	return lines, nil
}

// AssembliesAvailable 按可用库存可装配的整套数量：
// floor(min(可用量/单耗))。任一行单耗非正或非有限值时整体为零，无行时为零。
func AssembliesAvailable(lines []BOMLine) int64 {
	if len(lines) == 0 {
		return 0
	}
	var best int64 = -1
	for _, line := range lines {
		qp := line.QuantityPer
		if qp == nil || *qp <= 0 || math.IsNaN(*qp) || math.IsInf(*qp, 0) {
			return 0
		}
		builds := decimal.NewFromFloat(line.AvailableQty).
			Div(decimal.NewFromFloat(*qp)).
			Floor().
			IntPart()
		if best < 0 || builds < best {
			best = builds
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// ComponentShortage 装配N套时单个元件的缺料
type ComponentShortage struct {
	Component    string  `json:"component"`
	Required     float64 `json:"required"`
	AvailableQty float64 `json:"available_qty"`
	Shortage     float64 `json:"shortage"`
}

// ShortageForAssemblies 装配N套的逐元件缺料：max(0, 单耗×N − 可用量)。
// 单耗非正的行视为不消耗，不参与计算。
func ShortageForAssemblies(lines []BOMLine, n int64) []ComponentShortage {
	shortages := make([]ComponentShortage, 0, len(lines))
	count := decimal.NewFromInt(n)
	for _, line := range lines {
		qp := line.QuantityPer
		if qp == nil || *qp <= 0 || math.IsNaN(*qp) || math.IsInf(*qp, 0) {
			continue
		}
		required := decimal.NewFromFloat(*qp).Mul(count)
		shortage := required.Sub(decimal.NewFromFloat(line.AvailableQty))
		if shortage.IsNegative() {
			shortage = decimal.Zero
		}
		shortages = append(shortages, ComponentShortage{
			Component:    line.Component,
			Required:     required.InexactFloat64(),
			AvailableQty: line.AvailableQty,
			Shortage:     shortage.InexactFloat64(),
		})
	}
	return shortages
}

// BuildPlan 某装配件的可装配数量与按目标套数的缺料清单
type BuildPlan struct {
	Assembly            string              `json:"assembly"`
	AssembliesAvailable int64               `json:"assemblies_available"`
	TargetCount         int64               `json:"target_count"`
	Shortages           []ComponentShortage `json:"shortages"`
	Lines               []BOMLine           `json:"lines"`
}

// Build 计算某装配件的装配能力
func (s *BOMService) Build(ctx context.Context, assembly string, targetCount int64) (*BuildPlan, error) {
	assembly = strings.TrimSpace(assembly)
	if assembly == "" {
		return nil, fmt.Errorf("%w: 必须指定装配件零件号", ErrInvalidInput)
	}
	if targetCount <= 0 {
		targetCount = 1
	}

	lines, err := s.BillOfMaterials(ctx, BOMParams{Assembly: assembly})
	if err != nil {
		return nil, err
	}

	return &BuildPlan{
		Assembly:            assembly,
		AssembliesAvailable: AssembliesAvailable(lines),
		TargetCount:         targetCount,
		Shortages:           ShortageForAssemblies(lines, targetCount),
		Lines:               lines,
	}, nil
}

var bomExportHeaders = []string{
	"装配件", "装配件描述", "序号", "元件", "元件描述",
	"单耗", "库位", "可用量", "生效日期", "失效日期", "备注",
}

// ExportBOM 导出BOM为xlsx。assembly 为空时导出全局清单。
func (s *BOMService) ExportBOM(ctx context.Context, assembly string) (*excelize.File, string, error) {
	lines, err := s.BillOfMaterials(ctx, BOMParams{Assembly: assembly})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "BOM"
	f.SetSheetName("Sheet1", sheet)

	// 表头样式: 加粗
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range bomExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, line := range lines {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), line.Assembly)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), line.AssemblyDescription)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), line.Sequence)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), line.Component)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), line.ComponentDescription)
		if line.QuantityPer != nil {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), *line.QuantityPer)
		}
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), line.Location)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), line.AvailableQty)
		if line.EffectiveDate != nil {
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), *line.EffectiveDate)
		}
		if line.ObsoleteDate != nil {
			f.SetCellValue(sheet, fmt.Sprintf("J%d", row), *line.ObsoleteDate)
		}
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), line.Notes)
	}

	colWidths := []float64{16, 24, 8, 16, 24, 8, 16, 10, 12, 12, 24}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	name := assembly
	if name == "" {
		name = "all"
	}
	filename := fmt.Sprintf("BOM_%s_%s.xlsx", name, time.Now().Format("20060102"))
	return f, filename, nil
}
