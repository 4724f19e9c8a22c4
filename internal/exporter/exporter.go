package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fteboard/internal/calculator"
	"fteboard/internal/diff"
	"fteboard/internal/model"
)

// Exporter 报表工作簿导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// BuildReportWorkbook 按报表组装工作簿：KPI 表 + 资历分布表，
// comparison 非 nil 时追加快照对比表。
func (e *Exporter) BuildReportWorkbook(report calculator.Report, comparison *diff.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	if err := e.writeKPISheet(f, report, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.writeSenioritySheet(f, report, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	if comparison != nil {
		if err := e.writeComparisonSheet(f, comparison, headerStyle); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func (e *Exporter) writeKPISheet(f *excelize.File, report calculator.Report, headerStyle int) error {
	sheet := "KPIs"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename kpi sheet failed: %w", err)
	}

	rows := [][]any{{"指标", "数值", "单位", "趋势"}}
	for _, kpi := range report.KPIs {
		rows = append(rows, []any{kpi.Title, kpi.Value, kpi.Unit, kpi.Trend})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	return f.SetRowStyle(sheet, 1, 1, headerStyle)
}

func (e *Exporter) writeSenioritySheet(f *excelize.File, report calculator.Report, headerStyle int) error {
	sheet := "Seniority"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create seniority sheet failed: %w", err)
	}

	header := []any{"办公室", "总 FTE", "占比"}
	for _, lv := range model.AllLevels {
		header = append(header, string(lv))
	}
	header = append(header, "Operations", "非计费占比")

	rows := [][]any{header}
	for _, office := range report.Offices {
		row := []any{office.Office, office.Total.Current, office.Total.Percentage}
		for _, lv := range model.AllLevels {
			row = append(row, office.PerLevel[lv].AbsoluteDisplay)
		}
		row = append(row, office.Operations.AbsoluteDisplay, office.NonDebitRatio.Percentage)
		rows = append(rows, row)
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	return f.SetRowStyle(sheet, 1, 1, headerStyle)
}

func (e *Exporter) writeComparisonSheet(f *excelize.File, result *diff.Result, headerStyle int) error {
	sheet := "Comparison"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create comparison sheet failed: %w", err)
	}

	rows := [][]any{{"角色", "职级", "变更类型", "基线 FTE", "对比 FTE", "FTE 变化", "工资变化"}}
	for _, ch := range result.Changes {
		level := ""
		if ch.Level != nil {
			level = string(*ch.Level)
		}
		rows = append(rows, []any{
			ch.Role, level, string(ch.ChangeType),
			ch.BaselineFTE, ch.ComparisonFTE, ch.FTEChange, ch.SalaryChange,
		})
	}

	rows = append(rows,
		[]any{},
		[]any{"FTE 总变化", result.Summary.TotalFTEChange},
		[]any{"工资总变化", result.Summary.TotalSalaryChange},
		[]any{"净变化占比", fmt.Sprintf("%.1f%%", result.Summary.NetChangePercentage)},
		[]any{"新增/移除/调整", fmt.Sprintf("%d / %d / %d",
			result.Summary.RolesAdded, result.Summary.RolesRemoved, result.Summary.RolesModified)},
	)
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	return f.SetRowStyle(sheet, 1, 1, headerStyle)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("bad cell coordinate: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("write cell %s failed: %w", cell, err)
			}
		}
	}
	return nil
}
