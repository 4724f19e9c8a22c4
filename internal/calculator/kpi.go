package calculator

import (
	"fmt"

	"fteboard/internal/model"
)

// KPIRecord 固定模式的财务指标记录
type KPIRecord struct {
	Title    string  `json:"title"`
	Value    string  `json:"value"`
	Unit     string  `json:"unit"`
	Trend    string  `json:"trend"`
	RawValue float64 `json:"rawValue"`
}

// KPI 标题（顺序即输出顺序，面板依赖该契约）
const (
	KPINetSales         = "Net Sales"
	KPIGrossMargin      = "Gross Margin"
	KPIEBITDAMargin     = "EBITDA"
	KPITotalEBITDA      = "Total EBITDA"
	KPIStaffCostsPct    = "Staff Costs"
	KPIOtherCosts       = "Other Costs"
	KPICommissionEBITDA = "Commission EBITDA"
)

// YearFinancials 单年聚合后的财务输入
type YearFinancials struct {
	Revenue float64
	Costs   float64
	Summary *model.FinancialSummary
}

// AggregateYearFinancials 对一年所有办公室累计收入/成本，并带上引擎汇总。
// kpis.financial 中的同名值覆盖汇总字段（引擎侧的最终口径优先）。
func (c *Calculator) AggregateYearFinancials(result model.SimulationResult, year string) YearFinancials {
	fin := YearFinancials{}
	yd, ok := result.Years[year]
	if !ok {
		return fin
	}

	for name, office := range yd.Offices {
		agg := c.AggregateOffice(name, office)
		fin.Revenue += agg.Revenue
		fin.Costs += agg.Cost
	}
	fin.Summary = yd.Summary

	if result.KPIs != nil && len(result.KPIs.Financial) > 0 {
		merged := model.FinancialSummary{}
		if fin.Summary != nil {
			merged = *fin.Summary
		}
		if v, ok := result.KPIs.Financial["ebitda"]; ok {
			merged.EBITDA = &v
		}
		if v, ok := result.KPIs.Financial["ebitdaMargin"]; ok {
			merged.EBITDAMargin = &v
		}
		if v, ok := result.KPIs.Financial["commissionEbitda"]; ok {
			merged.CommissionEBITDA = v
		}
		if v, ok := result.KPIs.Financial["otherCosts"]; ok {
			merged.OtherCosts = v
		}
		fin.Summary = &merged
	}
	return fin
}

// ebitda 取引擎汇总的 EBITDA；缺省时用利润推导。
// 利润缺省时退化为毛利（revenue − costs）。
func (fin YearFinancials) ebitda() (value, margin float64) {
	profit := fin.Revenue - fin.Costs
	if fin.Summary != nil && fin.Summary.Profit != 0 {
		profit = fin.Summary.Profit
	}

	value = profit
	if fin.Summary != nil && fin.Summary.EBITDA != nil {
		value = *fin.Summary.EBITDA
	}

	if fin.Summary != nil && fin.Summary.EBITDAMargin != nil {
		margin = *fin.Summary.EBITDAMargin
	} else if fin.Revenue > 0 {
		margin = profit / fin.Revenue * 100
	}
	return value, margin
}

// ExtractFinancialKPIs 提取 7 项固定财务指标。
// 无论输入是否完整，始终按固定顺序返回恰好 7 条记录——
// 面板的卡片布局依赖条数与顺序稳定。baseline 为 nil 时 trend 为空串。
func (c *Calculator) ExtractFinancialKPIs(fin YearFinancials, baseline *YearFinancials) []KPIRecord {
	grossMargin := fin.Revenue - fin.Costs
	staffCostsPct := 0.0
	if fin.Revenue > 0 {
		staffCostsPct = fin.Costs / fin.Revenue * 100
	}
	ebitdaValue, ebitdaMargin := fin.ebitda()

	otherCosts := 0.0
	commission := 0.0
	if fin.Summary != nil {
		otherCosts = fin.Summary.OtherCosts
		commission = fin.Summary.CommissionEBITDA
	}

	var baseVals map[string]float64
	if baseline != nil {
		bGross := baseline.Revenue - baseline.Costs
		bStaff := 0.0
		if baseline.Revenue > 0 {
			bStaff = baseline.Costs / baseline.Revenue * 100
		}
		bEBITDA, bMargin := baseline.ebitda()
		bOther := 0.0
		bCommission := 0.0
		if baseline.Summary != nil {
			bOther = baseline.Summary.OtherCosts
			bCommission = baseline.Summary.CommissionEBITDA
		}
		baseVals = map[string]float64{
			KPINetSales:         baseline.Revenue,
			KPIGrossMargin:      bGross,
			KPIEBITDAMargin:     bMargin,
			KPITotalEBITDA:      bEBITDA,
			KPIStaffCostsPct:    bStaff,
			KPIOtherCosts:       bOther,
			KPICommissionEBITDA: bCommission,
		}
	}

	trend := func(title string, current float64) string {
		if baseVals == nil {
			return ""
		}
		return c.cmp.FormatGrowthRate(current, baseVals[title])
	}

	return []KPIRecord{
		{Title: KPINetSales, Value: fmt.Sprintf("%.0f", fin.Revenue), Unit: c.currency, Trend: trend(KPINetSales, fin.Revenue), RawValue: fin.Revenue},
		{Title: KPIGrossMargin, Value: fmt.Sprintf("%.0f", grossMargin), Unit: c.currency, Trend: trend(KPIGrossMargin, grossMargin), RawValue: grossMargin},
		{Title: KPIEBITDAMargin, Value: c.fmt.Percent(ebitdaMargin), Unit: "%", Trend: trend(KPIEBITDAMargin, ebitdaMargin), RawValue: ebitdaMargin},
		{Title: KPITotalEBITDA, Value: fmt.Sprintf("%.0f", ebitdaValue), Unit: c.currency, Trend: trend(KPITotalEBITDA, ebitdaValue), RawValue: ebitdaValue},
		{Title: KPIStaffCostsPct, Value: c.fmt.Percent(staffCostsPct), Unit: "%", Trend: trend(KPIStaffCostsPct, staffCostsPct), RawValue: staffCostsPct},
		{Title: KPIOtherCosts, Value: fmt.Sprintf("%.0f", otherCosts), Unit: c.currency, Trend: trend(KPIOtherCosts, otherCosts), RawValue: otherCosts},
		{Title: KPICommissionEBITDA, Value: fmt.Sprintf("%.0f", commission), Unit: c.currency, Trend: trend(KPICommissionEBITDA, commission), RawValue: commission},
	}
}
