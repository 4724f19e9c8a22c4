package calculator

import (
	"testing"

	"fteboard/internal/model"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	journeys, err := NewJourneyTable(DefaultJourneys())
	if err != nil {
		t.Fatalf("build journey table: %v", err)
	}
	return NewCalculator(journeys, "kSEK")
}

var kpiOrder = []string{
	KPINetSales, KPIGrossMargin, KPIEBITDAMargin, KPITotalEBITDA,
	KPIStaffCostsPct, KPIOtherCosts, KPICommissionEBITDA,
}

func TestExtractFinancialKPIsAlwaysSeven(t *testing.T) {
	calc := newTestCalculator(t)

	cases := []struct {
		name string
		fin  YearFinancials
	}{
		{"zero input", YearFinancials{}},
		{"no summary", YearFinancials{Revenue: 1000, Costs: 600}},
		{"with summary", YearFinancials{Revenue: 1000, Costs: 600, Summary: &model.FinancialSummary{Profit: 300}}},
	}

	for _, tc := range cases {
		records := calc.ExtractFinancialKPIs(tc.fin, nil)
		if len(records) != 7 {
			t.Fatalf("%s: got %d records, want 7", tc.name, len(records))
		}
		for i, rec := range records {
			if rec.Title != kpiOrder[i] {
				t.Fatalf("%s: record %d title = %q, want %q", tc.name, i, rec.Title, kpiOrder[i])
			}
		}
	}
}

func TestExtractFinancialKPIsZeroInputNoPanic(t *testing.T) {
	calc := newTestCalculator(t)

	records := calc.ExtractFinancialKPIs(YearFinancials{}, &YearFinancials{})
	for _, rec := range records {
		if rec.RawValue != 0 {
			t.Fatalf("%s raw value = %v, want 0", rec.Title, rec.RawValue)
		}
	}
}

func TestExtractFinancialKPIsDerived(t *testing.T) {
	calc := newTestCalculator(t)

	fin := YearFinancials{Revenue: 1000, Costs: 600}
	records := calc.ExtractFinancialKPIs(fin, nil)

	byTitle := map[string]KPIRecord{}
	for _, rec := range records {
		byTitle[rec.Title] = rec
	}

	if got := byTitle[KPIGrossMargin].RawValue; got != 400 {
		t.Fatalf("gross margin = %v, want 400", got)
	}
	if got := byTitle[KPIStaffCostsPct].RawValue; got != 60 {
		t.Fatalf("staff costs pct = %v, want 60", got)
	}
	// 无汇总：EBITDA 退化为毛利，margin 为 profit/revenue*100
	if got := byTitle[KPITotalEBITDA].RawValue; got != 400 {
		t.Fatalf("total ebitda = %v, want 400", got)
	}
	if got := byTitle[KPIEBITDAMargin].RawValue; got != 40 {
		t.Fatalf("ebitda margin = %v, want 40", got)
	}
}

func TestExtractFinancialKPIsFromSummary(t *testing.T) {
	calc := newTestCalculator(t)

	ebitda := 250.0
	margin := 25.0
	fin := YearFinancials{
		Revenue: 1000,
		Costs:   600,
		Summary: &model.FinancialSummary{
			Profit:           300,
			EBITDA:           &ebitda,
			EBITDAMargin:     &margin,
			OtherCosts:       80,
			CommissionEBITDA: 30,
		},
	}
	records := calc.ExtractFinancialKPIs(fin, nil)

	byTitle := map[string]KPIRecord{}
	for _, rec := range records {
		byTitle[rec.Title] = rec
	}
	if got := byTitle[KPITotalEBITDA].RawValue; got != 250 {
		t.Fatalf("total ebitda = %v, want summary value 250", got)
	}
	if got := byTitle[KPIEBITDAMargin].RawValue; got != 25 {
		t.Fatalf("ebitda margin = %v, want summary value 25", got)
	}
	if got := byTitle[KPIOtherCosts].RawValue; got != 80 {
		t.Fatalf("other costs = %v, want 80", got)
	}
	if got := byTitle[KPICommissionEBITDA].RawValue; got != 30 {
		t.Fatalf("commission ebitda = %v, want 30", got)
	}
}

func TestExtractFinancialKPIsTrend(t *testing.T) {
	calc := newTestCalculator(t)

	fin := YearFinancials{Revenue: 1100, Costs: 600}
	base := YearFinancials{Revenue: 1000, Costs: 600}
	records := calc.ExtractFinancialKPIs(fin, &base)

	if got := records[0].Trend; got != "+10.0%" {
		t.Fatalf("net sales trend = %q, want +10.0%%", got)
	}

	noBase := calc.ExtractFinancialKPIs(fin, nil)
	if noBase[0].Trend != "" {
		t.Fatalf("trend without baseline = %q, want empty", noBase[0].Trend)
	}
}

func TestAggregateYearFinancialsOverrides(t *testing.T) {
	calc := newTestCalculator(t)

	result := model.SimulationResult{
		Years: map[string]model.YearData{
			"2026": {
				Offices: map[string]model.OfficeData{
					"Stockholm": {
						Levels: map[string]model.RoleSeries{
							model.RoleConsultant: {Leveled: map[model.Level][]model.TimeSeriesEntry{
								model.LevelC: {{Total: 10, Price: 100, Salary: 50}},
							}},
						},
					},
				},
			},
		},
		KPIs: &model.KPIOverrides{Financial: map[string]float64{"commissionEbitda": 12}},
	}

	fin := calc.AggregateYearFinancials(result, "2026")
	if fin.Revenue != 1000 || fin.Costs != 500 {
		t.Fatalf("revenue/costs = %v/%v, want 1000/500", fin.Revenue, fin.Costs)
	}
	if fin.Summary == nil || fin.Summary.CommissionEBITDA != 12 {
		t.Fatalf("kpi override not applied: %+v", fin.Summary)
	}

	empty := calc.AggregateYearFinancials(result, "2031")
	if empty.Revenue != 0 || empty.Costs != 0 {
		t.Fatalf("missing year should aggregate to zero, got %+v", empty)
	}
}
