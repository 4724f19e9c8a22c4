package calculator

import (
	"sort"

	"fteboard/internal/model"
)

// Calculator 聚合与对比引擎。
// 纯内存计算：相同输入必然产生逐字节相同的输出（面板缓存依赖这一点）。
type Calculator struct {
	fmt      *Formatter
	cmp      *Comparator
	journeys *JourneyTable
	currency string
}

// NewCalculator 创建引擎；journeys 为外部提供的职级分类表
func NewCalculator(journeys *JourneyTable, currency string) *Calculator {
	f := NewFormatter()
	return &Calculator{
		fmt:      f,
		cmp:      NewComparator(f),
		journeys: journeys,
		currency: currency,
	}
}

// Comparator 暴露基线比较器（导出层需要相同的取整/符号约定）
func (c *Calculator) Comparator() *Comparator {
	return c.cmp
}

// Formatter 暴露格式化器
func (c *Calculator) Formatter() *Formatter {
	return c.fmt
}

// BaselineOffice 静态基线办公室配置。
// 与当前聚合暴露相同的 per-role/per-level 形状，保证相减有定义。
type BaselineOffice struct {
	Name  string                  `json:"name"`
	Roles map[string]BaselineRole `json:"roles"`
}

// BaselineRole 单角色基线：无职级角色只有 Total，有职级角色按职级给值
type BaselineRole struct {
	Total  *float64                `json:"total,omitempty"`
	Levels map[model.Level]float64 `json:"levels,omitempty"`
}

// BaselineAggregate 把静态配置折算成办公室聚合（收入/成本无基线，保持 0）
func BaselineAggregate(b BaselineOffice) OfficeAggregate {
	agg := OfficeAggregate{
		OfficeName:  b.Name,
		PerLevelFTE: make(map[model.Level]float64, len(model.AllLevels)),
	}
	for _, lv := range model.AllLevels {
		agg.PerLevelFTE[lv] = 0
	}

	for role, rc := range b.Roles {
		if role == model.RoleOperations {
			if rc.Total != nil {
				agg.OperationsFTE = *rc.Total
			}
			continue
		}
		var roleFTE float64
		for lv, fte := range rc.Levels {
			agg.PerLevelFTE[lv] += fte
			roleFTE += fte
		}
		if rc.Total != nil && len(rc.Levels) == 0 {
			roleFTE = *rc.Total
		}
		switch role {
		case model.RoleConsultant:
			agg.ConsultantFTE = roleFTE
		case model.RoleSales:
			agg.SalesFTE = roleFTE
		case model.RoleRecruitment:
			agg.RecruitmentFTE = roleFTE
		}
	}
	return agg
}

// Report 单年完整报表：财务 KPI + 各办公室资历分布
type Report struct {
	Year    string            `json:"year"`
	KPIs    []KPIRecord       `json:"kpis"`
	Offices []OfficeSeniority `json:"offices"`
}

// ReportOptions 报表参数。
// BaselineYear 非空且存在于仿真结果中时以该年度作基线（同名办公室逐一对齐）；
// 否则回退到 BaselineOffices 静态配置；两者都缺省时报表不带基线。
type ReportOptions struct {
	Year            string
	BaselineYear    string
	BaselineOffices []BaselineOffice
}

// BuildReport 组装单年报表；办公室按名称排序保证输出确定
func (c *Calculator) BuildReport(result model.SimulationResult, opts ReportOptions) Report {
	report := Report{Year: opts.Year}

	fin := c.AggregateYearFinancials(result, opts.Year)

	var baseFin *YearFinancials
	var baseOffices map[string]OfficeAggregate
	if opts.BaselineYear != "" {
		if baseYear, ok := result.Years[opts.BaselineYear]; ok {
			bf := c.AggregateYearFinancials(result, opts.BaselineYear)
			baseFin = &bf
			baseOffices = make(map[string]OfficeAggregate, len(baseYear.Offices))
			for name, office := range baseYear.Offices {
				baseOffices[name] = c.AggregateOffice(name, office)
			}
		}
	}
	if baseOffices == nil && len(opts.BaselineOffices) > 0 {
		baseOffices = make(map[string]OfficeAggregate, len(opts.BaselineOffices))
		for _, b := range opts.BaselineOffices {
			baseOffices[b.Name] = BaselineAggregate(b)
		}
	}

	report.KPIs = c.ExtractFinancialKPIs(fin, baseFin)

	yd, ok := result.Years[opts.Year]
	if !ok {
		report.Offices = []OfficeSeniority{}
		return report
	}

	names := make([]string, 0, len(yd.Offices))
	for name := range yd.Offices {
		names = append(names, name)
	}
	sort.Strings(names)

	report.Offices = make([]OfficeSeniority, 0, len(names))
	for _, name := range names {
		var baseline *OfficeAggregate
		if agg, ok := baseOffices[name]; ok {
			baseline = &agg
		}
		report.Offices = append(report.Offices, c.OfficeSeniority(name, yd.Offices[name], baseline))
	}
	return report
}
