package calculator

import (
	"math"

	"fteboard/internal/model"
	"fteboard/internal/timeseries"
)

// OfficeAggregate 单办公室的派生聚合（每次请求重算，不持久化）。
// 不变式：sum(PerLevelFTE) + OperationsFTE == TotalFTE()。
type OfficeAggregate struct {
	OfficeName     string                  `json:"officeName"`
	PerLevelFTE    map[model.Level]float64 `json:"perLevelFte"`
	OperationsFTE  float64                 `json:"operationsFte"`
	ConsultantFTE  float64                 `json:"consultantFte"`
	SalesFTE       float64                 `json:"salesFte"`
	RecruitmentFTE float64                 `json:"recruitmentFte"`
	Revenue        float64                 `json:"revenue"`
	Cost           float64                 `json:"cost"`
}

// TotalFTE 办公室总 FTE
func (a OfficeAggregate) TotalFTE() float64 {
	var sum float64
	for _, v := range a.PerLevelFTE {
		sum += v
	}
	return sum + a.OperationsFTE
}

// AggregateOffice 从办公室原始序列派生聚合。
// FTE 取各序列最后一个月的 total；收入/成本按全期累计。
func (c *Calculator) AggregateOffice(name string, office model.OfficeData) OfficeAggregate {
	agg := OfficeAggregate{
		OfficeName:  name,
		PerLevelFTE: make(map[model.Level]float64, len(model.AllLevels)),
	}
	for _, lv := range model.AllLevels {
		agg.PerLevelFTE[lv] = 0
	}

	for _, role := range model.LeveledRoles {
		rs, ok := office.Levels[role]
		if !ok {
			continue
		}
		var roleFTE float64
		for _, lv := range model.AllLevels {
			fte := timeseries.LatestTotal(rs, lv)
			agg.PerLevelFTE[lv] += fte
			roleFTE += fte
			agg.Revenue += timeseries.RevenueOverPeriod(rs, lv)
			agg.Cost += timeseries.CostOverPeriod(rs, lv)
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

	ops := office.OperationsSeries()
	agg.OperationsFTE = timeseries.LatestTotal(ops, "")
	agg.Revenue += timeseries.RevenueOverPeriod(ops, "")
	agg.Cost += timeseries.CostOverPeriod(ops, "")

	return agg
}

// LevelCount 目标职级的 FTE：恰好对 Consultant/Sales/Recruitment 三个角色求和。
// Operations 无职级，永远不计入任何职级。
func (c *Calculator) LevelCount(office model.OfficeData, target model.Level) float64 {
	var sum float64
	for _, role := range model.LeveledRoles {
		rs, ok := office.Levels[role]
		if !ok {
			continue
		}
		sum += timeseries.LatestTotal(rs, target)
	}
	return sum
}

// JourneyTotals 按分类表对 LevelCount 分桶求和
func (c *Calculator) JourneyTotals(office model.OfficeData) map[string]float64 {
	totals := make(map[string]float64, len(c.journeys.Journeys()))
	for _, def := range c.journeys.Journeys() {
		var sum float64
		for _, lv := range def.Levels {
			sum += c.LevelCount(office, lv)
		}
		totals[def.Name] = sum
	}
	return totals
}

// NonDebitRatio 非计费人员占比：(Sales+Recruitment+Operations)/总 FTE×100，
// 四舍五入到整数；总 FTE 为 0 时返回 0。
func NonDebitRatio(agg OfficeAggregate) float64 {
	total := agg.TotalFTE()
	if total == 0 {
		return 0
	}
	return math.Round((agg.SalesFTE + agg.RecruitmentFTE + agg.OperationsFTE) / total * 100)
}

// SeniorityDetail 面向面板的资历明细记录
type SeniorityDetail struct {
	Percentage      string  `json:"percentage"`
	Current         float64 `json:"current"`
	Baseline        float64 `json:"baseline"`
	Absolute        float64 `json:"absolute"`
	AbsoluteDisplay string  `json:"absoluteDisplay"`
}

// OfficeSeniority 单办公室的资历分布输出
type OfficeSeniority struct {
	Office        string                          `json:"office"`
	Total         SeniorityDetail                 `json:"total"`
	PerLevel      map[model.Level]SeniorityDetail `json:"perLevel"`
	Journeys      map[string]SeniorityDetail      `json:"journeys"`
	Operations    SeniorityDetail                 `json:"operations"`
	NonDebitRatio SeniorityDetail                 `json:"nonDebitRatio"`
}

// OfficeSeniority 计算单办公室资历分布；baseline 可为 nil（无基线）
func (c *Calculator) OfficeSeniority(name string, office model.OfficeData, baseline *OfficeAggregate) OfficeSeniority {
	agg := c.AggregateOffice(name, office)
	total := agg.TotalFTE()

	out := OfficeSeniority{
		Office:   name,
		PerLevel: make(map[model.Level]SeniorityDetail, len(model.AllLevels)),
		Journeys: make(map[string]SeniorityDetail, len(c.journeys.Journeys())),
	}

	out.Total = c.seniorityEntry(total, baseline, total, func(b OfficeAggregate) float64 { return b.TotalFTE() })
	for _, lv := range model.AllLevels {
		lv := lv
		out.PerLevel[lv] = c.seniorityEntry(agg.PerLevelFTE[lv], baseline, total, func(b OfficeAggregate) float64 { return b.PerLevelFTE[lv] })
	}
	for _, def := range c.journeys.Journeys() {
		def := def
		var cur float64
		for _, lv := range def.Levels {
			cur += agg.PerLevelFTE[lv]
		}
		out.Journeys[def.Name] = c.seniorityEntry(cur, baseline, total, func(b OfficeAggregate) float64 {
			var s float64
			for _, lv := range def.Levels {
				s += b.PerLevelFTE[lv]
			}
			return s
		})
	}
	out.Operations = c.seniorityEntry(agg.OperationsFTE, baseline, total, func(b OfficeAggregate) float64 { return b.OperationsFTE })

	ratio := NonDebitRatio(agg)
	if baseline == nil {
		out.NonDebitRatio = SeniorityDetail{
			Percentage:      c.fmt.Percent(ratio),
			Current:         ratio,
			AbsoluteDisplay: c.cmp.FormatWithDelta(ratio, nil, true),
		}
	} else {
		baseRatio := NonDebitRatio(*baseline)
		out.NonDebitRatio = SeniorityDetail{
			Percentage:      c.fmt.Percent(ratio),
			Current:         ratio,
			Baseline:        baseRatio,
			Absolute:        ratio - baseRatio,
			AbsoluteDisplay: c.cmp.FormatWithDelta(ratio, &baseRatio, true),
		}
	}

	return out
}

// seniorityEntry 一条 FTE 明细；基线缺失时展示串不带括号
func (c *Calculator) seniorityEntry(current float64, baseline *OfficeAggregate, total float64, pick func(OfficeAggregate) float64) SeniorityDetail {
	pct := 0.0
	if total > 0 {
		pct = current / total * 100
	}
	d := SeniorityDetail{
		Percentage: c.fmt.Percent(pct),
		Current:    current,
	}
	if baseline == nil {
		d.AbsoluteDisplay = c.cmp.FormatWithDelta(current, nil, false)
		return d
	}
	b := pick(*baseline)
	d.Baseline = b
	d.Absolute = current - b
	d.AbsoluteDisplay = c.cmp.FormatWithDelta(current, &b, false)
	return d
}
