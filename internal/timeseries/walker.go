package timeseries

import (
	"fteboard/internal/model"
)

// Field 可求和的月度字段
type Field string

const (
	FieldTotal         Field = "total"
	FieldRecruited     Field = "recruited"
	FieldChurned       Field = "churned"
	FieldProgressedIn  Field = "progressed_in"
	FieldProgressedOut Field = "progressed_out"
	FieldPrice         Field = "price"
	FieldSalary        Field = "salary"
)

func fieldValue(e model.TimeSeriesEntry, f Field) float64 {
	switch f {
	case FieldTotal:
		return e.Total
	case FieldRecruited:
		return e.Recruited
	case FieldChurned:
		return e.Churned
	case FieldProgressedIn:
		return e.ProgressedIn
	case FieldProgressedOut:
		return e.ProgressedOut
	case FieldPrice:
		return e.Price
	case FieldSalary:
		return e.Salary
	}
	return 0
}

// seriesFor 按联合体形态取出月度序列。
// level 为空串表示 Flat 形态；分支缺失返回 nil（调用方按空序列处理）。
func seriesFor(rs model.RoleSeries, level model.Level) []model.TimeSeriesEntry {
	if level == "" {
		return rs.Flat
	}
	if rs.Leveled == nil {
		return nil
	}
	return rs.Leveled[level]
}

// LatestTotal 取序列最后一个月的 total。
// 序列、角色或职级缺失时返回 0，不报错。
func LatestTotal(rs model.RoleSeries, level model.Level) float64 {
	entries := seriesFor(rs, level)
	if len(entries) == 0 {
		return 0
	}
	return entries[len(entries)-1].Total
}

// SumOverPeriod 对全部月份求指定字段之和；数据缺失返回 0
func SumOverPeriod(rs model.RoleSeries, level model.Level, field Field) float64 {
	var sum float64
	for _, e := range seriesFor(rs, level) {
		sum += fieldValue(e, field)
	}
	return sum
}

// RevenueOverPeriod 全期收入：Σ total×price
func RevenueOverPeriod(rs model.RoleSeries, level model.Level) float64 {
	var sum float64
	for _, e := range seriesFor(rs, level) {
		sum += e.Total * e.Price
	}
	return sum
}

// CostOverPeriod 全期工资成本：Σ total×salary
func CostOverPeriod(rs model.RoleSeries, level model.Level) float64 {
	var sum float64
	for _, e := range seriesFor(rs, level) {
		sum += e.Total * e.Salary
	}
	return sum
}

// Levels 返回 Leveled 形态下实际出现的职级；Flat 形态返回 nil
func Levels(rs model.RoleSeries) []model.Level {
	if rs.Leveled == nil {
		return nil
	}
	out := make([]model.Level, 0, len(rs.Leveled))
	for _, lv := range model.AllLevels {
		if _, ok := rs.Leveled[lv]; ok {
			out = append(out, lv)
		}
	}
	return out
}
