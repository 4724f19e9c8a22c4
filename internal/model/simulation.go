package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Level 职级（8 个标准职级，按资历从低到高）
type Level string

const (
	LevelA   Level = "A"
	LevelAC  Level = "AC"
	LevelC   Level = "C"
	LevelSrC Level = "SrC"
	LevelAM  Level = "AM"
	LevelM   Level = "M"
	LevelSrM Level = "SrM"
	LevelPiP Level = "PiP"
)

// AllLevels 全部标准职级（顺序即展示顺序）
var AllLevels = []Level{LevelA, LevelAC, LevelC, LevelSrC, LevelAM, LevelM, LevelSrM, LevelPiP}

// 角色名称
const (
	RoleConsultant  = "Consultant"
	RoleSales       = "Sales"
	RoleRecruitment = "Recruitment"
	RoleOperations  = "Operations"
)

// LeveledRoles 有职级的三个角色；Operations 无职级，永远不在其中
var LeveledRoles = []string{RoleConsultant, RoleSales, RoleRecruitment}

// TimeSeriesEntry 单月单坐标 (office, role, level) 的仿真记录。
// 由外部仿真引擎产出，只读。
type TimeSeriesEntry struct {
	Total         float64 `json:"total"`
	Recruited     float64 `json:"recruited"`
	Churned       float64 `json:"churned"`
	ProgressedIn  float64 `json:"progressed_in"`
	ProgressedOut float64 `json:"progressed_out"`
	Price         float64 `json:"price"`
	Salary        float64 `json:"salary"`
}

// RoleSeries 角色时间序列（标签联合）。
// Flat：无职级角色（Operations），一条月度序列；
// Leveled：有职级角色，按职级分组的月度序列。
// 不变式：同一角色在整个数据集内只会是其中一种形态。
type RoleSeries struct {
	Flat    []TimeSeriesEntry
	Leveled map[Level][]TimeSeriesEntry
}

// IsLeveled 是否为分职级形态
func (rs RoleSeries) IsLeveled() bool {
	return rs.Leveled != nil
}

// UnmarshalJSON 在边界处一次性解析线上的两种形态（数组 vs 对象）。
// 此后所有遍历只对联合体做模式匹配，不再做临时形态推断。
func (rs *RoleSeries) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '[':
		return json.Unmarshal(trimmed, &rs.Flat)
	case '{':
		rs.Leveled = make(map[Level][]TimeSeriesEntry)
		return json.Unmarshal(trimmed, &rs.Leveled)
	}
	return fmt.Errorf("unexpected role series shape: %.20s", string(trimmed))
}

// MarshalJSON 按原始线上形态输出
func (rs RoleSeries) MarshalJSON() ([]byte, error) {
	if rs.Leveled != nil {
		return json.Marshal(rs.Leveled)
	}
	if rs.Flat == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(rs.Flat)
}

// OfficeData 单办公室的仿真输出。
// Operations 可能以 levels 下的 Flat 条目出现，也可能出现在 operations 字段；
// 两者都接受，同时存在时 operations 字段优先。
type OfficeData struct {
	Levels     map[string]RoleSeries `json:"levels"`
	Operations []TimeSeriesEntry     `json:"operations,omitempty"`
}

// OperationsSeries 取 Operations 的月度序列（两个来源统一出口）
func (o OfficeData) OperationsSeries() RoleSeries {
	if o.Operations != nil {
		return RoleSeries{Flat: o.Operations}
	}
	if rs, ok := o.Levels[RoleOperations]; ok {
		return rs
	}
	return RoleSeries{}
}

// FinancialSummary 仿真引擎预先计算的年度财务汇总。
// EBITDA 相关字段可缺省（为 nil 时由利润推导）。
type FinancialSummary struct {
	NetSales         float64  `json:"netSales"`
	Profit           float64  `json:"profit"`
	EBITDA           *float64 `json:"ebitda,omitempty"`
	EBITDAMargin     *float64 `json:"ebitdaMargin,omitempty"`
	OtherCosts       float64  `json:"otherCosts"`
	CommissionEBITDA float64  `json:"commissionEbitda"`
}

// YearData 单年仿真输出
type YearData struct {
	Offices map[string]OfficeData `json:"offices"`
	Summary *FinancialSummary     `json:"summary,omitempty"`
}

// KPIOverrides 仿真引擎附带的指标覆盖值
type KPIOverrides struct {
	Financial map[string]float64 `json:"financial,omitempty"`
}

// SimulationResult 仿真引擎的完整输出（只读输入）
type SimulationResult struct {
	Years map[string]YearData `json:"years"`
	KPIs  *KPIOverrides       `json:"kpis,omitempty"`
}
