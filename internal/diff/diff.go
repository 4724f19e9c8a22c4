package diff

import (
	"math"
	"sort"

	"fteboard/internal/model"
)

// ChangeType 变更类型
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeRemoved  ChangeType = "removed"
	ChangeModified ChangeType = "modified"
)

// WorkforceChange 单个 role+level 坐标的人员变更
type WorkforceChange struct {
	Role          string       `json:"role"`
	Level         *model.Level `json:"level"`
	ChangeType    ChangeType   `json:"changeType"`
	BaselineFTE   float64      `json:"baselineFte"`
	ComparisonFTE float64      `json:"comparisonFte"`
	FTEChange     float64      `json:"fteChange"`
	SalaryChange  float64      `json:"salaryChange"`
}

// Summary 对比汇总。
// FTE/工资总变化取自两份快照各自的元数据，与逐行变更独立计算。
type Summary struct {
	TotalFTEChange      float64 `json:"total_fte_change"`
	TotalSalaryChange   float64 `json:"total_salary_change"`
	RolesAdded          int     `json:"roles_added"`
	RolesRemoved        int     `json:"roles_removed"`
	RolesModified       int     `json:"roles_modified"`
	NetChangePercentage float64 `json:"net_change_percentage"`
}

// Result 快照对比结果
type Result struct {
	Changes []WorkforceChange `json:"changes"`
	Summary Summary           `json:"summary"`
}

type lineAccum struct {
	role   string
	level  *model.Level
	fte    float64
	salary float64
}

func lineKey(role string, level *model.Level) string {
	if level == nil {
		return role
	}
	return role + "-" + string(*level)
}

// accumulate 把快照折成 key -> {fte, salary}；同 key 多行时 FTE 累加、工资取末行
func accumulate(snap *model.PopulationSnapshot) map[string]lineAccum {
	out := make(map[string]lineAccum, len(snap.Workforce))
	for _, line := range snap.Workforce {
		key := lineKey(line.Role, line.Level)
		acc := out[key]
		acc.role = line.Role
		acc.level = line.Level
		acc.fte += line.FTE
		acc.salary = line.Salary
		out[key] = acc
	}
	return out
}

// Compare 对比两份快照，产出分类变更列表与汇总。
//
// 收录规则（与既有面板逐项一致）：仅当 fteChange != 0 或类型不是
// modified 时才输出该行——FTE 不变而工资变化的行不会出现在变更列表里，
// 其成本影响只体现在汇总的 total_salary_change。
func Compare(baseline, comparison *model.PopulationSnapshot) Result {
	baseLines := accumulate(baseline)
	cmpLines := accumulate(comparison)

	keys := make([]string, 0, len(baseLines)+len(cmpLines))
	for key := range baseLines {
		keys = append(keys, key)
	}
	for key := range cmpLines {
		if _, seen := baseLines[key]; !seen {
			keys = append(keys, key)
		}
	}

	changes := make([]WorkforceChange, 0, len(keys))
	for _, key := range keys {
		base := baseLines[key]
		cmp := cmpLines[key]

		role := base.role
		level := base.level
		if role == "" {
			role = cmp.role
			level = cmp.level
		}

		changeType := ChangeModified
		switch {
		case base.fte == 0 && cmp.fte > 0:
			changeType = ChangeAdded
		case cmp.fte == 0:
			changeType = ChangeRemoved
		}

		fteChange := cmp.fte - base.fte
		if fteChange == 0 && changeType == ChangeModified {
			continue
		}

		changes = append(changes, WorkforceChange{
			Role:          role,
			Level:         level,
			ChangeType:    changeType,
			BaselineFTE:   base.fte,
			ComparisonFTE: cmp.fte,
			FTEChange:     fteChange,
			SalaryChange:  cmp.fte*cmp.salary - base.fte*base.salary,
		})
	}

	// |fteChange| 降序；并列时按 role、level 升序，保证输出确定
	sort.Slice(changes, func(i, j int) bool {
		ai, aj := math.Abs(changes[i].FTEChange), math.Abs(changes[j].FTEChange)
		if ai != aj {
			return ai > aj
		}
		if changes[i].Role != changes[j].Role {
			return changes[i].Role < changes[j].Role
		}
		return levelString(changes[i].Level) < levelString(changes[j].Level)
	})

	summary := Summary{
		TotalFTEChange:    comparison.Metadata.TotalFTE - baseline.Metadata.TotalFTE,
		TotalSalaryChange: comparison.Metadata.TotalSalary - baseline.Metadata.TotalSalary,
	}
	if baseline.Metadata.TotalFTE > 0 {
		summary.NetChangePercentage = summary.TotalFTEChange / baseline.Metadata.TotalFTE * 100
	}
	for _, ch := range changes {
		switch ch.ChangeType {
		case ChangeAdded:
			summary.RolesAdded++
		case ChangeRemoved:
			summary.RolesRemoved++
		case ChangeModified:
			summary.RolesModified++
		}
	}

	return Result{Changes: changes, Summary: summary}
}

func levelString(lv *model.Level) string {
	if lv == nil {
		return ""
	}
	return string(*lv)
}
