package model

import "time"

// WorkforceLine 快照中的一行人员配置。
// Level 为 nil 表示无职级角色（Operations）。
type WorkforceLine struct {
	Role   string  `json:"role"`
	Level  *Level  `json:"level"`
	FTE    float64 `json:"fte"`
	Salary float64 `json:"salary"`
	Notes  string  `json:"notes,omitempty"`
}

// SnapshotMetadata 创建快照时计算并随快照持久化的汇总。
// TotalSalary 为 Σ fte×salary（月度工资成本）。
type SnapshotMetadata struct {
	TotalFTE    float64 `json:"totalFte"`
	TotalSalary float64 `json:"totalSalary"`
}

// PopulationSnapshot 人员快照——本系统唯一的持久化实体。
// 由用户显式创建，创建后不可变，读多写一。
type PopulationSnapshot struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	OfficeID     string           `json:"officeId"`
	SnapshotDate time.Time        `json:"snapshotDate"`
	Workforce    []WorkforceLine  `json:"workforce"`
	Metadata     SnapshotMetadata `json:"metadata"`
}

// ComputeMetadata 从 workforce 行计算汇总
func (s *PopulationSnapshot) ComputeMetadata() SnapshotMetadata {
	var meta SnapshotMetadata
	for _, line := range s.Workforce {
		meta.TotalFTE += line.FTE
		meta.TotalSalary += line.FTE * line.Salary
	}
	return meta
}
