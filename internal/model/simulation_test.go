package model

import (
	"encoding/json"
	"testing"
)

func TestRoleSeriesUnmarshalFlat(t *testing.T) {
	raw := `[{"total": 3, "recruited": 1, "price": 100, "salary": 45}]`

	var rs RoleSeries
	if err := json.Unmarshal([]byte(raw), &rs); err != nil {
		t.Fatalf("unmarshal flat series: %v", err)
	}
	if rs.IsLeveled() {
		t.Fatalf("flat series decoded as leveled")
	}
	if len(rs.Flat) != 1 || rs.Flat[0].Total != 3 {
		t.Fatalf("unexpected flat entries: %+v", rs.Flat)
	}
}

func TestRoleSeriesUnmarshalLeveled(t *testing.T) {
	raw := `{"A": [{"total": 2}], "C": [{"total": 5}, {"total": 6}]}`

	var rs RoleSeries
	if err := json.Unmarshal([]byte(raw), &rs); err != nil {
		t.Fatalf("unmarshal leveled series: %v", err)
	}
	if !rs.IsLeveled() {
		t.Fatalf("leveled series decoded as flat")
	}
	if got := rs.Leveled[LevelC]; len(got) != 2 || got[1].Total != 6 {
		t.Fatalf("unexpected C entries: %+v", got)
	}
}

func TestRoleSeriesUnmarshalRejectsScalar(t *testing.T) {
	var rs RoleSeries
	if err := json.Unmarshal([]byte(`42`), &rs); err == nil {
		t.Fatalf("scalar should not decode into a role series")
	}
}

func TestOperationsSeriesPrefersOfficeField(t *testing.T) {
	office := OfficeData{
		Levels: map[string]RoleSeries{
			RoleOperations: {Flat: []TimeSeriesEntry{{Total: 1}}},
		},
		Operations: []TimeSeriesEntry{{Total: 4}},
	}

	got := office.OperationsSeries()
	if len(got.Flat) != 1 || got.Flat[0].Total != 4 {
		t.Fatalf("office-level operations should win, got %+v", got.Flat)
	}
}

func TestComputeMetadata(t *testing.T) {
	level := LevelC
	snap := PopulationSnapshot{
		Workforce: []WorkforceLine{
			{Role: RoleConsultant, Level: &level, FTE: 5, Salary: 6000},
			{Role: RoleOperations, FTE: 2, Salary: 4000},
		},
	}

	meta := snap.ComputeMetadata()
	if meta.TotalFTE != 7 {
		t.Fatalf("total fte = %v, want 7", meta.TotalFTE)
	}
	if meta.TotalSalary != 5*6000+2*4000 {
		t.Fatalf("total salary = %v", meta.TotalSalary)
	}
}
