package timeseries

import (
	"testing"

	"fteboard/internal/model"
)

func leveled(entries map[model.Level][]model.TimeSeriesEntry) model.RoleSeries {
	return model.RoleSeries{Leveled: entries}
}

func TestLatestTotalFlat(t *testing.T) {
	rs := model.RoleSeries{Flat: []model.TimeSeriesEntry{{Total: 2}, {Total: 3.5}}}

	if got := LatestTotal(rs, ""); got != 3.5 {
		t.Fatalf("latest total = %v, want 3.5", got)
	}
}

func TestLatestTotalLeveled(t *testing.T) {
	rs := leveled(map[model.Level][]model.TimeSeriesEntry{
		model.LevelC: {{Total: 4}, {Total: 6}},
	})

	if got := LatestTotal(rs, model.LevelC); got != 6 {
		t.Fatalf("latest total = %v, want 6", got)
	}
}

func TestLatestTotalMissingBranches(t *testing.T) {
	cases := []struct {
		name  string
		rs    model.RoleSeries
		level model.Level
	}{
		{"empty series", model.RoleSeries{}, ""},
		{"empty flat array", model.RoleSeries{Flat: []model.TimeSeriesEntry{}}, ""},
		{"level absent", leveled(map[model.Level][]model.TimeSeriesEntry{model.LevelA: {{Total: 1}}}), model.LevelM},
		{"level asked of flat role", model.RoleSeries{Flat: []model.TimeSeriesEntry{{Total: 9}}}, model.LevelA},
		{"flat asked of leveled role", leveled(map[model.Level][]model.TimeSeriesEntry{model.LevelA: {{Total: 1}}}), ""},
	}

	for _, tc := range cases {
		if got := LatestTotal(tc.rs, tc.level); got != 0 {
			t.Fatalf("%s: latest total = %v, want 0", tc.name, got)
		}
	}
}

func TestSumOverPeriod(t *testing.T) {
	rs := leveled(map[model.Level][]model.TimeSeriesEntry{
		model.LevelSrC: {{Recruited: 1}, {Recruited: 2}, {Recruited: 0.5}},
	})

	if got := SumOverPeriod(rs, model.LevelSrC, FieldRecruited); got != 3.5 {
		t.Fatalf("sum recruited = %v, want 3.5", got)
	}
	if got := SumOverPeriod(rs, model.LevelSrC, FieldChurned); got != 0 {
		t.Fatalf("sum churned = %v, want 0", got)
	}
	if got := SumOverPeriod(model.RoleSeries{}, model.LevelSrC, FieldRecruited); got != 0 {
		t.Fatalf("sum over missing data = %v, want 0", got)
	}
}

func TestRevenueAndCostOverPeriod(t *testing.T) {
	rs := model.RoleSeries{Flat: []model.TimeSeriesEntry{
		{Total: 2, Price: 100, Salary: 40},
		{Total: 3, Price: 100, Salary: 40},
	}}

	if got := RevenueOverPeriod(rs, ""); got != 500 {
		t.Fatalf("revenue = %v, want 500", got)
	}
	if got := CostOverPeriod(rs, ""); got != 200 {
		t.Fatalf("cost = %v, want 200", got)
	}
}

func TestLevelsOrder(t *testing.T) {
	rs := leveled(map[model.Level][]model.TimeSeriesEntry{
		model.LevelM: {}, model.LevelA: {}, model.LevelSrC: {},
	})

	got := Levels(rs)
	want := []model.Level{model.LevelA, model.LevelSrC, model.LevelM}
	if len(got) != len(want) {
		t.Fatalf("levels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("levels = %v, want %v", got, want)
		}
	}
	if Levels(model.RoleSeries{Flat: []model.TimeSeriesEntry{}}) != nil {
		t.Fatalf("flat role should report no levels")
	}
}
