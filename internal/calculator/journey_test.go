package calculator

import (
	"testing"

	"fteboard/internal/model"
)

func TestDefaultJourneysValidPartition(t *testing.T) {
	table, err := NewJourneyTable(DefaultJourneys())
	if err != nil {
		t.Fatalf("default journeys rejected: %v", err)
	}
	for _, lv := range model.AllLevels {
		if table.JourneyOf(lv) == "" {
			t.Fatalf("level %s has no journey", lv)
		}
	}
}

func TestJourneyTableRejectsMissingLevel(t *testing.T) {
	defs := []JourneyDefinition{
		{Name: "Journey 1", Levels: []model.Level{model.LevelA, model.LevelAC, model.LevelC}},
		{Name: "Journey 2", Levels: []model.Level{model.LevelSrC, model.LevelAM}},
		{Name: "Journey 3", Levels: []model.Level{model.LevelM, model.LevelSrM}},
		// PiP 缺失
	}
	if _, err := NewJourneyTable(defs); err == nil {
		t.Fatalf("incomplete partition should be rejected")
	}
}

func TestJourneyTableRejectsDoubleAssignment(t *testing.T) {
	defs := append(DefaultJourneys(), JourneyDefinition{Name: "Extra", Levels: []model.Level{model.LevelC}})
	if _, err := NewJourneyTable(defs); err == nil {
		t.Fatalf("double-assigned level should be rejected")
	}
}
