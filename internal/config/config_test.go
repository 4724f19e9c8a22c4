package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"

	"fteboard/internal/model"
)

func TestDefaultConfigJourneyTable(t *testing.T) {
	cfg := DefaultConfig()

	table, err := cfg.JourneyTable()
	if err != nil {
		t.Fatalf("default journeys rejected: %v", err)
	}
	if got := table.JourneyOf(model.LevelSrC); got != "Journey 2" {
		t.Fatalf("SrC journey = %q, want Journey 2", got)
	}
	if got := table.JourneyOf(model.LevelPiP); got != "Journey 4" {
		t.Fatalf("PiP journey = %q, want Journey 4", got)
	}
}

func TestJourneyTableRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Planning.Journeys = cfg.Planning.Journeys[:2]

	if _, err := cfg.JourneyTable(); err == nil {
		t.Fatalf("incomplete journey config should be rejected")
	}
}

func TestBaselineOfficesFromToml(t *testing.T) {
	raw := `
[planning]
currency = "kSEK"

[[planning.baseline_offices]]
name = "Stockholm"

[planning.baseline_offices.roles.Consultant.levels]
A = 4.0
C = 6.0

[planning.baseline_offices.roles.Operations]
total = 3.0
`
	var cfg AppConfig
	if err := toml.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}

	offices := cfg.BaselineOffices()
	if len(offices) != 1 {
		t.Fatalf("offices = %d, want 1", len(offices))
	}
	office := offices[0]
	if office.Name != "Stockholm" {
		t.Fatalf("name = %q", office.Name)
	}
	if got := office.Roles[model.RoleConsultant].Levels[model.LevelC]; got != 6 {
		t.Fatalf("consultant C = %v, want 6", got)
	}
	ops := office.Roles[model.RoleOperations]
	if ops.Total == nil || *ops.Total != 3 {
		t.Fatalf("operations total = %v", ops.Total)
	}
}
