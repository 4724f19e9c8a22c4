package importer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"fteboard/internal/model"
	"fteboard/internal/store"
)

func writeWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()
	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "snapshot.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "fteboard.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func drain(t *testing.T, ch <-chan ProgressEvent) []ProgressEvent {
	t.Helper()
	var events []ProgressEvent
	for evt := range ch {
		if evt.Type == "error" {
			t.Fatalf("import error: %s", evt.Message)
		}
		events = append(events, evt)
	}
	return events
}

func TestImportSnapshotWorkbook(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"stockholm": {
			{"Role", "Level", "FTE", "Salary", "Notes"},
			{"Consultant", "C", 8, 5500, "core team"},
			{"Consultant", "SrC", 3, 7000, ""},
			{"Operations", "", 2, 4000, ""},
		},
	})

	st := newTestStore(t)
	coord := NewCoordinator(st)

	events := drain(t, coord.Import(ImportOptions{
		FilePath:     path,
		SnapshotName: "june",
		SnapshotDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}))
	if events[len(events)-1].Type != "done" {
		t.Fatalf("last event = %+v", events[len(events)-1])
	}

	summaries, err := st.ListSnapshots("stockholm")
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("snapshots = %+v", summaries)
	}

	snap, err := st.GetSnapshot(summaries[0].ID)
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if len(snap.Workforce) != 3 {
		t.Fatalf("workforce lines = %d, want 3", len(snap.Workforce))
	}
	if snap.Metadata.TotalFTE != 13 {
		t.Fatalf("total fte = %v, want 13", snap.Metadata.TotalFTE)
	}
	if snap.Workforce[2].Role != model.RoleOperations || snap.Workforce[2].Level != nil {
		t.Fatalf("operations line = %+v", snap.Workforce[2])
	}
}

func TestImportRejectsBadHeader(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"stockholm": {
			{"Name", "Grade", "Count"},
			{"Consultant", "C", 8},
		},
	})

	st := newTestStore(t)
	coord := NewCoordinator(st)

	sawError := false
	for evt := range coord.Import(ImportOptions{FilePath: path}) {
		if evt.Type == "error" {
			sawError = true
		}
	}
	if !sawError {
		t.Fatalf("bad header should produce an error event")
	}

	count, err := st.CountSnapshots()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("failed import persisted %d snapshots", count)
	}
}

func TestImportMultipleSheets(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"stockholm": {
			{"Role", "Level", "FTE", "Salary"},
			{"Consultant", "A", 4, 4000},
		},
		"oslo": {
			{"Role", "Level", "FTE", "Salary"},
			{"Sales", "AM", 2, 6500},
		},
	})

	st := newTestStore(t)
	coord := NewCoordinator(st)
	drain(t, coord.Import(ImportOptions{FilePath: path}))

	count, err := st.CountSnapshots()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("snapshots = %d, want 2", count)
	}
}
