package audit

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func tempDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return db
}

func TestLogStepAndListByRun(t *testing.T) {
	db := tempDB(t)

	steps := []Entry{
		{RunID: "run-1", SKU: "SKU_A", Customer: "BLINKIT", Location: "BANGALORE", AsOfDate: "2026-01-01", Step: "actor", Attempt: 1},
		{RunID: "run-1", SKU: "SKU_A", Step: "critic", Attempt: 1, Decision: "route_to_human_approval"},
		{RunID: "run-2", SKU: "SKU_B", Step: "actor", Attempt: 1},
	}
	for _, e := range steps {
		if err := LogStep(db, e); err != nil {
			t.Fatalf("LogStep: %v", err)
		}
	}

	got, err := ListByRun(db, "run-1")
	if err != nil {
		t.Fatalf("ListByRun: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries = %d, want 2", len(got))
	}
	if got[0].Step != "actor" || got[1].Step != "critic" {
		t.Errorf("order = %s, %s", got[0].Step, got[1].Step)
	}
	if got[1].Decision != "route_to_human_approval" {
		t.Errorf("decision = %q", got[1].Decision)
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("created_at should default to now")
	}
}

func TestLogStepDefaultsAttempt(t *testing.T) {
	db := tempDB(t)
	if err := LogStep(db, Entry{RunID: "run-3", SKU: "SKU_A", Step: "route"}); err != nil {
		t.Fatalf("LogStep: %v", err)
	}
	got, err := ListByRun(db, "run-3")
	if err != nil {
		t.Fatalf("ListByRun: %v", err)
	}
	if got[0].Attempt != 1 {
		t.Errorf("attempt = %d, want defaulted 1", got[0].Attempt)
	}
}
