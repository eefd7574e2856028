package replay

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/planflow/demand-planner/internal/actor"
	"github.com/planflow/demand-planner/internal/driver"
)

// #region fixture-tests

// TestFixture_ScenarioRegression loads the recorded scenario fixture,
// replays it against the seeded driver data, and requires every case to
// reproduce its recorded outcome. This is the primary regression test —
// if step bands, caps, or threshold routing change, this catches drift.
func TestFixture_ScenarioRegression(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "scenario_regression.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if len(f.Cases) == 0 {
		t.Fatal("fixture has no cases")
	}

	act := actor.New(driver.NewStaticProvider(), nil)
	results := Replay(context.Background(), act, f)

	if len(results) != len(f.Cases) {
		t.Fatalf("expected %d results, got %d", len(f.Cases), len(results))
	}
	for i, r := range results {
		if !r.Passed {
			t.Errorf("case %d (%s): %s", i, r.Key, r.Reason)
		}
	}

	s := Summarize(results)
	if s.Failures != 0 || s.Passes != len(f.Cases) {
		t.Errorf("summary = %+v", s)
	}
}

// TestReplayDetectsDrift corrupts a recorded expectation and verifies the
// harness reports the mismatch instead of passing silently.
func TestReplayDetectsDrift(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "scenario_regression.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	f.Cases[0].Expected.FinalForecast += 1.0

	act := actor.New(driver.NewStaticProvider(), nil)
	results := Replay(context.Background(), act, f)
	if results[0].Passed {
		t.Fatal("expected case 0 to fail after corrupting the recording")
	}
	if results[0].Reason == "" {
		t.Error("failure carries no reason")
	}
	if s := Summarize(results); s.Failures != 1 {
		t.Errorf("summary = %+v", s)
	}
}

// TestLoadFixture_NotFound verifies error on missing file.
func TestLoadFixture_NotFound(t *testing.T) {
	_, err := LoadFixture("testdata/nonexistent.json")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

// TestLoadFixture_Malformed verifies error on invalid JSON.
func TestLoadFixture_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not valid json}"), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	_, err := LoadFixture(path)
	if err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

// #endregion fixture-tests
