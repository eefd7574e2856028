package replay

import (
	"context"
	"testing"

	"github.com/planflow/demand-planner/internal/actor"
	"github.com/planflow/demand-planner/internal/driver"
)

func testActor() *actor.Actor {
	return actor.New(driver.NewStaticProvider(), nil)
}

func caseFor(sku, date string, expected FixtureExpected) FixtureCase {
	return FixtureCase{
		SKUID:      sku,
		CustomerID: "BLINKIT",
		LocationID: "BANGALORE",
		AsOfDate:   date,
		Expected:   expected,
	}
}

// 1. A correctly recorded case passes end to end.
func TestReplay_MatchingCasePasses(t *testing.T) {
	f := &Fixture{
		Cases: []FixtureCase{
			caseFor("DOVE_HAIR_FALL_RESCUE_650ML", "2026-01-01", FixtureExpected{
				Scenario:      "BASE",
				TotalBoost:    0.20,
				FinalForecast: 93.6,
				Decision:      "within_thresholds",
			}),
		},
	}
	results := Replay(context.Background(), testActor(), f)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].Passed {
		t.Errorf("case failed: %s", results[0].Reason)
	}
}

// 2. A wrong recorded decision is reported, not swallowed.
func TestReplay_DecisionMismatch(t *testing.T) {
	f := &Fixture{
		Cases: []FixtureCase{
			caseFor("PONDS_SUPER_LIGHT_GEL_100G", "2026-01-01", FixtureExpected{
				Scenario:      "BASE",
				TotalBoost:    0.60,
				FinalForecast: 147.2,
				Decision:      "within_thresholds",
			}),
		},
	}
	results := Replay(context.Background(), testActor(), f)
	if results[0].Passed {
		t.Fatal("expected decision mismatch to fail")
	}
}

// 3. Custom thresholds change the routing the replay reproduces.
func TestReplay_CustomThresholds(t *testing.T) {
	f := &Fixture{
		Thresholds: FixtureBounds{Upper: 0.70, Lower: -0.50},
		Cases: []FixtureCase{
			caseFor("PONDS_SUPER_LIGHT_GEL_100G", "2026-01-01", FixtureExpected{
				Scenario:      "BASE",
				TotalBoost:    0.60,
				FinalForecast: 147.2,
				Decision:      "within_thresholds",
			}),
		},
	}
	results := Replay(context.Background(), testActor(), f)
	if !results[0].Passed {
		t.Errorf("case failed: %s", results[0].Reason)
	}
}

// 4. Zero fixture bounds fall back to the default thresholds.
func TestFixtureBoundsDefault(t *testing.T) {
	th := FixtureBounds{}.ToThresholds()
	if th.Upper != 0.30 || th.Lower != -0.20 {
		t.Errorf("thresholds = %+v", th)
	}
}

// 5. Summaries count passes and failures.
func TestSummarize(t *testing.T) {
	results := []Result{{Passed: true}, {Passed: false}, {Passed: true}}
	s := Summarize(results)
	if s.TotalCases != 3 || s.Passes != 2 || s.Failures != 1 {
		t.Errorf("summary = %+v", s)
	}
}
