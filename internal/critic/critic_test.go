package critic

import (
	"testing"

	"github.com/planflow/demand-planner/internal/boost"
	"github.com/planflow/demand-planner/internal/driver"
)

func reviewFor(t *testing.T, key driver.ContextKey) (ReviewResult, driver.Values) {
	t.Helper()
	p := driver.NewStaticProvider()
	values := p.Values(key)
	agg := boost.Calculate(key, values)
	return Review(key, values, agg, DefaultThresholds()), values
}

func TestReviewWithinThresholds(t *testing.T) {
	key := driver.ContextKey{SKU: "DOVE_HAIR_FALL_RESCUE_650ML", Customer: "BLINKIT", Location: "BANGALORE", AsOfDate: driver.DefaultAsOfDate}
	got, _ := reviewFor(t, key)
	if got.OutsideThresholds {
		t.Fatalf("total %v flagged outside thresholds", got.TotalBoost)
	}
	if got.Decision != DecisionWithinThresholds {
		t.Errorf("decision = %s, want within_thresholds", got.Decision)
	}
	if len(got.Reruns) != 0 || len(got.Issues) != 0 {
		t.Errorf("clean context produced reruns=%v issues=%v", got.Reruns, got.Issues)
	}
	for cat, h := range got.Health {
		if h.Status != StatusOK {
			t.Errorf("%s health = %s, want ok", cat, h.Status)
		}
	}
}

func TestReviewOutsideUpperRoutesToHuman(t *testing.T) {
	key := driver.ContextKey{SKU: "PONDS_SUPER_LIGHT_GEL_100G", Customer: "BLINKIT", Location: "BANGALORE", AsOfDate: driver.DefaultAsOfDate}
	got, _ := reviewFor(t, key)
	if !got.OutsideThresholds {
		t.Fatalf("total %v should exceed the 0.30 upper threshold", got.TotalBoost)
	}
	if got.Decision != DecisionRouteToHuman {
		t.Errorf("decision = %s, want route_to_human_approval", got.Decision)
	}
}

func TestReviewOutsideLowerRoutesToHuman(t *testing.T) {
	key := driver.ContextKey{SKU: "PONDS_SUPER_LIGHT_GEL_100G", Customer: "BLINKIT", Location: "BANGALORE", AsOfDate: driver.BearishDate}
	got, _ := reviewFor(t, key)
	if got.TotalBoost != -0.30 {
		t.Fatalf("total = %v, want clamped -0.30", got.TotalBoost)
	}
	if got.Decision != DecisionRouteToHuman {
		t.Errorf("decision = %s, want route_to_human_approval", got.Decision)
	}
}

func TestReviewEmptyContext(t *testing.T) {
	key := driver.ContextKey{SKU: "UNKNOWN", Customer: "BLINKIT", Location: "BANGALORE", AsOfDate: driver.DefaultAsOfDate}
	got, _ := reviewFor(t, key)
	if len(got.Reruns) != 6 {
		t.Fatalf("reruns = %d categories, want all 6", len(got.Reruns))
	}
	for cat, h := range got.Health {
		if h.Status != StatusMissingContext {
			t.Errorf("%s health = %s, want missing_context_data", cat, h.Status)
		}
		if len(h.Missing) != len(RequiredDrivers(cat)) {
			t.Errorf("%s missing = %v", cat, h.Missing)
		}
	}
	if got.Decision != DecisionAskActorRerun {
		t.Errorf("decision = %s, want ask_actor_rerun", got.Decision)
	}
	if len(got.Issues) != 1 || got.Issues[0].Type != string(StatusMissingContext) {
		t.Errorf("issues = %+v, want one missing_context_data entry", got.Issues)
	}
}

func TestReviewIncompleteCategory(t *testing.T) {
	key := driver.ContextKey{SKU: "PONDS_SUPER_LIGHT_GEL_100G", Customer: "BLINKIT", Location: "BANGALORE", AsOfDate: driver.DefaultAsOfDate}
	p := driver.NewStaticProvider()
	values := p.Values(key)
	delete(values, driver.UVIndex)
	values[driver.AQI] = nil

	agg := boost.Calculate(key, values)
	got := Review(key, values, agg, DefaultThresholds())

	h := got.Health[boost.CategoryWeather]
	if h.Status != StatusIncomplete {
		t.Fatalf("weather health = %s, want incomplete", h.Status)
	}
	if len(h.Missing) != 1 || h.Missing[0] != driver.UVIndex {
		t.Errorf("missing = %v, want UV Index", h.Missing)
	}
	if len(h.Nulls) != 1 || h.Nulls[0] != driver.AQI {
		t.Errorf("nulls = %v, want AQI", h.Nulls)
	}
	if len(got.Reruns) != 1 || got.Reruns[0] != boost.CategoryWeather {
		t.Errorf("reruns = %v, want weather only", got.Reruns)
	}
	// Outside thresholds AND unhealthy: rerun wins over escalation.
	if got.Decision != DecisionAskActorRerun {
		t.Errorf("decision = %s, want ask_actor_rerun", got.Decision)
	}
}

func TestThresholdBoundariesInclusive(t *testing.T) {
	th := DefaultThresholds()
	if th.Outside(0.30) {
		t.Error("exactly the upper threshold should be acceptable")
	}
	if th.Outside(-0.20) {
		t.Error("exactly the lower threshold should be acceptable")
	}
	if !th.Outside(0.3001) || !th.Outside(-0.2001) {
		t.Error("values past the thresholds should be flagged")
	}
}
