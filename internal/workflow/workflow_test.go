package workflow

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/planflow/demand-planner/internal/actor"
	"github.com/planflow/demand-planner/internal/audit"
	"github.com/planflow/demand-planner/internal/catalog"
	"github.com/planflow/demand-planner/internal/critic"
	"github.com/planflow/demand-planner/internal/driver"
	"github.com/planflow/demand-planner/internal/store"
)

// #region helpers

func tempEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	st, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	provider := driver.NewStaticProvider()
	act := actor.New(provider, nil)
	eng, err := NewEngine(provider, catalog.NewStatic(), st, act, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return eng, st
}

func singleRun(sku, date, decision string) RunParams {
	return RunParams{
		SKU:           sku,
		Customer:      "BLINKIT",
		Location:      "BANGALORE",
		AsOfDate:      date,
		Scope:         "single",
		HumanDecision: decision,
	}
}

// #endregion helpers

// #region routing

func TestRunWithinThresholdsFinalizes(t *testing.T) {
	eng, st := tempEngine(t)
	res, err := eng.Run(context.Background(), singleRun("DOVE_HAIR_FALL_RESCUE_650ML", "2026-01-01", ""))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("items = %d", len(res.Items))
	}
	item := res.Items[0]
	if item.Review.Decision != critic.DecisionWithinThresholds {
		t.Fatalf("decision = %s", item.Review.Decision)
	}
	if item.Route != RouteFinalize || !item.Finalized {
		t.Errorf("route = %s, finalized = %v", item.Route, item.Finalized)
	}
	if item.ApprovalStatus != store.ApprovalNotRequired {
		t.Errorf("status = %s", item.ApprovalStatus)
	}

	rec, err := st.GetPlanned(item.Key)
	if err != nil {
		t.Fatalf("GetPlanned: %v", err)
	}
	if rec.ApprovalStatus != store.ApprovalNotRequired || rec.TookApprovalRoute {
		t.Errorf("planned = %+v", rec)
	}
	approved, err := st.ListApproved()
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if len(approved) != 0 {
		t.Errorf("approved records written without approval: %v", approved)
	}
}

func TestRunOutsideThresholdsGoesPending(t *testing.T) {
	eng, st := tempEngine(t)
	res, err := eng.Run(context.Background(), singleRun("PONDS_SUPER_LIGHT_GEL_100G", "2026-01-01", ""))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	item := res.Items[0]
	if item.Review.Decision != critic.DecisionRouteToHuman {
		t.Fatalf("decision = %s", item.Review.Decision)
	}
	if item.Route != RouteHumanApproval || item.Finalized {
		t.Errorf("route = %s, finalized = %v", item.Route, item.Finalized)
	}
	if item.ApprovalStatus != store.ApprovalPending {
		t.Errorf("status = %s", item.ApprovalStatus)
	}
	if len(res.PendingApprovals) != 1 {
		t.Fatalf("pending = %v", res.PendingApprovals)
	}

	rec, err := st.GetPlanned(item.Key)
	if err != nil {
		t.Fatalf("GetPlanned: %v", err)
	}
	if !rec.TookApprovalRoute || rec.ApprovalStatus != store.ApprovalPending {
		t.Errorf("planned = %+v", rec)
	}
	if rec.FinalDemandForecast != 147.2 {
		t.Errorf("final forecast = %v", rec.FinalDemandForecast)
	}
}

func TestRunPreSuppliedApproval(t *testing.T) {
	eng, st := tempEngine(t)
	res, err := eng.Run(context.Background(), singleRun("PONDS_SUPER_LIGHT_GEL_100G", "2026-01-03", "approve"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	item := res.Items[0]
	if item.ApprovalStatus != store.ApprovalApproved || !item.Finalized {
		t.Fatalf("status = %s, finalized = %v", item.ApprovalStatus, item.Finalized)
	}
	if len(res.PendingApprovals) != 0 {
		t.Errorf("pending = %v", res.PendingApprovals)
	}

	approved, err := st.ListApproved()
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if len(approved) != 1 {
		t.Fatalf("approved = %v", approved)
	}
	if approved[0].FinalDemandForecast != 59.5 || approved[0].TotalBoostPercent != -30 {
		t.Errorf("approved record = %+v", approved[0])
	}
}

func TestRunPreSuppliedRejection(t *testing.T) {
	eng, st := tempEngine(t)
	res, err := eng.Run(context.Background(), singleRun("PONDS_SUPER_LIGHT_GEL_100G", "2026-01-01", "no"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	item := res.Items[0]
	if item.ApprovalStatus != store.ApprovalRejected || item.Finalized {
		t.Fatalf("status = %s, finalized = %v", item.ApprovalStatus, item.Finalized)
	}
	rec, err := st.GetPlanned(item.Key)
	if err != nil {
		t.Fatalf("GetPlanned: %v", err)
	}
	if rec.ApprovalStatus != store.ApprovalRejected {
		t.Errorf("planned status = %s", rec.ApprovalStatus)
	}
	approved, _ := st.ListApproved()
	if len(approved) != 0 {
		t.Errorf("approved = %v", approved)
	}
}

func TestRunUnknownContextRerunsOnce(t *testing.T) {
	eng, _ := tempEngine(t)
	res, err := eng.Run(context.Background(), singleRun("GHOST_SKU", "2026-01-01", ""))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	item := res.Items[0]
	if item.Attempt != 2 || len(item.History) != 2 {
		t.Fatalf("attempt = %d, history = %d", item.Attempt, len(item.History))
	}
	// Still no data after the rerun: the item finalizes rather than loop.
	if item.Review.Decision != critic.DecisionAskActorRerun {
		t.Errorf("decision = %s", item.Review.Decision)
	}
	if !item.Finalized || item.ApprovalStatus != store.ApprovalNotRequired {
		t.Errorf("finalized = %v, status = %s", item.Finalized, item.ApprovalStatus)
	}
}

func TestRunNoRetriesSkipsRerun(t *testing.T) {
	eng, _ := tempEngine(t)
	params := singleRun("GHOST_SKU", "2026-01-01", "")
	params.MaxRetries = 1
	res, err := eng.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := res.Items[0].Attempt; got != 1 {
		t.Errorf("attempt = %d", got)
	}
}

// #endregion routing

// #region queue

func TestRunAllRelevantProcessesWholeQueue(t *testing.T) {
	eng, _ := tempEngine(t)
	res, err := eng.Run(context.Background(), RunParams{
		Customer: "BLINKIT", Location: "BANGALORE", AsOfDate: "2026-01-01",
		Scope: "all_relevant",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("items = %d", len(res.Items))
	}
	if res.Items[0].Key.SKU != "DOVE_HAIR_FALL_RESCUE_650ML" ||
		res.Items[1].Key.SKU != "PONDS_SUPER_LIGHT_GEL_100G" {
		t.Errorf("queue order = %s, %s", res.Items[0].Key.SKU, res.Items[1].Key.SKU)
	}
}

func TestRunAutoSKUTakesFirstRelevant(t *testing.T) {
	eng, _ := tempEngine(t)
	res, err := eng.Run(context.Background(), singleRun("AUTO", "2026-01-01", ""))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].Key.SKU != "DOVE_HAIR_FALL_RESCUE_650ML" {
		t.Fatalf("items = %+v", res.Items)
	}
}

func TestRunFromQuery(t *testing.T) {
	eng, _ := tempEngine(t)
	res, err := eng.Run(context.Background(), RunParams{
		Query: "run ponds for blinkit at bangalore on 2026-01-03",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("items = %d", len(res.Items))
	}
	key := res.Items[0].Key
	if key.SKU != "PONDS_SUPER_LIGHT_GEL_100G" || key.AsOfDate != "2026-01-03" {
		t.Errorf("key = %+v", key)
	}
}

// #endregion queue

// #region audit

func TestRunWritesAuditTrail(t *testing.T) {
	eng, st := tempEngine(t)
	res, err := eng.Run(context.Background(), singleRun("DOVE_HAIR_FALL_RESCUE_650ML", "2026-01-01", ""))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	entries, err := audit.ListByRun(st.DB(), res.RunID)
	if err != nil {
		t.Fatalf("ListByRun: %v", err)
	}
	steps := map[string]bool{}
	for _, e := range entries {
		steps[e.Step] = true
	}
	for _, want := range []string{"parse_request", "critic", "finalize", "store_result"} {
		if !steps[want] {
			t.Errorf("missing audit step %q in %v", want, entries)
		}
	}
}

// #endregion audit

// #region decisions

func TestNormalizeDecision(t *testing.T) {
	cases := map[string]string{
		"approve": store.ApprovalApproved, "Approved": store.ApprovalApproved,
		"YES": store.ApprovalApproved, "y": store.ApprovalApproved,
		"reject": store.ApprovalRejected, "rejected": store.ApprovalRejected,
		"No": store.ApprovalRejected, "n": store.ApprovalRejected,
		"maybe": store.ApprovalPending, "": store.ApprovalPending,
	}
	for in, want := range cases {
		if got := NormalizeDecision(in); got != want {
			t.Errorf("NormalizeDecision(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestApplyDecisionApprove(t *testing.T) {
	eng, st := tempEngine(t)
	res, err := eng.Run(context.Background(), singleRun("PONDS_SUPER_LIGHT_GEL_100G", "2026-01-01", ""))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	key := res.Items[0].Key

	rec, err := eng.ApplyDecision(key, "approve")
	if err != nil {
		t.Fatalf("ApplyDecision: %v", err)
	}
	if rec.ApprovalStatus != store.ApprovalApproved {
		t.Errorf("status = %s", rec.ApprovalStatus)
	}
	approved, err := st.ListApproved()
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if len(approved) != 1 || approved[0].FinalDemandForecast != 147.2 {
		t.Errorf("approved = %+v", approved)
	}
}

func TestApplyDecisionReject(t *testing.T) {
	eng, st := tempEngine(t)
	res, err := eng.Run(context.Background(), singleRun("PONDS_SUPER_LIGHT_GEL_100G", "2026-01-01", ""))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rec, err := eng.ApplyDecision(res.Items[0].Key, "reject")
	if err != nil {
		t.Fatalf("ApplyDecision: %v", err)
	}
	if rec.ApprovalStatus != store.ApprovalRejected {
		t.Errorf("status = %s", rec.ApprovalStatus)
	}
	approved, _ := st.ListApproved()
	if len(approved) != 0 {
		t.Errorf("approved = %v", approved)
	}
}

func TestApplyDecisionUnknownStaysPending(t *testing.T) {
	eng, _ := tempEngine(t)
	res, err := eng.Run(context.Background(), singleRun("PONDS_SUPER_LIGHT_GEL_100G", "2026-01-01", ""))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rec, err := eng.ApplyDecision(res.Items[0].Key, "shrug")
	if err != nil {
		t.Fatalf("ApplyDecision: %v", err)
	}
	if rec.ApprovalStatus != store.ApprovalPending {
		t.Errorf("status = %s", rec.ApprovalStatus)
	}
}

func TestApplyDecisionNonPendingUnchanged(t *testing.T) {
	eng, _ := tempEngine(t)
	res, err := eng.Run(context.Background(), singleRun("DOVE_HAIR_FALL_RESCUE_650ML", "2026-01-01", ""))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rec, err := eng.ApplyDecision(res.Items[0].Key, "approve")
	if err != nil {
		t.Fatalf("ApplyDecision: %v", err)
	}
	if rec.ApprovalStatus != store.ApprovalNotRequired {
		t.Errorf("status = %s", rec.ApprovalStatus)
	}
}

// #endregion decisions
