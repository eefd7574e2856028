// Package workflow orchestrates the planner run: parse the request,
// build the SKU queue, run the actor/critic loop per context, route
// out-of-threshold boosts to human approval, and persist the outcome.
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/planflow/demand-planner/internal/actor"
	"github.com/planflow/demand-planner/internal/audit"
	"github.com/planflow/demand-planner/internal/boost"
	"github.com/planflow/demand-planner/internal/catalog"
	"github.com/planflow/demand-planner/internal/critic"
	"github.com/planflow/demand-planner/internal/driver"
	"github.com/planflow/demand-planner/internal/request"
	"github.com/planflow/demand-planner/internal/store"
)

// #region types

// Routes an item can take after the critic's verdict.
const (
	RouteFinalize      = "finalize"
	RouteHumanApproval = "human_approval"
	RouteRerun         = "rerun"
)

// DefaultMaxRetries allows one actor rerun per item.
const DefaultMaxRetries = 2

// RunParams configures a planner run. Zero-valued fields fall back to
// the parsed query (when Query is set) and then to defaults.
type RunParams struct {
	Query         string
	SKU           string
	Customer      string
	Location      string
	AsOfDate      string
	Scope         string
	ABCClass      string
	XYZClasses    []string
	Thresholds    critic.Thresholds
	MaxRetries    int
	HumanDecision string
}

// AttemptRecord preserves one actor/critic pass for an item.
type AttemptRecord struct {
	Attempt int
	Actor   actor.Result
	Review  critic.ReviewResult
}

// ItemState is the per-SKU outcome of a run.
type ItemState struct {
	Key            driver.ContextKey
	Attempt        int
	Actor          actor.Result
	Review         critic.ReviewResult
	Route          string
	ApprovalStatus string
	Finalized      bool
	History        []AttemptRecord
}

// RunResult is the outcome of one planner run across its whole queue.
type RunResult struct {
	RunID            string
	Params           request.Params
	Items            []ItemState
	PendingApprovals []driver.ContextKey
}

// Engine wires the planner stages together over shared storage.
type Engine struct {
	provider driver.Provider
	catalog  *catalog.Catalog
	store    *store.Store
	actor    *actor.Actor
	parser   *request.Parser
}

// #endregion types

// #region constructor

// NewEngine builds a run engine. The parser may be nil, in which case
// queries go through the deterministic parse only.
func NewEngine(provider driver.Provider, cat *catalog.Catalog, st *store.Store, act *actor.Actor, parser *request.Parser) (*Engine, error) {
	if err := audit.EnsureSchema(st.DB()); err != nil {
		return nil, fmt.Errorf("prepare audit log: %w", err)
	}
	return &Engine{
		provider: provider,
		catalog:  cat,
		store:    st,
		actor:    act,
		parser:   parser,
	}, nil
}

// #endregion constructor

// #region run

// Run executes the full planner workflow for the given parameters.
func (e *Engine) Run(ctx context.Context, params RunParams) (RunResult, error) {
	runID := uuid.NewString()
	resolved := e.resolveParams(ctx, params)

	th := params.Thresholds
	if th == (critic.Thresholds{}) {
		th = critic.Thresholds{Upper: resolved.UpperThreshold, Lower: resolved.LowerThreshold}
	}
	maxRetries := params.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}

	queue := e.buildQueue(resolved)
	log.Printf("[FLOW] run %s: scope=%s queue=%v customer=%s location=%s date=%s",
		runID, resolved.Scope, queue, resolved.CustomerID, resolved.LocationID, resolved.AsOfDate)
	e.logStep(audit.Entry{
		RunID:      runID,
		SKU:        strings.Join(queue, ","),
		Customer:   resolved.CustomerID,
		Location:   resolved.LocationID,
		AsOfDate:   resolved.AsOfDate,
		Step:       "parse_request",
		DetailJSON: toJSON(resolved),
	})

	result := RunResult{RunID: runID, Params: resolved}
	for _, sku := range queue {
		key := driver.ContextKey{
			SKU:      sku,
			Customer: resolved.CustomerID,
			Location: resolved.LocationID,
			AsOfDate: resolved.AsOfDate,
		}.Normalize()

		item, err := e.runItem(ctx, runID, key, th, maxRetries, params.HumanDecision)
		if err != nil {
			return result, fmt.Errorf("run %s for %s: %w", runID, key, err)
		}
		result.Items = append(result.Items, item)
		if item.ApprovalStatus == store.ApprovalPending && item.Route == RouteHumanApproval {
			result.PendingApprovals = append(result.PendingApprovals, item.Key)
		}
	}
	return result, nil
}

func (e *Engine) resolveParams(ctx context.Context, params RunParams) request.Params {
	var resolved request.Params
	if params.Query != "" {
		resolved = e.parser.ParseQuery(ctx, params.Query)
	} else {
		resolved = request.Parse("")
		resolved.NeedsClarification = false
		resolved.Questions = nil
	}

	// Explicit params always win over the parsed query.
	if params.SKU != "" {
		resolved.SKUID = strings.ToUpper(strings.TrimSpace(params.SKU))
	}
	if params.Customer != "" {
		resolved.CustomerID = strings.ToUpper(strings.TrimSpace(params.Customer))
	}
	if params.Location != "" {
		resolved.LocationID = strings.ToUpper(strings.TrimSpace(params.Location))
	}
	if params.AsOfDate != "" {
		resolved.AsOfDate = strings.TrimSpace(params.AsOfDate)
	}
	if params.Scope != "" {
		resolved.Scope = params.Scope
	}
	if params.ABCClass != "" {
		resolved.ABCClass = strings.ToUpper(params.ABCClass)
	}
	if len(params.XYZClasses) > 0 {
		resolved.XYZClasses = params.XYZClasses
	}
	return resolved
}

// buildQueue selects the SKUs this run will process. all_relevant pulls
// every SKU matching the class selectors; single takes the requested SKU,
// falling back to the first relevant one when none was named.
func (e *Engine) buildQueue(p request.Params) []string {
	relevant := e.catalog.FindSKUsByClass(p.LocationID, p.ABCClass, p.XYZClasses)
	if p.Scope == request.ScopeAllRelevant {
		return relevant
	}
	if p.SKUID == "" || p.SKUID == request.AutoSKU {
		if len(relevant) > 0 {
			return relevant[:1]
		}
		return nil
	}
	return []string{p.SKUID}
}

// #endregion run

// #region item

func (e *Engine) runItem(ctx context.Context, runID string, key driver.ContextKey, th critic.Thresholds, maxRetries int, humanDecision string) (ItemState, error) {
	item := ItemState{Key: key, Attempt: 1}

	for {
		res := e.actor.Run(ctx, key)
		review := critic.Review(key, res.Values, res.Forecast.Boost, th)
		item.Actor = res
		item.Review = review
		item.History = append(item.History, AttemptRecord{Attempt: item.Attempt, Actor: res, Review: review})

		log.Printf("[FLOW] %s attempt %d: boost=%+.4f decision=%s",
			key, item.Attempt, review.TotalBoost, review.Decision)
		e.logStep(audit.Entry{
			RunID: runID, SKU: key.SKU, Customer: key.Customer, Location: key.Location,
			AsOfDate: key.AsOfDate, Step: "critic", Attempt: item.Attempt,
			Decision:   string(review.Decision),
			DetailJSON: toJSON(map[string]any{"total_boost": review.TotalBoost, "reruns": review.Reruns}),
		})

		// One rerun at most, and only when the critic flagged categories.
		if review.Decision == critic.DecisionAskActorRerun &&
			item.Attempt == 1 && maxRetries >= 2 && len(review.Reruns) > 0 {
			item.Attempt = 2
			item.Route = RouteRerun
			continue
		}
		break
	}

	if item.Review.Decision == critic.DecisionRouteToHuman {
		item.Route = RouteHumanApproval
		item.ApprovalStatus = NormalizeDecision(humanDecision)
		e.logStep(audit.Entry{
			RunID: runID, SKU: key.SKU, Customer: key.Customer, Location: key.Location,
			AsOfDate: key.AsOfDate, Step: "human_approval", Attempt: item.Attempt,
			Decision: item.ApprovalStatus,
		})
		switch item.ApprovalStatus {
		case store.ApprovalApproved:
			if err := e.finalize(runID, &item, store.ApprovalApproved); err != nil {
				return item, err
			}
		default:
			// pending or rejected: store the outcome without finalizing.
		}
	} else {
		item.Route = RouteFinalize
		if err := e.finalize(runID, &item, store.ApprovalNotRequired); err != nil {
			return item, err
		}
	}

	if err := e.storeResult(runID, &item); err != nil {
		return item, err
	}
	return item, nil
}

// finalize marks the item done and, when approved, writes the approved
// consensus record.
func (e *Engine) finalize(runID string, item *ItemState, status string) error {
	item.Finalized = true
	if item.ApprovalStatus == "" {
		item.ApprovalStatus = status
	}
	e.logStep(audit.Entry{
		RunID: runID, SKU: item.Key.SKU, Customer: item.Key.Customer,
		Location: item.Key.Location, AsOfDate: item.Key.AsOfDate,
		Step: "finalize", Attempt: item.Attempt, Decision: item.ApprovalStatus,
	})
	if item.ApprovalStatus != store.ApprovalApproved {
		return nil
	}
	f := item.Actor.Forecast
	_, err := e.store.SaveApproved(store.ApprovedRecord{
		Key:                 item.Key,
		BaselineForecast:    f.Baseline,
		TotalBoostFraction:  f.TotalBoost,
		TotalBoostPercent:   boost.PercentOf(f.TotalBoost),
		FinalDemandForecast: f.FinalForecast,
	})
	if err != nil {
		return fmt.Errorf("save approved: %w", err)
	}
	return nil
}

// storeResult always upserts the planned record, whatever route was taken.
func (e *Engine) storeResult(runID string, item *ItemState) error {
	status := item.ApprovalStatus
	if status == "" {
		status = store.ApprovalPending
	}
	f := item.Actor.Forecast
	_, err := e.store.UpsertPlanned(store.PlannedRecord{
		Key:                 item.Key,
		BaselineForecast:    f.Baseline,
		TotalBoostFraction:  f.TotalBoost,
		TotalBoostPercent:   boost.PercentOf(f.TotalBoost),
		FinalDemandForecast: f.FinalForecast,
		CriticDecision:      string(item.Review.Decision),
		TookApprovalRoute:   item.Review.Decision == critic.DecisionRouteToHuman,
		ApprovalStatus:      status,
	})
	if err != nil {
		return fmt.Errorf("store planned: %w", err)
	}
	e.logStep(audit.Entry{
		RunID: runID, SKU: item.Key.SKU, Customer: item.Key.Customer,
		Location: item.Key.Location, AsOfDate: item.Key.AsOfDate,
		Step: "store_result", Attempt: item.Attempt, Decision: status,
	})
	return nil
}

// #endregion item

// #region decisions

// NormalizeDecision maps free-form human input to an approval status.
// Anything unrecognized stays pending.
func NormalizeDecision(input string) string {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "approve", "approved", "yes", "y":
		return store.ApprovalApproved
	case "reject", "rejected", "no", "n":
		return store.ApprovalRejected
	default:
		return store.ApprovalPending
	}
}

// ApplyDecision resolves a pending approval after the run. Approving
// writes the approved consensus record from the stored planned one;
// rejecting only flips the status. Records not in pending state and
// unrecognized decisions are left untouched.
func (e *Engine) ApplyDecision(key driver.ContextKey, decision string) (store.PlannedRecord, error) {
	key = key.Normalize()
	rec, err := e.store.GetPlanned(key)
	if err != nil {
		return store.PlannedRecord{}, err
	}
	if rec.ApprovalStatus != store.ApprovalPending {
		return rec, nil
	}

	switch NormalizeDecision(decision) {
	case store.ApprovalApproved:
		if err := e.store.SetApprovalStatus(key, store.ApprovalApproved); err != nil {
			return rec, err
		}
		_, err := e.store.SaveApproved(store.ApprovedRecord{
			Key:                 key,
			BaselineForecast:    rec.BaselineForecast,
			TotalBoostFraction:  rec.TotalBoostFraction,
			TotalBoostPercent:   rec.TotalBoostPercent,
			FinalDemandForecast: rec.FinalDemandForecast,
		})
		if err != nil {
			return rec, fmt.Errorf("save approved: %w", err)
		}
	case store.ApprovalRejected:
		if err := e.store.SetApprovalStatus(key, store.ApprovalRejected); err != nil {
			return rec, err
		}
	default:
		return rec, nil
	}
	return e.store.GetPlanned(key)
}

// #endregion decisions

// #region helpers

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func (e *Engine) logStep(entry audit.Entry) {
	if err := audit.LogStep(e.store.DB(), entry); err != nil {
		log.Printf("[FLOW] audit log failed: %v", err)
	}
}

// #endregion helpers
