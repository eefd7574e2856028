// Package api exposes the planner over HTTP: run the workflow, inspect
// planned and approved consensus records, and resolve pending approvals.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/planflow/demand-planner/internal/driver"
	"github.com/planflow/demand-planner/internal/store"
	"github.com/planflow/demand-planner/internal/workflow"
)

// #region server

// Server serves the planner HTTP API.
type Server struct {
	httpServer *http.Server
	handler    *Handler
}

// NewServer wires the router around the given engine and store.
func NewServer(addr string, eng *workflow.Engine, st *store.Store) *Server {
	h := &Handler{engine: eng, store: st}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/planned", h.ListPlanned)
		r.Get("/approved", h.ListApproved)
		r.Get("/pending", h.ListPending)
		r.Post("/decisions", h.ApplyDecision)
		r.Post("/runs", h.Run)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		handler: h,
	}
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	log.Printf("[API] listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// #endregion server

// #region handlers

// Handler implements the API endpoints.
type Handler struct {
	engine *workflow.Engine
	store  *store.Store
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "healthy", "service": "demand-planner"})
}

func (h *Handler) ListPlanned(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.ListPlanned()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": plannedDTOs(recs)})
}

func (h *Handler) ListApproved(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.ListApproved()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]approvedDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, newApprovedDTO(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": out})
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.ListPending()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": plannedDTOs(recs)})
}

// decisionRequest resolves one pending approval.
type decisionRequest struct {
	SKUID      string `json:"sku_id"`
	CustomerID string `json:"customer_id"`
	LocationID string `json:"location_id"`
	AsOfDate   string `json:"as_of_date"`
	Decision   string `json:"decision"`
}

func (h *Handler) ApplyDecision(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SKUID == "" || req.AsOfDate == "" {
		writeError(w, http.StatusBadRequest, "sku_id and as_of_date are required")
		return
	}
	key := driver.ContextKey{
		SKU:      req.SKUID,
		Customer: req.CustomerID,
		Location: req.LocationID,
		AsOfDate: req.AsOfDate,
	}
	rec, err := h.engine.ApplyDecision(key, req.Decision)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no planned record for that context")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": newPlannedDTO(rec)})
}

// runRequest starts a planner run, either from a free-form query or
// from explicit parameters.
type runRequest struct {
	Query         string   `json:"query"`
	SKUID         string   `json:"sku_id"`
	CustomerID    string   `json:"customer_id"`
	LocationID    string   `json:"location_id"`
	AsOfDate      string   `json:"as_of_date"`
	Scope         string   `json:"scope"`
	ABCClass      string   `json:"abc_class"`
	XYZClasses    []string `json:"xyz_classes"`
	MaxRetries    int      `json:"max_retries"`
	HumanDecision string   `json:"human_decision"`
}

func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" && req.SKUID == "" && req.Scope == "" {
		writeError(w, http.StatusBadRequest, "query, sku_id, or scope is required")
		return
	}

	res, err := h.engine.Run(r.Context(), workflow.RunParams{
		Query:         req.Query,
		SKU:           req.SKUID,
		Customer:      req.CustomerID,
		Location:      req.LocationID,
		AsOfDate:      req.AsOfDate,
		Scope:         req.Scope,
		ABCClass:      req.ABCClass,
		XYZClasses:    req.XYZClasses,
		MaxRetries:    req.MaxRetries,
		HumanDecision: req.HumanDecision,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newRunDTO(res))
}

// #endregion handlers

// #region dto

type plannedDTO struct {
	SKUID               string  `json:"sku_id"`
	CustomerID          string  `json:"customer_id"`
	LocationID          string  `json:"location_id"`
	AsOfDate            string  `json:"as_of_date"`
	BaselineForecast    float64 `json:"baseline_forecast"`
	TotalBoostFraction  float64 `json:"total_boost_fraction"`
	TotalBoostPercent   float64 `json:"total_boost_percent"`
	FinalDemandForecast float64 `json:"final_demand_forecast"`
	CriticDecision      string  `json:"critic_decision"`
	TookApprovalRoute   bool    `json:"took_approval_route"`
	ApprovalStatus      string  `json:"approval_status"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

func newPlannedDTO(rec store.PlannedRecord) plannedDTO {
	return plannedDTO{
		SKUID:               rec.Key.SKU,
		CustomerID:          rec.Key.Customer,
		LocationID:          rec.Key.Location,
		AsOfDate:            rec.Key.AsOfDate,
		BaselineForecast:    rec.BaselineForecast,
		TotalBoostFraction:  rec.TotalBoostFraction,
		TotalBoostPercent:   rec.TotalBoostPercent,
		FinalDemandForecast: rec.FinalDemandForecast,
		CriticDecision:      rec.CriticDecision,
		TookApprovalRoute:   rec.TookApprovalRoute,
		ApprovalStatus:      rec.ApprovalStatus,
		CreatedAt:           rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:           rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func plannedDTOs(recs []store.PlannedRecord) []plannedDTO {
	out := make([]plannedDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, newPlannedDTO(rec))
	}
	return out
}

type approvedDTO struct {
	SKUID               string  `json:"sku_id"`
	CustomerID          string  `json:"customer_id"`
	LocationID          string  `json:"location_id"`
	AsOfDate            string  `json:"as_of_date"`
	BaselineForecast    float64 `json:"baseline_forecast"`
	TotalBoostFraction  float64 `json:"total_boost_fraction"`
	TotalBoostPercent   float64 `json:"total_boost_percent"`
	FinalDemandForecast float64 `json:"final_demand_forecast"`
	ApprovedAt          string  `json:"approved_at"`
}

func newApprovedDTO(rec store.ApprovedRecord) approvedDTO {
	return approvedDTO{
		SKUID:               rec.Key.SKU,
		CustomerID:          rec.Key.Customer,
		LocationID:          rec.Key.Location,
		AsOfDate:            rec.Key.AsOfDate,
		BaselineForecast:    rec.BaselineForecast,
		TotalBoostFraction:  rec.TotalBoostFraction,
		TotalBoostPercent:   rec.TotalBoostPercent,
		FinalDemandForecast: rec.FinalDemandForecast,
		ApprovedAt:          rec.ApprovedAt.UTC().Format(time.RFC3339Nano),
	}
}

type runItemDTO struct {
	SKUID           string  `json:"sku_id"`
	CustomerID      string  `json:"customer_id"`
	LocationID      string  `json:"location_id"`
	AsOfDate        string  `json:"as_of_date"`
	Attempt         int     `json:"attempt"`
	Scenario        string  `json:"scenario"`
	TotalBoost      float64 `json:"total_boost_fraction"`
	FinalForecast   float64 `json:"final_demand_forecast"`
	CriticDecision  string  `json:"critic_decision"`
	Route           string  `json:"route"`
	ApprovalStatus  string  `json:"approval_status"`
	Finalized       bool    `json:"finalized"`
	Narrative       string  `json:"narrative"`
	NarrativeSource string  `json:"narrative_source"`
}

type runDTO struct {
	RunID              string       `json:"run_id"`
	NeedsClarification bool         `json:"needs_clarification"`
	Questions          []string     `json:"clarification_questions,omitempty"`
	Items              []runItemDTO `json:"items"`
	PendingApprovals   []string     `json:"pending_approvals,omitempty"`
}

func newRunDTO(res workflow.RunResult) runDTO {
	dto := runDTO{
		RunID:              res.RunID,
		NeedsClarification: res.Params.NeedsClarification,
		Questions:          res.Params.Questions,
	}
	for _, item := range res.Items {
		dto.Items = append(dto.Items, runItemDTO{
			SKUID:           item.Key.SKU,
			CustomerID:      item.Key.Customer,
			LocationID:      item.Key.Location,
			AsOfDate:        item.Key.AsOfDate,
			Attempt:         item.Attempt,
			Scenario:        item.Actor.Scenario,
			TotalBoost:      item.Actor.Forecast.TotalBoost,
			FinalForecast:   item.Actor.Forecast.FinalForecast,
			CriticDecision:  string(item.Review.Decision),
			Route:           item.Route,
			ApprovalStatus:  item.ApprovalStatus,
			Finalized:       item.Finalized,
			Narrative:       item.Actor.Narrative,
			NarrativeSource: item.Actor.NarrativeSource,
		})
	}
	for _, key := range res.PendingApprovals {
		dto.PendingApprovals = append(dto.PendingApprovals, key.String())
	}
	return dto
}

// #endregion dto

// #region json

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// #endregion json
