// Package store persists planned and approved consensus demand records in
// SQLite. Loads normalize legacy rows that stored the boost percent as a
// fraction and dedupe repeated context keys keeping the newest row.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/planflow/demand-planner/internal/driver"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS planned_consensus (
	id                    INTEGER PRIMARY KEY AUTOINCREMENT,
	sku_id                TEXT NOT NULL,
	customer_id           TEXT NOT NULL,
	location_id           TEXT NOT NULL,
	as_of_date            TEXT NOT NULL,
	baseline_forecast     REAL,
	total_boost_fraction  REAL,
	total_boost_percent   REAL,
	final_demand_forecast REAL,
	critic_decision       TEXT,
	took_approval_route   INTEGER NOT NULL DEFAULT 0,
	approval_status       TEXT NOT NULL,
	created_at            TEXT NOT NULL,
	updated_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS approved_consensus (
	id                    INTEGER PRIMARY KEY AUTOINCREMENT,
	sku_id                TEXT NOT NULL,
	customer_id           TEXT NOT NULL,
	location_id           TEXT NOT NULL,
	as_of_date            TEXT NOT NULL,
	baseline_forecast     REAL,
	total_boost_fraction  REAL,
	total_boost_percent   REAL,
	final_demand_forecast REAL,
	approved_at           TEXT NOT NULL
);
`

// #endregion schema

// #region types

// Approval statuses a planned record moves through.
const (
	ApprovalPending     = "pending"
	ApprovalApproved    = "approved"
	ApprovalRejected    = "rejected"
	ApprovalNotRequired = "not_required"
)

// ErrNotFound signals that no record exists for a context key.
var ErrNotFound = errors.New("record not found")

// PlannedRecord is one planned consensus forecast, approved or not.
type PlannedRecord struct {
	Key                 driver.ContextKey
	BaselineForecast    float64
	TotalBoostFraction  float64
	TotalBoostPercent   float64
	FinalDemandForecast float64
	CriticDecision      string
	TookApprovalRoute   bool
	ApprovalStatus      string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ApprovedRecord is a finalized, human-approved consensus forecast.
type ApprovedRecord struct {
	Key                 driver.ContextKey
	BaselineForecast    float64
	TotalBoostFraction  float64
	TotalBoostPercent   float64
	FinalDemandForecast float64
	ApprovedAt          time.Time
}

// Store manages consensus demand records in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion types

// #region constructor

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. audit).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion constructor

// #region upsert-planned

// UpsertPlanned writes a planned record, replacing any existing row for the
// same context key. created_at of the first write is preserved.
func (s *Store) UpsertPlanned(rec PlannedRecord) (PlannedRecord, error) {
	rec.Key = rec.Key.Normalize()
	if rec.ApprovalStatus == "" {
		rec.ApprovalStatus = ApprovalPending
	}
	now := time.Now().UTC()
	rec.UpdatedAt = now

	tx, err := s.db.Begin()
	if err != nil {
		return PlannedRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var createdStr string
	err = tx.QueryRow(
		`SELECT created_at FROM planned_consensus
		 WHERE sku_id = ? AND customer_id = ? AND location_id = ? AND as_of_date = ?
		 ORDER BY updated_at DESC LIMIT 1`,
		rec.Key.SKU, rec.Key.Customer, rec.Key.Location, rec.Key.AsOfDate,
	).Scan(&createdStr)

	switch {
	case err == nil:
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		_, err = tx.Exec(
			`UPDATE planned_consensus
			 SET baseline_forecast = ?, total_boost_fraction = ?, total_boost_percent = ?,
			     final_demand_forecast = ?, critic_decision = ?, took_approval_route = ?,
			     approval_status = ?, updated_at = ?
			 WHERE sku_id = ? AND customer_id = ? AND location_id = ? AND as_of_date = ?`,
			rec.BaselineForecast, rec.TotalBoostFraction, rec.TotalBoostPercent,
			rec.FinalDemandForecast, rec.CriticDecision, boolToInt(rec.TookApprovalRoute),
			rec.ApprovalStatus, now.Format(time.RFC3339Nano),
			rec.Key.SKU, rec.Key.Customer, rec.Key.Location, rec.Key.AsOfDate,
		)
		if err != nil {
			return PlannedRecord{}, fmt.Errorf("update planned: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		rec.CreatedAt = now
		_, err = tx.Exec(
			`INSERT INTO planned_consensus
			 (sku_id, customer_id, location_id, as_of_date, baseline_forecast,
			  total_boost_fraction, total_boost_percent, final_demand_forecast,
			  critic_decision, took_approval_route, approval_status, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.Key.SKU, rec.Key.Customer, rec.Key.Location, rec.Key.AsOfDate,
			rec.BaselineForecast, rec.TotalBoostFraction, rec.TotalBoostPercent,
			rec.FinalDemandForecast, rec.CriticDecision, boolToInt(rec.TookApprovalRoute),
			rec.ApprovalStatus, now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
		)
		if err != nil {
			return PlannedRecord{}, fmt.Errorf("insert planned: %w", err)
		}
	default:
		return PlannedRecord{}, fmt.Errorf("lookup planned: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return PlannedRecord{}, fmt.Errorf("commit: %w", err)
	}
	return rec, nil
}

// #endregion upsert-planned

// #region approval-status

// SetApprovalStatus updates only the approval status of an existing planned
// record. Returns ErrNotFound when no row matches the key.
func (s *Store) SetApprovalStatus(key driver.ContextKey, status string) error {
	key = key.Normalize()
	res, err := s.db.Exec(
		`UPDATE planned_consensus SET approval_status = ?, updated_at = ?
		 WHERE sku_id = ? AND customer_id = ? AND location_id = ? AND as_of_date = ?`,
		status, time.Now().UTC().Format(time.RFC3339Nano),
		key.SKU, key.Customer, key.Location, key.AsOfDate,
	)
	if err != nil {
		return fmt.Errorf("set approval status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("planned record %s: %w", key, ErrNotFound)
	}
	return nil
}

// #endregion approval-status

// #region list-planned

// ListPlanned returns all planned records, legacy-normalized, deduped per
// context key (newest updated_at wins), sorted by date, location, customer,
// and SKU.
func (s *Store) ListPlanned() ([]PlannedRecord, error) {
	rows, err := s.db.Query(
		`SELECT sku_id, customer_id, location_id, as_of_date, baseline_forecast,
		        total_boost_fraction, total_boost_percent, final_demand_forecast,
		        critic_decision, took_approval_route, approval_status, created_at, updated_at
		 FROM planned_consensus`,
	)
	if err != nil {
		return nil, fmt.Errorf("list planned: %w", err)
	}
	defer rows.Close()

	type keyed struct {
		rec   PlannedRecord
		stamp string
	}
	latest := map[driver.ContextKey]keyed{}

	for rows.Next() {
		var rec PlannedRecord
		var baseline, fraction, percent, final sql.NullFloat64
		var decision sql.NullString
		var tookRoute int
		var createdStr, updatedStr string

		if err := rows.Scan(
			&rec.Key.SKU, &rec.Key.Customer, &rec.Key.Location, &rec.Key.AsOfDate,
			&baseline, &fraction, &percent, &final,
			&decision, &tookRoute, &rec.ApprovalStatus, &createdStr, &updatedStr,
		); err != nil {
			return nil, fmt.Errorf("scan planned row: %w", err)
		}

		rec.BaselineForecast = baseline.Float64
		rec.TotalBoostFraction, rec.TotalBoostPercent = normalizeBoost(fraction, percent)
		rec.FinalDemandForecast = final.Float64
		rec.CriticDecision = decision.String
		rec.TookApprovalRoute = tookRoute != 0
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedStr)

		// Timestamps are RFC3339Nano UTC, so string order is time order.
		if existing, ok := latest[rec.Key]; !ok || updatedStr >= existing.stamp {
			latest[rec.Key] = keyed{rec: rec, stamp: updatedStr}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate planned: %w", err)
	}

	out := make([]PlannedRecord, 0, len(latest))
	for _, k := range latest {
		out = append(out, k.rec)
	}
	sortByContext(out, func(r PlannedRecord) driver.ContextKey { return r.Key })
	return out, nil
}

// GetPlanned returns the newest planned record for a context key.
func (s *Store) GetPlanned(key driver.ContextKey) (PlannedRecord, error) {
	key = key.Normalize()
	all, err := s.ListPlanned()
	if err != nil {
		return PlannedRecord{}, err
	}
	for _, rec := range all {
		if rec.Key == key {
			return rec, nil
		}
	}
	return PlannedRecord{}, fmt.Errorf("planned record %s: %w", key, ErrNotFound)
}

// ListPending returns planned records still awaiting a human decision.
func (s *Store) ListPending() ([]PlannedRecord, error) {
	all, err := s.ListPlanned()
	if err != nil {
		return nil, err
	}
	var out []PlannedRecord
	for _, rec := range all {
		if rec.ApprovalStatus == ApprovalPending {
			out = append(out, rec)
		}
	}
	return out, nil
}

// #endregion list-planned

// #region approved

// SaveApproved upserts an approved record by context key.
func (s *Store) SaveApproved(rec ApprovedRecord) (ApprovedRecord, error) {
	rec.Key = rec.Key.Normalize()
	if rec.ApprovedAt.IsZero() {
		rec.ApprovedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return ApprovedRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE approved_consensus
		 SET baseline_forecast = ?, total_boost_fraction = ?, total_boost_percent = ?,
		     final_demand_forecast = ?, approved_at = ?
		 WHERE sku_id = ? AND customer_id = ? AND location_id = ? AND as_of_date = ?`,
		rec.BaselineForecast, rec.TotalBoostFraction, rec.TotalBoostPercent,
		rec.FinalDemandForecast, rec.ApprovedAt.Format(time.RFC3339Nano),
		rec.Key.SKU, rec.Key.Customer, rec.Key.Location, rec.Key.AsOfDate,
	)
	if err != nil {
		return ApprovedRecord{}, fmt.Errorf("update approved: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return ApprovedRecord{}, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		_, err = tx.Exec(
			`INSERT INTO approved_consensus
			 (sku_id, customer_id, location_id, as_of_date, baseline_forecast,
			  total_boost_fraction, total_boost_percent, final_demand_forecast, approved_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.Key.SKU, rec.Key.Customer, rec.Key.Location, rec.Key.AsOfDate,
			rec.BaselineForecast, rec.TotalBoostFraction, rec.TotalBoostPercent,
			rec.FinalDemandForecast, rec.ApprovedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return ApprovedRecord{}, fmt.Errorf("insert approved: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ApprovedRecord{}, fmt.Errorf("commit: %w", err)
	}
	return rec, nil
}

// ListApproved returns approved records, legacy-normalized, deduped per key
// (newest approved_at wins), sorted by date, location, customer, and SKU.
func (s *Store) ListApproved() ([]ApprovedRecord, error) {
	rows, err := s.db.Query(
		`SELECT sku_id, customer_id, location_id, as_of_date, baseline_forecast,
		        total_boost_fraction, total_boost_percent, final_demand_forecast, approved_at
		 FROM approved_consensus`,
	)
	if err != nil {
		return nil, fmt.Errorf("list approved: %w", err)
	}
	defer rows.Close()

	type keyed struct {
		rec   ApprovedRecord
		stamp string
	}
	latest := map[driver.ContextKey]keyed{}

	for rows.Next() {
		var rec ApprovedRecord
		var baseline, fraction, percent, final sql.NullFloat64
		var approvedStr string

		if err := rows.Scan(
			&rec.Key.SKU, &rec.Key.Customer, &rec.Key.Location, &rec.Key.AsOfDate,
			&baseline, &fraction, &percent, &final, &approvedStr,
		); err != nil {
			return nil, fmt.Errorf("scan approved row: %w", err)
		}

		rec.BaselineForecast = baseline.Float64
		rec.TotalBoostFraction, rec.TotalBoostPercent = normalizeBoost(fraction, percent)
		rec.FinalDemandForecast = final.Float64
		rec.ApprovedAt, _ = time.Parse(time.RFC3339Nano, approvedStr)

		if existing, ok := latest[rec.Key]; !ok || approvedStr >= existing.stamp {
			latest[rec.Key] = keyed{rec: rec, stamp: approvedStr}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate approved: %w", err)
	}

	out := make([]ApprovedRecord, 0, len(latest))
	for _, k := range latest {
		out = append(out, k.rec)
	}
	sortByContext(out, func(r ApprovedRecord) driver.ContextKey { return r.Key })
	return out, nil
}

// #endregion approved

// #region helpers

// normalizeBoost fixes legacy rows where the percent column held a fraction
// (e.g. -0.3 instead of -30) and no explicit fraction was stored.
func normalizeBoost(fraction, percent sql.NullFloat64) (frac, pct float64) {
	if fraction.Valid {
		return fraction.Float64, percent.Float64
	}
	if percent.Valid && percent.Float64 >= -1.0 && percent.Float64 <= 1.0 {
		frac = percent.Float64
		return frac, math.Round(frac*100*100) / 100
	}
	return 0, percent.Float64
}

func sortByContext[T any](items []T, keyOf func(T) driver.ContextKey) {
	sort.Slice(items, func(i, j int) bool {
		a, b := keyOf(items[i]), keyOf(items[j])
		if a.AsOfDate != b.AsOfDate {
			return a.AsOfDate < b.AsOfDate
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		if a.Customer != b.Customer {
			return a.Customer < b.Customer
		}
		return a.SKU < b.SKU
	})
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// #endregion helpers
