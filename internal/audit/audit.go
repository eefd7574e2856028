// Package audit records workflow transitions so runs can be reconstructed
// after the fact: which step fired, for which context, with what outcome.
package audit

import (
	"database/sql"
	"fmt"
	"time"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS workflow_audit (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       TEXT NOT NULL,
	sku_id       TEXT NOT NULL,
	customer_id  TEXT,
	location_id  TEXT,
	as_of_date   TEXT,
	step         TEXT NOT NULL,
	attempt      INTEGER NOT NULL DEFAULT 1,
	decision     TEXT,
	detail_json  TEXT,
	created_at   TEXT NOT NULL
);
`

// #endregion schema

// #region entry

// Entry is one audited workflow transition.
type Entry struct {
	RunID      string
	SKU        string
	Customer   string
	Location   string
	AsOfDate   string
	Step       string
	Attempt    int
	Decision   string
	DetailJSON string
	CreatedAt  time.Time
}

// #endregion entry

// #region log

// EnsureSchema creates the audit table if missing.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrate audit: %w", err)
	}
	return nil
}

// LogStep writes an audit entry to the workflow_audit table.
func LogStep(db *sql.DB, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.Attempt == 0 {
		entry.Attempt = 1
	}

	_, err := db.Exec(
		`INSERT INTO workflow_audit (run_id, sku_id, customer_id, location_id, as_of_date, step, attempt, decision, detail_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.SKU,
		nullIfEmpty(entry.Customer),
		nullIfEmpty(entry.Location),
		nullIfEmpty(entry.AsOfDate),
		entry.Step,
		entry.Attempt,
		nullIfEmpty(entry.Decision),
		nullIfEmpty(entry.DetailJSON),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log step: %w", err)
	}
	return nil
}

// ListByRun returns all entries for a run, oldest first.
func ListByRun(db *sql.DB, runID string) ([]Entry, error) {
	rows, err := db.Query(
		`SELECT run_id, sku_id, customer_id, location_id, as_of_date, step, attempt, decision, detail_json, created_at
		 FROM workflow_audit WHERE run_id = ? ORDER BY id ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var customer, location, date, decision, detail sql.NullString
		var createdStr string
		if err := rows.Scan(&e.RunID, &e.SKU, &customer, &location, &date, &e.Step, &e.Attempt, &decision, &detail, &createdStr); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		e.Customer = customer.String
		e.Location = location.String
		e.AsOfDate = date.String
		e.Decision = decision.String
		e.DetailJSON = detail.String
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion log

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
