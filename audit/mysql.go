package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a centralized audit Store, grounded on the teacher's
// graph/store.MySQLStore: pooled connections with bounded lifetime, a ping
// at construction time to fail fast on a bad DSN, and the same
// create-tables-if-missing posture as SQLiteStore. Intended for deployments
// where multiple pool workers, possibly on separate hosts, need a shared
// view of completed runs for reporting.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore opens a connection pool to dsn and ensures the audit_runs
// schema exists.
//
// dsn follows the go-sql-driver/mysql format, e.g.
// "user:pass@tcp(127.0.0.1:3306)/statemachine?parseTime=true". parseTime is
// required for started_at/completed_at to scan into time.Time directly.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("audit: opening mysql: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("audit: pinging mysql: %w", err)
	}

	store := &MySQLStore{db: db}
	if err := store.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (m *MySQLStore) createTables(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS audit_runs (
			id VARCHAR(36) PRIMARY KEY,
			machine VARCHAR(255) NOT NULL,
			work_item_id VARCHAR(255) NOT NULL,
			started_at TIMESTAMP(6) NOT NULL,
			completed_at TIMESTAMP(6) NOT NULL,
			succeeded TINYINT(1) NOT NULL,
			failure_count INT NOT NULL DEFAULT 0,
			failure_node VARCHAR(255) NOT NULL DEFAULT '',
			failure_text TEXT NOT NULL,
			results JSON NOT NULL,
			INDEX idx_audit_runs_completed_at (completed_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`
	if _, err := m.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("audit: creating audit_runs: %w", err)
	}
	return nil
}

// RecordRun persists rec.
func (m *MySQLStore) RecordRun(ctx context.Context, rec Record) error {
	results, err := rec.marshalResults()
	if err != nil {
		return fmt.Errorf("audit: marshaling results: %w", err)
	}

	_, err = m.db.ExecContext(ctx, `
		INSERT INTO audit_runs (id, machine, work_item_id, started_at, completed_at, succeeded, failure_count, failure_node, failure_text, results)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Machine, rec.WorkItemID, rec.StartedAt, rec.CompletedAt, boolToInt(rec.Succeeded), rec.FailureCount, rec.FailureNode, rec.FailureText, results)
	if err != nil {
		return fmt.Errorf("audit: recording run %s: %w", rec.ID, err)
	}
	return nil
}

// RunsSince returns every run completed at or after since, ordered by
// completion time ascending.
func (m *MySQLStore) RunsSince(ctx context.Context, since time.Time) ([]Record, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, machine, work_item_id, started_at, completed_at, succeeded, failure_count, failure_node, failure_text, results
		FROM audit_runs
		WHERE completed_at >= ?
		ORDER BY completed_at ASC
	`, since)
	if err != nil {
		return nil, fmt.Errorf("audit: querying runs since %s: %w", since, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var succeeded int
		var resultsJSON string
		if err := rows.Scan(&rec.ID, &rec.Machine, &rec.WorkItemID, &rec.StartedAt, &rec.CompletedAt, &succeeded, &rec.FailureCount, &rec.FailureNode, &rec.FailureText, &resultsJSON); err != nil {
			return nil, fmt.Errorf("audit: scanning row: %w", err)
		}
		rec.Succeeded = succeeded != 0
		entries, err := unmarshalResults(resultsJSON)
		if err != nil {
			return nil, fmt.Errorf("audit: unmarshaling results for %s: %w", rec.ID, err)
		}
		rec.Results = entries
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the connection pool.
func (m *MySQLStore) Close() error {
	return m.db.Close()
}
