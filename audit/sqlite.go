package audit

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a single-file, single-process audit Store, grounded on the
// teacher's graph/store.SQLiteStore: WAL mode for concurrent readers, a
// busy timeout instead of failing immediately on a locked database, and
// schema creation on first use rather than a separate migration step.
//
// Intended for single-node deployments; MySQLStore is the centralized
// alternative for reporting across pool workers running on separate hosts.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (creating if necessary) the SQLite database at path
// and ensures the audit_runs schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: opening %s: %w", path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("audit: %s: %w", pragma, err)
		}
	}

	store := &SQLiteStore{db: db}
	if err := store.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) createTables(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS audit_runs (
			id TEXT PRIMARY KEY,
			machine TEXT NOT NULL,
			work_item_id TEXT NOT NULL,
			started_at TIMESTAMP NOT NULL,
			completed_at TIMESTAMP NOT NULL,
			succeeded INTEGER NOT NULL,
			failure_count INTEGER NOT NULL DEFAULT 0,
			failure_node TEXT NOT NULL DEFAULT '',
			failure_text TEXT NOT NULL DEFAULT '',
			results TEXT NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("audit: creating audit_runs: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_audit_runs_completed_at ON audit_runs(completed_at)"); err != nil {
		return fmt.Errorf("audit: creating index: %w", err)
	}
	return nil
}

// RecordRun persists rec.
func (s *SQLiteStore) RecordRun(ctx context.Context, rec Record) error {
	results, err := rec.marshalResults()
	if err != nil {
		return fmt.Errorf("audit: marshaling results: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
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
func (s *SQLiteStore) RunsSince(ctx context.Context, since time.Time) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
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

// Close releases the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
