package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khjklujn/state-machine/machine"
)

// RetentionCandidate is one row eligible for deletion under a retention
// policy: an archived object's identifier and the time it was archived.
type RetentionCandidate struct {
	ID         string
	ArchivedAt time.Time
}

// Querier runs the structured queries the pipeline needs against a live
// connection pool — retention-sweep candidate selection and
// connection-health checks — rather than shelling out to a CLI tool the
// way Dump does for the bulk dump/restore operations.
type Querier struct {
	pool   *pgxpool.Pool
	logger machine.Logger
}

// NewQuerier opens a pgx connection pool against dsn. Its constructor shape
// differs from the other adapters' New(logger) because a pool additionally
// needs a DSN and must be closed; wire it up once at pipeline start and
// bind its methods directly rather than through machine.Bind.
func NewQuerier(ctx context.Context, logger machine.Logger, dsn string) (*Querier, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: opening pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: pinging: %w", err)
	}
	return &Querier{pool: pool, logger: logger}, nil
}

// Healthy reports whether the pool can currently reach the server.
func (q *Querier) Healthy(ctx context.Context) error {
	if err := q.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check: %w", err)
	}
	return nil
}

// RetentionCandidates returns archived_objects rows older than olderThan,
// for a retention sweep to consider for deletion.
func (q *Querier) RetentionCandidates(ctx context.Context, olderThan time.Time) ([]RetentionCandidate, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT id, archived_at
		FROM archived_objects
		WHERE archived_at < $1
		ORDER BY archived_at ASC
	`, olderThan)
	if err != nil {
		return nil, fmt.Errorf("postgres: querying retention candidates: %w", err)
	}
	defer rows.Close()

	var candidates []RetentionCandidate
	for rows.Next() {
		var c RetentionCandidate
		if err := rows.Scan(&c.ID, &c.ArchivedAt); err != nil {
			return nil, fmt.Errorf("postgres: scanning retention candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating retention candidates: %w", err)
	}
	q.logger.Debug(fmt.Sprintf("retention sweep found %d candidates older than %s", len(candidates), olderThan))
	return candidates, nil
}

// Close releases the connection pool.
func (q *Querier) Close() {
	q.pool.Close()
}
