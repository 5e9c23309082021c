// Package audit persists a forward-only record of completed machine runs,
// grounded in SPEC_FULL.md §4.9: reporting/retention infrastructure, never
// checkpointing, never read by the core, never used to resume a run.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/khjklujn/state-machine/machine"
)

// ErrNotFound reports that a lookup found no matching record. No Store
// method in this package returns it: RunsSince reports no matches as an
// empty result.
var ErrNotFound = errors.New("audit: not found")

// Record is one completed machine run: who it was, when it finished, and
// its full Result log, flattened to strings so it can be written without
// either backend needing to know about machine.Result's internals.
type Record struct {
	ID           string
	Machine      string
	WorkItemID   string
	StartedAt    time.Time
	CompletedAt  time.Time
	Succeeded    bool
	FailureCount int
	FailureNode  string
	FailureText  string
	Results      []ResultEntry
}

// ResultEntry is one Result in a run's log, in execution order.
type ResultEntry struct {
	Node    string
	Success bool
	Message string
}

// FromResults builds a Record from a completed run's Result log. machineName
// and workItemID identify the run; started/completed bound its wall-clock
// duration.
func FromResults(machineName, workItemID string, started, completed time.Time, results []machine.Result) Record {
	rec := Record{
		ID:          uuid.NewString(),
		Machine:     machineName,
		WorkItemID:  workItemID,
		StartedAt:   started,
		CompletedAt: completed,
		Succeeded:   true,
		Results:     make([]ResultEntry, len(results)),
	}

	for i, r := range results {
		rec.Results[i] = ResultEntry{Node: r.Node(), Success: r.IsSuccess(), Message: r.Message()}
		if r.IsFailure() {
			rec.FailureCount++
		}
	}

	if len(results) > 0 {
		last := results[len(results)-1]
		if last.IsFailure() {
			rec.Succeeded = false
			rec.FailureNode = last.Node()
			rec.FailureText = last.Message()
		}
	}

	return rec
}

func (r Record) marshalResults() (string, error) {
	data, err := json.Marshal(r.Results)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalResults(data string) ([]ResultEntry, error) {
	if data == "" {
		return nil, nil
	}
	var entries []ResultEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Store is the narrow persistence contract SPEC_FULL.md §4.9 describes:
// write exactly once per run, read back by completion time for reporting.
type Store interface {
	// RecordRun persists rec. Called exactly once, after a run's driver
	// loop returns.
	RecordRun(ctx context.Context, rec Record) error

	// RunsSince returns every Record completed at or after since, ordered
	// by CompletedAt ascending.
	RunsSince(ctx context.Context, since time.Time) ([]Record, error)
}
