package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/khjklujn/state-machine/machine"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_RecordAndQuery(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	started := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	completed := started.Add(2 * time.Second)

	rec := FromResults("ArchiveEncrypt", "item-1", started, completed, []machine.Result{
		machine.Success("ArchiveEncrypt.copy_to_staging"),
		machine.Success("ArchiveEncrypt.encrypt_file"),
		machine.Success("ArchiveEncrypt.report_results"),
	})

	if err := store.RecordRun(ctx, rec); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := store.RunsSince(ctx, started.Add(-time.Minute))
	if err != nil {
		t.Fatalf("RunsSince: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != rec.ID || got.Machine != "ArchiveEncrypt" || got.WorkItemID != "item-1" {
		t.Errorf("unexpected record: %+v", got)
	}
	if !got.Succeeded {
		t.Error("expected Succeeded == true")
	}
	if len(got.Results) != 3 {
		t.Fatalf("expected 3 result entries, got %d", len(got.Results))
	}
	if got.Results[0].Node != "ArchiveEncrypt.copy_to_staging" {
		t.Errorf("expected first result node to round-trip, got %q", got.Results[0].Node)
	}
}

func TestSQLiteStore_RunsSinceExcludesEarlierRuns(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	old := FromResults("M", "old", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC), []machine.Result{
		machine.Success("M.finish"),
	})
	recent := FromResults("M", "recent", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 6, 1, 0, 0, 1, 0, time.UTC), []machine.Result{
		machine.Success("M.finish"),
	})

	if err := store.RecordRun(ctx, old); err != nil {
		t.Fatalf("RecordRun(old): %v", err)
	}
	if err := store.RecordRun(ctx, recent); err != nil {
		t.Fatalf("RecordRun(recent): %v", err)
	}

	runs, err := store.RunsSince(ctx, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RunsSince: %v", err)
	}
	if len(runs) != 1 || runs[0].WorkItemID != "recent" {
		t.Errorf("expected only the recent run, got %+v", runs)
	}
}

func TestFromResults_CapturesFailure(t *testing.T) {
	started := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := FromResults("ArchiveEncrypt", "item-2", started, started.Add(time.Second), []machine.Result{
		machine.Success("ArchiveEncrypt.copy_to_staging"),
		machine.Failure("ArchiveEncrypt.encrypt_file", "gpg: no default key"),
	})

	if rec.Succeeded {
		t.Error("expected Succeeded == false when the run ends in Failure")
	}
	if rec.FailureNode != "ArchiveEncrypt.encrypt_file" {
		t.Errorf("expected FailureNode to name the failing node, got %q", rec.FailureNode)
	}
	if rec.FailureText != "gpg: no default key" {
		t.Errorf("expected FailureText to carry the message, got %q", rec.FailureText)
	}
	if rec.FailureCount != 1 {
		t.Errorf("expected FailureCount == 1, got %d", rec.FailureCount)
	}
}
