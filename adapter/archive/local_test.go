package archive

import (
	"bytes"
	"context"
	"io"
	"testing"
)

type nullLogger struct{}

func (nullLogger) Debug(string)    {}
func (nullLogger) Info(string)     {}
func (nullLogger) Warning(string)  {}
func (nullLogger) Error(string)    {}
func (nullLogger) Critical(string) {}

func TestLocalStore_PutThenGetRoundTrips(t *testing.T) {
	store := NewLocalStore(t.TempDir(), nullLogger{})
	ctx := context.Background()

	if err := store.Put(ctx, "2026/07/30/archive.gpg", bytes.NewBufferString("payload")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rc, err := store.Get(ctx, "2026/07/30/archive.gpg")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("expected %q, got %q", "payload", got)
	}
}

func TestLocalStore_GetMissingKeyReturnsError(t *testing.T) {
	store := NewLocalStore(t.TempDir(), nullLogger{})
	if _, err := store.Get(context.Background(), "nope"); err == nil {
		t.Fatal("expected an error for a missing key")
	}
}
