package secretstore

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/khjklujn/state-machine/config"
)

type nullLogger struct{}

func (nullLogger) Debug(string)    {}
func (nullLogger) Info(string)     {}
func (nullLogger) Warning(string)  {}
func (nullLogger) Error(string)    {}
func (nullLogger) Critical(string) {}

func newTestSecrets(t *testing.T) *config.Secrets {
	t.Helper()
	dir := t.TempDir()
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i)
	}
	keyPath := filepath.Join(dir, "secrets.key")
	if err := os.WriteFile(keyPath, []byte(base64.StdEncoding.EncodeToString(raw)), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	secrets, err := config.LoadSecrets(filepath.Join(dir, "secrets.yaml"), keyPath)
	if err != nil {
		t.Fatalf("LoadSecrets: %v", err)
	}
	return secrets
}

func TestStore_SetThenGetRoundTrips(t *testing.T) {
	secrets := newTestSecrets(t)
	store := Bind(secrets)(nullLogger{})

	if err := store.Set("archive_encrypt", "gpg_passphrase", "correct horse battery staple"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := store.Get("archive_encrypt", "gpg_passphrase")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected ok == true after Set")
	}
	if got != "correct horse battery staple" {
		t.Errorf("expected the stored secret to round-trip, got %q", got)
	}
}

func TestStore_GetMissingReturnsNotOK(t *testing.T) {
	secrets := newTestSecrets(t)
	store := Bind(secrets)(nullLogger{})

	_, ok, err := store.Get("archive_encrypt", "nonexistent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected ok == false for a missing secret")
	}
}
