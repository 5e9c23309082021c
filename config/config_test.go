package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestFromFile_ParsesPipelinesAndLogging(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
logging:
  level: debug
  include_terminal: true
  path: /var/log/statemachine
  max_backups: 5

pipelines:
  archive_encrypt:
    worker_pool_size: 4
    settings:
      staging_dir: /tmp/staging
      gpg_key_name: ops@example.com
`)

	cfg, err := FromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Logging.Level != "debug" || !cfg.Logging.IncludeTerminal {
		t.Errorf("unexpected logging section: %+v", cfg.Logging)
	}

	p, ok := cfg.Pipeline("archive_encrypt")
	if !ok {
		t.Fatal("expected pipeline \"archive_encrypt\" to be present")
	}
	if p.WorkerPoolSize != 4 {
		t.Errorf("expected worker_pool_size = 4, got %d", p.WorkerPoolSize)
	}
	if p.Settings["gpg_key_name"] != "ops@example.com" {
		t.Errorf("expected gpg_key_name setting to round-trip, got %+v", p.Settings)
	}

	if _, ok := cfg.Pipeline("nonexistent"); ok {
		t.Error("expected Pipeline(nonexistent) to report !ok")
	}
}

func TestFind_WalksUpDirectoryTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config.yaml", "logging:\n  level: info\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := Find(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != filepath.Join(root, "config.yaml") {
		t.Errorf("expected to find %s, got %s", filepath.Join(root, "config.yaml"), found)
	}
}

func TestFind_NotFound(t *testing.T) {
	dir := t.TempDir()
	if _, err := Find(dir); err == nil {
		t.Fatal("expected an error when no config.yaml exists above dir")
	}
}
