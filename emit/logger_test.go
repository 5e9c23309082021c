package emit

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":    LevelDebug,
		"DEBUG":    LevelDebug,
		"info":     LevelInfo,
		"warning":  LevelWarning,
		"error":    LevelError,
		"critical": LevelCritical,
		"bogus":    LevelInfo,
		"":         LevelInfo,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestLogger_WritesAboveConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newWriting(LevelWarning, &buf)

	logger.Debug("should be suppressed")
	logger.Info("should also be suppressed")
	logger.Warning("disk nearly full")
	logger.Error("disk full")

	output := buf.String()
	if strings.Contains(output, "should be suppressed") {
		t.Errorf("expected debug line to be filtered out, got: %s", output)
	}
	if strings.Contains(output, "should also be suppressed") {
		t.Errorf("expected info line to be filtered out, got: %s", output)
	}
	if !strings.Contains(output, "WARNING") || !strings.Contains(output, "disk nearly full") {
		t.Errorf("expected warning line to appear, got: %s", output)
	}
	if !strings.Contains(output, "ERROR") || !strings.Contains(output, "disk full") {
		t.Errorf("expected error line to appear, got: %s", output)
	}
}

func TestLogger_EmitsAllLevelsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := newWriting(LevelDebug, &buf)

	logger.Debug("d")
	logger.Info("i")
	logger.Warning("w")
	logger.Error("e")
	logger.Critical("c")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %v", len(lines), lines)
	}
	for _, tag := range []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"} {
		if !strings.Contains(buf.String(), tag) {
			t.Errorf("expected output to contain %s, got: %s", tag, buf.String())
		}
	}
}

func TestLogger_CloseIsNoOpWithoutARotatingFile(t *testing.T) {
	logger := newWriting(LevelInfo, &bytes.Buffer{})
	if err := logger.Close(); err != nil {
		t.Errorf("expected Close on a writer-backed Logger to be a no-op, got: %v", err)
	}
}
