// Package emit provides the logging sinks a running machine writes to. The
// package name and its sink-oriented shape (construct once from config, hand
// the result to every machine instance) follows the teacher's own
// graph/emit subpackage; the five-level contract it implements
// (Debug/Info/Warning/Error/Critical) follows the original implementation's
// Logger (state_machine/logger.py).
package emit

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is a logging severity, ordered least to most severe.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

// ParseLevel maps a config string ("debug", "info", "warning", "error",
// "critical") to a Level, defaulting to LevelInfo for anything else — the
// same fallback the original implementation's Logger.__init__ applies when
// master_config.logging.level matches none of its recognized strings.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warning":
		return LevelWarning
	case "error":
		return LevelError
	case "critical":
		return LevelCritical
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "INFO"
	}
}

// Config carries the settings the original implementation reads from
// config.yaml's "logging" section (state_machine/logger_model.py): the
// minimum level to emit, whether to also write to the controlling terminal,
// and the rotating-file sink's path, backup count, and rotation cadence.
type Config struct {
	// Level is the minimum severity this sink will write.
	Level Level

	// Path is the directory rotated log files are written under. The file
	// name itself is "<Name>.log" where Name is the value passed to New.
	Path string

	// MaxSizeMB is the size, in megabytes, a log file may reach before
	// lumberjack rotates it. The original's TimedRotatingFileHandler rotates
	// on a calendar cadence; this Logger rotates on size only, and
	// MaxAgeDays below governs how long rotated files are kept, not when
	// rotation happens.
	MaxSizeMB int

	// MaxAgeDays approximates the original's day/week/midnight rotation
	// argument: the number of days a rotated file is kept before deletion.
	MaxAgeDays int

	// MaxBackups is the number of rotated files to retain, matching the
	// original's backup_count.
	MaxBackups int

	// IncludeTerminal mirrors include_terminal: when true, every line is
	// also written to os.Stdout in addition to the rotating file.
	IncludeTerminal bool
}

// Logger writes level-tagged, timestamped lines to a rotating file and,
// optionally, to the terminal. It implements machine.Logger without
// importing the machine package, so adapter and pipeline code can depend on
// emit without machine needing to know emit exists.
//
// A Logger is safe for concurrent use: log.Logger serializes writes
// internally, and Config is read-only after New returns.
type Logger struct {
	level  Level
	stdlib *log.Logger
	file   *lumberjack.Logger
}

// New builds a Logger named name (used as the log file's base name) from
// cfg. The rotating sink is always created; IncludeTerminal additionally
// fans every line out to os.Stdout.
func New(name string, cfg Config) *Logger {
	file := &lumberjack.Logger{
		Filename:   fmt.Sprintf("%s/%s.log", strings.TrimRight(cfg.Path, "/"), name),
		MaxSize:    orDefault(cfg.MaxSizeMB, 100),
		MaxAge:     orDefault(cfg.MaxAgeDays, 14),
		MaxBackups: orDefault(cfg.MaxBackups, 7),
		Compress:   true,
	}

	var out io.Writer = file
	if cfg.IncludeTerminal {
		out = io.MultiWriter(file, os.Stdout)
	}

	return &Logger{
		level:  cfg.Level,
		stdlib: log.New(out, "", 0),
		file:   file,
	}
}

// newWriting builds a Logger around an arbitrary writer instead of a
// rotating file, for tests that need to inspect output without touching
// disk.
func newWriting(level Level, w io.Writer) *Logger {
	return &Logger{level: level, stdlib: log.New(w, "", 0)}
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

// Close flushes and closes the underlying rotating file. Call it once, at
// process shutdown. A Logger built around an arbitrary writer (newWriting,
// test-only) has no rotating file to close, so Close is a no-op for it.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) write(level Level, message string) {
	if level < l.level {
		return
	}
	l.stdlib.Printf("%s %-8s %s", time.Now().UTC().Format(time.RFC3339), level, message)
}

func (l *Logger) Debug(message string)    { l.write(LevelDebug, message) }
func (l *Logger) Info(message string)     { l.write(LevelInfo, message) }
func (l *Logger) Warning(message string)  { l.write(LevelWarning, message) }
func (l *Logger) Error(message string)    { l.write(LevelError, message) }
func (l *Logger) Critical(message string) { l.write(LevelCritical, message) }
