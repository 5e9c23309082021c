// Package shell runs external commands on the pipeline's behalf, grounded
// on the original implementation's repository/shell/command.py: capture
// stdout/stderr, time the call, and treat a non-zero exit code as failure.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/khjklujn/state-machine/machine"
)

// Runner executes external commands with a logger bound via
// machine.Binder, matching the original's AbstractRepository contract
// (every adapter action logs its own start/complete/runtime).
type Runner struct {
	logger machine.Logger
}

// New constructs a Runner bound to logger. Its signature matches
// machine.Bind's constructor parameter: machine.Bind(binder, shell.New).
func New(logger machine.Logger) *Runner {
	return &Runner{logger: logger}
}

// Result is what a command produced: its separately captured stdout and
// stderr, mirroring those fields of Python's subprocess.CompletedProcess.
// The exit status is not recorded here; a non-zero exit is reported through
// Run's error.
type Result struct {
	Stdout string
	Stderr string
}

// Run executes name with args, optionally under cwd, with extra
// environment variables appended to the process's inherited environment,
// and stdin piped from input. It returns an error wrapping the captured
// stderr if the command exits non-zero — the same "raise on non-zero exit
// code" behavior as Command.execute.
func (r *Runner) Run(ctx context.Context, name string, args []string, opts ...Option) (Result, error) {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = cfg.cwd
	if len(cfg.env) > 0 {
		cmd.Env = append(os.Environ(), cfg.env...)
	}
	if cfg.stdin != "" {
		cmd.Stdin = bytes.NewBufferString(cfg.stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	r.logger.Debug(fmt.Sprintf("%s %v - started", name, args))
	err := cmd.Run()
	runtime := time.Since(start)

	if err != nil {
		r.logger.Debug(fmt.Sprintf("%s %v - error - runtime=%s", name, args, runtime))
		return Result{Stdout: stdout.String(), Stderr: stderr.String()},
			fmt.Errorf("shell: %s %v: %s: %w", name, args, stderr.String(), err)
	}

	r.logger.Debug(fmt.Sprintf("%s %v - completed - runtime=%s", name, args, runtime))
	return Result{Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// Option configures a single Run call.
type Option func(*options)

type options struct {
	cwd   string
	env   []string
	stdin string
}

// WithDir runs the command with its working directory set to dir.
func WithDir(dir string) Option {
	return func(o *options) { o.cwd = dir }
}

// WithEnv appends extra "KEY=VALUE" entries to the command's environment,
// for adapters that need to set e.g. PGSSLMODE or PGPASSWORD the way
// pg_dump.py and psql.py do.
func WithEnv(env ...string) Option {
	return func(o *options) { o.env = append(o.env, env...) }
}

// WithStdin pipes input to the command's standard input, for adapters that
// automate an interactive prompt (psql.py's password challenge).
func WithStdin(input string) Option {
	return func(o *options) { o.stdin = input }
}
