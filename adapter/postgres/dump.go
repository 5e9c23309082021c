// Package postgres wraps PostgreSQL access for the pipeline: a shell-based
// adapter for dump/restore (grounded on the original implementation's
// repository/shell/pg_dump.py and shell/psql.py, which shell out to the
// pg_dump/pg_dumpall/psql binaries directly) and a pgx-backed adapter for
// the real queries the pipeline needs — retention-sweep candidate
// selection and connection-health checks — that dumping via a CLI tool
// can't serve.
package postgres

import (
	"context"
	"fmt"

	"github.com/khjklujn/state-machine/adapter/shell"
	"github.com/khjklujn/state-machine/machine"
)

// Connection names a PostgreSQL server and the credentials to reach it,
// mirroring the original's ConnectionModel.
type Connection struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

func (c Connection) hostFlags() []string {
	return []string{"-h", c.Host, "-p", fmt.Sprintf("%d", c.Port), "-U", c.User}
}

func (c Connection) env() []string {
	return []string{"PGSSLMODE=require", "PGPASSWORD=" + c.Password}
}

// Dump runs pg_dump/pg_dumpall against a Connection, mirroring the three
// entry points PgDump exposed in the original implementation.
type Dump struct {
	runner *shell.Runner
}

// New constructs a Dump bound to logger, matching machine.Bind's
// constructor parameter: machine.Bind(binder, postgres.New).
func New(logger machine.Logger) *Dump {
	return &Dump{runner: shell.New(logger)}
}

// DumpData dumps conn.Database's data (and schema) to outFile via pg_dump,
// mirroring PgDump.dump_data.
func (d *Dump) DumpData(ctx context.Context, conn Connection, outFile string) error {
	args := append(conn.hostFlags(), "-d", conn.Database, "--file", outFile)
	if _, err := d.runner.Run(ctx, "pg_dump", args, shell.WithEnv(conn.env()...)); err != nil {
		return fmt.Errorf("postgres: dump_data %s: %w", conn.Database, err)
	}
	return nil
}

// DumpRoles dumps cluster-wide role definitions via pg_dumpall --roles-only,
// mirroring PgDump.dump_roles.
func (d *Dump) DumpRoles(ctx context.Context, conn Connection, outFile string) error {
	args := append(conn.hostFlags(), "--roles-only", "--file", outFile)
	if _, err := d.runner.Run(ctx, "pg_dumpall", args, shell.WithEnv(conn.env()...)); err != nil {
		return fmt.Errorf("postgres: dump_roles: %w", err)
	}
	return nil
}

// DumpSchema dumps conn.Database's schema only via pg_dump --schema-only,
// mirroring PgDump.dump_schema.
func (d *Dump) DumpSchema(ctx context.Context, conn Connection, outFile string) error {
	args := append(conn.hostFlags(), "-d", conn.Database, "--schema-only", "--file", outFile)
	if _, err := d.runner.Run(ctx, "pg_dump", args, shell.WithEnv(conn.env()...)); err != nil {
		return fmt.Errorf("postgres: dump_schema %s: %w", conn.Database, err)
	}
	return nil
}

// Restore loads the dump at path into conn.Database via psql, piping the
// connection password to stdin the way Psql.restore does rather than
// passing it on the command line.
func (d *Dump) Restore(ctx context.Context, conn Connection, path string) error {
	args := append(conn.hostFlags(), "-d", conn.Database, "--file", path)
	_, err := d.runner.Run(ctx, "psql", args,
		shell.WithEnv(conn.env()...),
		shell.WithStdin(conn.Password+"\n"),
	)
	if err != nil {
		return fmt.Errorf("postgres: restore %s: %w", path, err)
	}
	return nil
}
