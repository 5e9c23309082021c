package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/khjklujn/state-machine/audit"
	"github.com/khjklujn/state-machine/machine"
	"github.com/khjklujn/state-machine/pipeline/archiveencrypt"
	"github.com/khjklujn/state-machine/worker"
)

// archiveEncryptPipelineName is the only pipeline config.yaml's "pipelines"
// section currently names; newRunCmd rejects any other value up front
// rather than failing later inside the worker pool.
const archiveEncryptPipelineName = "archive_encrypt"

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <pipeline> <source-file>...",
		Short: "Run a named pipeline over one or more source files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, args[0], args[1:])
		},
	}
}

func runPipeline(cmd *cobra.Command, name string, sources []string) error {
	defer logger.Close()

	if name != archiveEncryptPipelineName {
		return fmt.Errorf("statemachine: unknown pipeline %q (only %q is registered)", name, archiveEncryptPipelineName)
	}

	pcfg, ok := cfg.Pipeline(name)
	if !ok {
		return fmt.Errorf("statemachine: config.yaml declares no pipeline named %q", name)
	}

	stagingDir, err := requireSetting(pcfg.Settings, "staging_dir")
	if err != nil {
		return err
	}
	archiveDir, err := requireSetting(pcfg.Settings, "archive_dir")
	if err != nil {
		return err
	}
	gpgKeyName, err := requireSetting(pcfg.Settings, "gpg_key_name")
	if err != nil {
		return err
	}
	auditDBPath := settingOrDefault(pcfg.Settings, "audit_db", "./statemachine-audit.db")

	store, err := audit.NewSQLiteStore(auditDBPath)
	if err != nil {
		return fmt.Errorf("statemachine: opening audit store: %w", err)
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	binder := machine.NewBinder(logger)

	run := func(ctx context.Context, item worker.WorkItem[archiveencrypt.State]) []machine.Result {
		instance := archiveencrypt.New(ctx, logger, binder, item.State)
		return machine.Run(instance)
	}
	pool := worker.New(pcfg.WorkerPoolSize, run)

	items := make([]worker.WorkItem[archiveencrypt.State], len(sources))
	for i, source := range sources {
		items[i] = worker.WorkItem[archiveencrypt.State]{
			ID: filepath.Base(source),
			State: archiveencrypt.State{
				SourcePath: source,
				StagingDir: stagingDir,
				ArchiveDir: archiveDir,
				GPGKeyName: gpgKeyName,
			},
		}
	}

	runStarted := time.Now()
	outcomes := pool.RunAll(ctx, items)

	failureCount := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			logger.Critical(fmt.Sprintf("%s: %v", outcome.Item.ID, outcome.Err))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: FATAL: %v\n", outcome.Item.ID, outcome.Err)
			failureCount++
			continue
		}

		for _, result := range outcome.Results {
			if result.IsFailure() {
				failureCount++
			}
		}

		rec := audit.FromResults(archiveEncryptPipelineName, outcome.Item.ID, runStarted, time.Now(), outcome.Results)
		if err := store.RecordRun(ctx, rec); err != nil {
			return fmt.Errorf("statemachine: recording audit run for %s: %w", outcome.Item.ID, err)
		}

		if !rec.Succeeded {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: FAILED at %s: %s\n", outcome.Item.ID, rec.FailureNode, rec.FailureText)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", outcome.Item.ID)
		}
	}

	runExitCode = failureCount
	return nil
}
