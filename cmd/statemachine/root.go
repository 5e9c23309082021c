package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/khjklujn/state-machine/config"
	"github.com/khjklujn/state-machine/emit"
)

var (
	cfgFile      string
	secretsFile  string
	secretsKey   string

	cfg     *config.Config
	secrets *config.Secrets
	logger  *emit.Logger

	// runExitCode is set by the run subcommand and read back by main after
	// Execute returns, so a run's exit code can carry a failure count
	// rather than the flat 0/1 cobra itself produces.
	runExitCode int
)

// newRootCmd wires the cobra tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "statemachine",
		Short:         "Drives declarative backup/restore pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfigAndSecrets()
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config.yaml (default: discovered by walking up from the working directory)")
	root.PersistentFlags().StringVar(&secretsFile, "secrets", "", "Path to secrets.yaml (default: secrets.yaml next to config.yaml)")
	root.PersistentFlags().StringVar(&secretsKey, "secrets-key", "", "Path to the secrets encryption key (default: secrets.key next to config.yaml)")

	root.AddCommand(newRunCmd())
	return root
}

func loadConfigAndSecrets() error {
	if cfgFile == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		found, err := config.Find(wd)
		if err != nil {
			return err
		}
		cfgFile = found
	}

	loaded, err := config.FromFile(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	dir := filepath.Dir(cfgFile)
	if secretsFile == "" {
		secretsFile = filepath.Join(dir, "secrets.yaml")
	}
	if secretsKey == "" {
		secretsKey = filepath.Join(dir, "secrets.key")
	}
	loadedSecrets, err := config.LoadSecrets(secretsFile, secretsKey)
	if err != nil {
		return err
	}
	secrets = loadedSecrets

	logger = emit.New("statemachine", emit.Config{
		Level:           emit.ParseLevel(cfg.Logging.Level),
		Path:            cfg.Logging.Path,
		MaxSizeMB:       cfg.Logging.MaxSizeMB,
		MaxAgeDays:      cfg.Logging.MaxAgeDays,
		MaxBackups:      cfg.Logging.MaxBackups,
		IncludeTerminal: cfg.Logging.IncludeTerminal,
	})
	return nil
}

func settingOrDefault(settings map[string]string, key, fallback string) string {
	if v, ok := settings[key]; ok && v != "" {
		return v
	}
	return fallback
}

func requireSetting(settings map[string]string, key string) (string, error) {
	v, ok := settings[key]
	if !ok || v == "" {
		return "", fmt.Errorf("statemachine: pipeline setting %q is required", key)
	}
	return v, nil
}
