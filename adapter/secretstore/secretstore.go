// Package secretstore wraps config.Secrets for node-body consumption,
// grounded on SPEC_FULL.md §4.10's "Secret adapter": the encrypted
// secrets.yaml side file, reached through the same dependency-binder
// indirection every other adapter in this tree uses, rather than threading
// *config.Secrets through node bodies directly.
package secretstore

import (
	"fmt"

	"github.com/khjklujn/state-machine/config"
	"github.com/khjklujn/state-machine/machine"
)

// Store reads decrypted secret values, logging each lookup (never the
// value itself) at debug level.
type Store struct {
	secrets *config.Secrets
	logger  machine.Logger
}

// Bind curries secrets into a machine.Bind-compatible constructor:
//
//	secretAdapter := machine.Bind(binder, secretstore.Bind(secrets))
func Bind(secrets *config.Secrets) func(machine.Logger) *Store {
	return func(logger machine.Logger) *Store {
		return &Store{secrets: secrets, logger: logger}
	}
}

// Get returns the decrypted value stored under section/name, or ok=false
// if no such secret exists.
func (s *Store) Get(section, name string) (string, bool, error) {
	s.logger.Debug(fmt.Sprintf("secretstore: looking up %s/%s", section, name))
	value, ok, err := s.secrets.Get(section, name)
	if err != nil {
		return "", false, fmt.Errorf("secretstore: %s/%s: %w", section, name, err)
	}
	return value, ok, nil
}

// Set stores value encrypted under section/name, overwriting any existing
// value at that location.
func (s *Store) Set(section, name, value string) error {
	s.logger.Debug(fmt.Sprintf("secretstore: setting %s/%s", section, name))
	if err := s.secrets.Set(section, name, value); err != nil {
		return fmt.Errorf("secretstore: %s/%s: %w", section, name, err)
	}
	return nil
}
