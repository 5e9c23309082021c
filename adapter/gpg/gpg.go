// Package gpg wraps the gpg command-line binary, grounded on the original
// implementation's repository/gpg/gpg.py — which itself wraps Python's
// gnupg.GPG class. No Go GPG library appears anywhere in the retrieved
// dependency corpus, so this adapter shells out to the gpg binary directly
// via adapter/shell.Runner, the same process-execution primitive every other
// shell-based adapter in this tree uses; see DESIGN.md for the full
// justification.
package gpg

import (
	"context"
	"fmt"
	"strings"

	"github.com/khjklujn/state-machine/adapter/shell"
	"github.com/khjklujn/state-machine/machine"
)

// Client performs key management and file encryption/decryption by
// shelling out to gpg, with a logger bound via machine.Binder.
type Client struct {
	runner *shell.Runner
}

// New constructs a Client bound to logger. Its signature matches
// machine.Bind's constructor parameter: machine.Bind(binder, gpg.New).
func New(logger machine.Logger) *Client {
	return &Client{runner: shell.New(logger)}
}

// Encrypt encrypts fromFile to toFile for the recipient named keyName,
// mirroring Gpg.encrypt's key_name/from_file/to_file contract.
func (c *Client) Encrypt(ctx context.Context, keyName, fromFile, toFile string) error {
	_, err := c.runner.Run(ctx, "gpg", []string{
		"--batch", "--yes",
		"--trust-model", "always",
		"--recipient", keyName,
		"--output", toFile,
		"--encrypt", fromFile,
	})
	if err != nil {
		return fmt.Errorf("gpg: encrypt %s for %s: %w", fromFile, keyName, err)
	}
	return nil
}

// Decrypt decrypts fromFile to toFile using passphrase, mirroring
// Gpg.decrypt's from_file/to_file/passphrase contract.
func (c *Client) Decrypt(ctx context.Context, fromFile, toFile, passphrase string) error {
	_, err := c.runner.Run(ctx, "gpg", []string{
		"--batch", "--yes",
		"--pinentry-mode", "loopback",
		"--passphrase-fd", "0",
		"--output", toFile,
		"--decrypt", fromFile,
	}, shell.WithStdin(passphrase))
	if err != nil {
		return fmt.Errorf("gpg: decrypt %s: %w", fromFile, err)
	}
	return nil
}

// CreateKey generates a new key pair named keyName protected by passphrase,
// mirroring Gpg.create_key.
func (c *Client) CreateKey(ctx context.Context, keyName, passphrase string) error {
	batchConfig := strings.Join([]string{
		"%echo Generating key",
		"Key-Type: RSA",
		"Key-Length: 4096",
		"Name-Real: " + keyName,
		"Expire-Date: 0",
		"Passphrase: " + passphrase,
		"%commit",
	}, "\n")
	_, err := c.runner.Run(ctx, "gpg", []string{"--batch", "--gen-key"}, shell.WithStdin(batchConfig))
	if err != nil {
		return fmt.Errorf("gpg: create key %s: %w", keyName, err)
	}
	return nil
}

// DeletePublicKey removes the public key named keyName, mirroring
// Gpg.delete_public_key.
func (c *Client) DeletePublicKey(ctx context.Context, keyName string) error {
	_, err := c.runner.Run(ctx, "gpg", []string{"--batch", "--yes", "--delete-key", keyName})
	if err != nil {
		return fmt.Errorf("gpg: delete public key %s: %w", keyName, err)
	}
	return nil
}

// DeletePrivateKey removes the private key named keyName, mirroring
// Gpg.delete_private_key.
func (c *Client) DeletePrivateKey(ctx context.Context, keyName, passphrase string) error {
	_, err := c.runner.Run(ctx, "gpg", []string{
		"--batch", "--yes",
		"--pinentry-mode", "loopback",
		"--passphrase-fd", "0",
		"--delete-secret-key", keyName,
	}, shell.WithStdin(passphrase))
	if err != nil {
		return fmt.Errorf("gpg: delete private key %s: %w", keyName, err)
	}
	return nil
}

// GetPublicKey exports the ASCII-armored public key named keyName,
// mirroring Gpg.get_public_key.
func (c *Client) GetPublicKey(ctx context.Context, keyName string) (string, error) {
	result, err := c.runner.Run(ctx, "gpg", []string{"--batch", "--armor", "--export", keyName})
	if err != nil {
		return "", fmt.Errorf("gpg: export public key %s: %w", keyName, err)
	}
	return result.Stdout, nil
}

// GetPrivateKey exports the ASCII-armored private key named keyName,
// mirroring Gpg.get_private_key.
func (c *Client) GetPrivateKey(ctx context.Context, keyName, passphrase string) (string, error) {
	result, err := c.runner.Run(ctx, "gpg", []string{
		"--batch", "--armor",
		"--pinentry-mode", "loopback",
		"--passphrase-fd", "0",
		"--export-secret-keys", keyName,
	}, shell.WithStdin(passphrase))
	if err != nil {
		return "", fmt.Errorf("gpg: export private key %s: %w", keyName, err)
	}
	return result.Stdout, nil
}

// ImportPublicKey imports an ASCII-armored public key, mirroring
// Gpg.import_public_key.
func (c *Client) ImportPublicKey(ctx context.Context, armored string) error {
	_, err := c.runner.Run(ctx, "gpg", []string{"--batch", "--import"}, shell.WithStdin(armored))
	if err != nil {
		return fmt.Errorf("gpg: import public key: %w", err)
	}
	return nil
}

// ImportPrivateKey imports an ASCII-armored private key protected by
// passphrase, mirroring Gpg.import_private_key.
func (c *Client) ImportPrivateKey(ctx context.Context, armored, passphrase string) error {
	_, err := c.runner.Run(ctx, "gpg", []string{
		"--batch",
		"--pinentry-mode", "loopback",
		"--passphrase-fd", "0",
		"--import",
	}, shell.WithStdin(passphrase+"\n"+armored))
	if err != nil {
		return fmt.Errorf("gpg: import private key: %w", err)
	}
	return nil
}

// ListPublicKeys returns gpg's raw --list-keys output, mirroring
// Gpg.list_public_keys.
func (c *Client) ListPublicKeys(ctx context.Context) (string, error) {
	result, err := c.runner.Run(ctx, "gpg", []string{"--batch", "--list-keys"})
	if err != nil {
		return "", fmt.Errorf("gpg: list public keys: %w", err)
	}
	return result.Stdout, nil
}

// ListPrivateKeys returns gpg's raw --list-secret-keys output, mirroring
// Gpg.list_private_keys.
func (c *Client) ListPrivateKeys(ctx context.Context) (string, error) {
	result, err := c.runner.Run(ctx, "gpg", []string{"--batch", "--list-secret-keys"})
	if err != nil {
		return "", fmt.Errorf("gpg: list private keys: %w", err)
	}
	return result.Stdout, nil
}

// PublicKeyExists reports whether a public key named keyName is present in
// the keyring, mirroring Gpg.public_key_exists.
func (c *Client) PublicKeyExists(ctx context.Context, keyName string) (bool, error) {
	keys, err := c.ListPublicKeys(ctx)
	if err != nil {
		return false, err
	}
	return strings.Contains(keys, keyName), nil
}

// PrivateKeyExists reports whether a private key named keyName is present
// in the keyring, mirroring Gpg.private_key_exists.
func (c *Client) PrivateKeyExists(ctx context.Context, keyName string) (bool, error) {
	keys, err := c.ListPrivateKeys(ctx)
	if err != nil {
		return false, err
	}
	return strings.Contains(keys, keyName), nil
}
