package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/crypto/nacl/secretbox"
	"gopkg.in/yaml.v3"
)

// keySize is the secretbox key length, fixed by the underlying primitive.
const keySize = 32

// Secrets is an encrypted-at-rest sibling of Config, grounded on the
// original implementation's state_machine/config/secrets.py: a section/key
// map persisted to secrets.yaml, except every value is stored as a
// base64-encoded, nacl/secretbox-sealed ciphertext rather than plaintext.
//
// The original implementation encrypts individual values with Fernet, keyed
// from a file at /etc/fernet.key; golang.org/x/crypto has no Fernet
// implementation, so this uses secretbox (XSalsa20-Poly1305 authenticated
// encryption) with an equivalent key-file convention instead — the closest
// symmetric, authenticated primitive in the dependency set, encrypting each
// value independently exactly as Fernet does.
type Secrets struct {
	key     [keySize]byte
	Values  map[string]map[string]string
	path    string
}

// LoadSecrets reads the encrypted secrets file at path, decoding its key
// from keyPath. A missing secrets file is not an error: it is treated as an
// empty secret store, matching the original implementation's handling of a
// freshly created, empty secrets.yaml.
func LoadSecrets(path, keyPath string) (*Secrets, error) {
	key, err := loadKey(keyPath)
	if err != nil {
		return nil, err
	}

	s := &Secrets{key: key, Values: map[string]map[string]string{}, path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s.Values); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return s, nil
}

func loadKey(keyPath string) ([keySize]byte, error) {
	var key [keySize]byte
	raw, err := os.ReadFile(keyPath)
	if err != nil {
		return key, fmt.Errorf("config: reading secrets key %s: %w", keyPath, err)
	}
	decoded, err := base64.StdEncoding.DecodeString(string(raw))
	if err != nil {
		return key, fmt.Errorf("config: secrets key %s is not valid base64: %w", keyPath, err)
	}
	if len(decoded) != keySize {
		return key, fmt.Errorf("config: secrets key %s must decode to %d bytes, got %d", keyPath, keySize, len(decoded))
	}
	copy(key[:], decoded)
	return key, nil
}

// Get decrypts and returns the secret stored under section/name.
func (s *Secrets) Get(section, name string) (string, bool, error) {
	sealed, ok := s.Values[section][name]
	if !ok {
		return "", false, nil
	}
	plain, err := s.decrypt(sealed)
	if err != nil {
		return "", false, fmt.Errorf("config: decrypting %s.%s: %w", section, name, err)
	}
	return plain, true, nil
}

// Set encrypts value and stores it under section/name, persisting the
// updated secrets file to disk — the Go analogue of the original
// implementation's Secrets.set, which rewrites the whole file on every
// change.
func (s *Secrets) Set(section, name, value string) error {
	sealed, err := s.encrypt(value)
	if err != nil {
		return fmt.Errorf("config: encrypting %s.%s: %w", section, name, err)
	}

	if s.Values[section] == nil {
		s.Values[section] = map[string]string{}
	}
	s.Values[section][name] = sealed

	data, err := yaml.Marshal(s.Values)
	if err != nil {
		return fmt.Errorf("config: marshaling secrets: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("config: writing %s: %w", s.path, err)
	}
	return nil
}

func (s *Secrets) encrypt(plain string) (string, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err
	}
	sealed := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *Secrets) decrypt(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("not valid base64: %w", err)
	}
	if len(sealed) < 24 {
		return "", fmt.Errorf("ciphertext too short")
	}
	var nonce [24]byte
	copy(nonce[:], sealed[:24])

	plain, ok := secretbox.Open(nil, sealed[24:], &nonce, &s.key)
	if !ok {
		return "", fmt.Errorf("decryption failed: wrong key or corrupted ciphertext")
	}
	return string(plain), nil
}
