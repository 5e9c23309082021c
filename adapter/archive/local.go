package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/khjklujn/state-machine/machine"
)

// LocalStore is the default Store: objects live as plain files under a
// root directory, keyed by a relative path.
type LocalStore struct {
	root   string
	logger machine.Logger
}

// NewLocalStore constructs a LocalStore rooted at root, bound to logger.
// Unlike the adapters that take only a logger, this one also needs root,
// so pipeline wiring curries it into a machine.Bind-compatible constructor
// rather than passing NewLocalStore directly.
func NewLocalStore(root string, logger machine.Logger) *LocalStore {
	return &LocalStore{root: root, logger: logger}
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

// Put writes r's contents to the file named key under root, creating
// parent directories as needed.
func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader) error {
	_ = ctx
	dest := s.path(key)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("archive: creating parent dir for %s: %w", key, err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("archive: creating %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("archive: writing %s: %w", key, err)
	}
	s.logger.Debug(fmt.Sprintf("archive: stored %s at %s", key, dest))
	return nil
}

// Get opens the file named key under root for reading.
func (s *LocalStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	_ = ctx
	f, err := os.Open(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("archive: opening %s: %w", key, err)
	}
	return f, nil
}
