// Package filemanager wraps local filesystem operations used by the
// archive-and-encrypt pipeline, grounded on the original implementation's
// repository/file_manager/file_manager.py: every operation logs its own
// start/complete/runtime, matching the AbstractRepository.execute idiom
// replicated throughout this module's adapters.
package filemanager

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/khjklujn/state-machine/machine"
)

// Manager performs directory and file manipulation with a logger bound via
// machine.Binder.
type Manager struct {
	logger machine.Logger
}

// New constructs a Manager bound to logger, matching machine.Bind's
// constructor parameter: machine.Bind(binder, filemanager.New).
func New(logger machine.Logger) *Manager {
	return &Manager{logger: logger}
}

func (m *Manager) execute(action string, fn func() error) error {
	start := time.Now()
	m.logger.Debug(fmt.Sprintf("%s - started", action))
	err := fn()
	runtime := time.Since(start)
	if err != nil {
		m.logger.Debug(fmt.Sprintf("%s - error - runtime=%s", action, runtime))
		return err
	}
	m.logger.Debug(fmt.Sprintf("%s - completed - runtime=%s", action, runtime))
	return nil
}

// Exists reports whether path names an existing file or directory.
func (m *Manager) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MakeDirIfNotExists creates path, and any missing parents, if it does not
// already exist. It mirrors os.makedirs(path, exist_ok=True).
func (m *Manager) MakeDirIfNotExists(path string) error {
	return m.execute(fmt.Sprintf("make_dir_if_not_exists(%s)", path), func() error {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("filemanager: make dir %s: %w", path, err)
		}
		return nil
	})
}

// Copy copies the file at fromPath to toPath the way shutil.copy2 does: the
// contents are copied, a newly created toPath gets the source's permission
// bits, and toPath's access and modification times are set to the source's
// modification time.
func (m *Manager) Copy(fromPath, toPath string) error {
	return m.execute(fmt.Sprintf("copy(%s, %s)", fromPath, toPath), func() error {
		src, err := os.Open(fromPath)
		if err != nil {
			return fmt.Errorf("filemanager: open %s: %w", fromPath, err)
		}
		defer src.Close()

		info, err := src.Stat()
		if err != nil {
			return fmt.Errorf("filemanager: stat %s: %w", fromPath, err)
		}

		dst, err := os.OpenFile(toPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
		if err != nil {
			return fmt.Errorf("filemanager: create %s: %w", toPath, err)
		}
		defer dst.Close()

		if _, err := io.Copy(dst, src); err != nil {
			return fmt.Errorf("filemanager: copy %s to %s: %w", fromPath, toPath, err)
		}
		if err := dst.Close(); err != nil {
			return fmt.Errorf("filemanager: close %s: %w", toPath, err)
		}
		return os.Chtimes(toPath, info.ModTime(), info.ModTime())
	})
}

// Move relocates the file at fromPath to toPath, matching shutil.move's
// fallback-to-copy-then-remove behavior when the destination is on a
// different filesystem.
func (m *Manager) Move(fromPath, toPath string) error {
	return m.execute(fmt.Sprintf("move(%s, %s)", fromPath, toPath), func() error {
		if err := os.Rename(fromPath, toPath); err == nil {
			return nil
		}
		if err := m.Copy(fromPath, toPath); err != nil {
			return fmt.Errorf("filemanager: move %s to %s: %w", fromPath, toPath, err)
		}
		if err := os.Remove(fromPath); err != nil {
			return fmt.Errorf("filemanager: removing source after move %s: %w", fromPath, err)
		}
		return nil
	})
}

// RemoveFileIfExists removes path if it names an existing file, and is a
// no-op otherwise. A path that cannot exist because one of its parent
// components isn't a directory (ENOTDIR) is treated the same as a missing
// path rather than as an error: either way, there is nothing to remove.
func (m *Manager) RemoveFileIfExists(path string) error {
	return m.execute(fmt.Sprintf("remove_file_if_exists(%s)", path), func() error {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && !errors.Is(err, syscall.ENOTDIR) {
			return fmt.Errorf("filemanager: remove %s: %w", path, err)
		}
		return nil
	})
}

// RemoveDirectoryIfExists recursively removes path if it exists, and is a
// no-op otherwise.
func (m *Manager) RemoveDirectoryIfExists(path string) error {
	return m.execute(fmt.Sprintf("remove_directory_if_exists(%s)", path), func() error {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("filemanager: remove directory %s: %w", path, err)
		}
		return nil
	})
}

// ModificationTime returns the last modification time of path.
func (m *Manager) ModificationTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("filemanager: stat %s: %w", path, err)
	}
	return info.ModTime(), nil
}

// AllFilesInDirectory lists the regular files directly inside dir, matching
// the original's non-recursive directory listing.
func (m *Manager) AllFilesInDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("filemanager: reading dir %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
