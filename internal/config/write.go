package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// WriteOptions controls how Write persists the configuration.
//
// Path selects the target file:
//   - Empty: write back to the file the config was loaded from, or to
//     DefaultWritePath when the defaults are in use.
//   - Non-empty: write to this explicit filesystem path.
//
// Safe controls overwrite behavior:
//   - false: create or overwrite (truncate) the target file.
//   - true: create only; return an error if the target already exists.
type WriteOptions struct {
	Path string
	Safe bool
}

// Write encodes the configuration as YAML and persists it atomically under
// an advisory lock. On success the config is bound to the written file.
func (c *Config) Write(opts WriteOptions) error {
	path := opts.Path
	if path == "" {
		path = c.path
	}
	if path == "" {
		p, err := DefaultWritePath()
		if err != nil {
			return fmt.Errorf("determining config path: %w", err)
		}
		path = p
	}

	encoded, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config %s: %w", path, err)
	}

	err = withFileLock(path, func() error {
		if opts.Safe {
			if _, err := os.Stat(path); err == nil {
				return &ConfigExistsError{Path: path}
			} else if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to stat config %s: %w", path, err)
			}
		}
		return atomicWriteFile(path, encoded, 0o644)
	})
	if err != nil {
		return err
	}

	if abs, err := filepath.Abs(path); err == nil {
		c.path = abs
		if c.baseDir == "" {
			c.baseDir = filepath.Dir(abs)
		}
	}
	return nil
}

// ConfigExistsError is returned by a safe Write when the target exists.
type ConfigExistsError struct {
	Path string
}

func (e *ConfigExistsError) Error() string {
	return fmt.Sprintf("config file already exists: %s", e.Path)
}

// atomicWriteFile writes data to path using a temp-file + fsync + rename
// strategy so that a crash mid-write never leaves the target truncated or
// partial. The temp file is created in the target's parent directory to
// guarantee same-filesystem rename semantics on POSIX.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, ".tplresolve-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file for %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file for %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("setting permissions on temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	success = true
	return nil
}

// withFileLock acquires an advisory file lock on path+".lock" before running fn,
// providing cross-process mutual exclusion for config file writes.
func withFileLock(path string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory for %s: %w", path, err)
	}

	fl := flock.New(path + ".lock")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquiring file lock for %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("timed out acquiring file lock for %s", path)
	}
	defer func() { _ = fl.Unlock() }()

	return fn()
}
