// Package filelock guards a fix run against a second concurrent run over
// the same tree and provides atomic in-place rewrites of source files.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLockName is the lock file created at the scan root for the duration of
// a mutating run.
const RunLockName = ".includefix.lock"

// RunLock is an advisory, process-level lock on one scan root.
type RunLock struct {
	flock *flock.Flock
	path  string
}

// AcquireRunLock takes the run lock for root without blocking. It fails when
// another includefix process already holds the lock.
func AcquireRunLock(root string) (*RunLock, error) {
	path := filepath.Join(root, RunLockName)
	fl := flock.New(path)

	acquired, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock on %s: %w", path, err)
	}
	if !acquired {
		return nil, fmt.Errorf("another includefix run is already processing %s", root)
	}
	return &RunLock{flock: fl, path: path}, nil
}

// Release unlocks and removes the lock file.
func (l *RunLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	// Best effort; a stale empty lock file is harmless.
	os.Remove(l.path)
	return nil
}

// AtomicWrite rewrites path with data via a temp file and rename, so readers
// never observe a partial write. The original file mode is preserved when it
// can be determined, defaulting to 0644.
func AtomicWrite(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	// Rename within the same directory is atomic on the filesystems we care
	// about.
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	tempFile = nil
	return nil
}
