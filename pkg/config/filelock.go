package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrLockTimeout is returned when another writer holds the lock for longer
// than the configured timeout.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// FileLock is an advisory lock held as a sibling "<path>.lock" file.
type FileLock struct {
	path     string
	lockPath string
	file     *os.File
}

// LockConfig controls how long Lock waits.
type LockConfig struct {
	Timeout    time.Duration
	RetryDelay time.Duration
}

func DefaultLockConfig() LockConfig {
	return LockConfig{
		Timeout:    5 * time.Second,
		RetryDelay: 50 * time.Millisecond,
	}
}

func NewFileLock(path string) *FileLock {
	return &FileLock{path: path, lockPath: path + ".lock"}
}

// Lock acquires the lock, retrying until cfg.Timeout elapses.
func (fl *FileLock) Lock(cfg LockConfig) error {
	if fl.file != nil {
		return errors.New("file is already locked")
	}
	if err := os.MkdirAll(filepath.Dir(fl.lockPath), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	deadline := time.Now().Add(cfg.Timeout)
	for {
		file, err := os.OpenFile(fl.lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			fmt.Fprintf(file, "pid:%d\n", os.Getpid())
			fl.file = file
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("failed to create lock file: %w", err)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%s: %w", fl.path, ErrLockTimeout)
		}
		time.Sleep(cfg.RetryDelay)
	}
}

// Unlock releases the lock. Unlocking an unheld lock is a no-op.
func (fl *FileLock) Unlock() error {
	if fl.file == nil {
		return nil
	}
	closeErr := fl.file.Close()
	fl.file = nil
	if err := os.Remove(fl.lockPath); err != nil {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return closeErr
}

func (fl *FileLock) IsLocked() bool {
	return fl.file != nil
}

// AtomicWrite replaces path with data under a FileLock. The previous
// content, if any, is kept at path.backup.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	lock := NewFileLock(path)
	if err := lock.Lock(DefaultLockConfig()); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer lock.Unlock()

	if old, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(path+".backup", old, 0600); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, perm); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
