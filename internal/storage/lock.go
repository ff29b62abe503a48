package storage

import (
	"fmt"
	"os"
	"syscall"
)

// lockFile acquires an exclusive file lock (LOCK_EX) on the given file path.
// It returns an unlock function that must be called to release the lock.
// The plan update is a read-modify-write over the whole document; the lock
// keeps concurrent updates from clobbering each other.
func lockFile(path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("acquiring file lock: %w", err)
	}

	return func() error {
		defer f.Close()
		return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	}, nil
}
