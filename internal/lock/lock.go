package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// LockHeldError means another kitwit process owns the profile. Two clients
// on one profile would double every poll and overwrite each other's
// presence reports, so only the first may run.
type LockHeldError struct {
	PID  int
	Path string
}

func (e *LockHeldError) Error() string {
	if e.PID == 0 {
		return fmt.Sprintf("profile already in use (%s)", e.Path)
	}
	return fmt.Sprintf("profile already in use by PID %d (%s)", e.PID, e.Path)
}

// Lock is an acquired exclusive lock on a profile's lock file.
type Lock struct {
	file *os.File
	path string
}

// Acquire takes an exclusive flock on the file at path, creating parent
// directories as needed. On contention it returns a LockHeldError naming
// the owning PID when the holder recorded one.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		return nil, &LockHeldError{PID: ownerPID(path), Path: path}
	}

	if err := writeOwner(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write lock owner: %w", err)
	}

	return &Lock{file: f, path: path}, nil
}

// Release removes the lock file and drops the flock. Safe on a nil
// receiver and safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	// Remove before closing so a crashed reader never sees a stale file.
	_ = os.Remove(l.path)
	err := l.file.Close()
	l.file = nil
	return err
}

// writeOwner records this process in the lock file: PID on the first
// line, acquisition time on the second. Only the PID is machine-read;
// the timestamp is for humans poking at ~/.kitwit.
func writeOwner(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	_, err := fmt.Fprintf(f, "%d\n%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	return err
}

// ownerPID reads the holder's PID back out of the lock file. Zero when
// the file is unreadable or malformed; the error message degrades
// gracefully in that case.
func ownerPID(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	line, _, _ := strings.Cut(string(data), "\n")
	pid, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0
	}
	return pid
}
