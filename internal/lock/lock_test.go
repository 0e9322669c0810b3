package lock

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestAcquireRecordsOwnerPID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LOCK")

	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer func() { _ = l.Release() }()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read lock file: %v", err)
	}
	first, _, _ := strings.Cut(string(data), "\n")
	pid, err := strconv.Atoi(first)
	if err != nil {
		t.Fatalf("first line %q is not a PID: %v", first, err)
	}
	if pid != os.Getpid() {
		t.Errorf("recorded PID = %d, want %d", pid, os.Getpid())
	}
}

// Acquire is the first thing to touch a fresh profile, so it must create
// the directory itself.
func TestAcquireCreatesProfileDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles", "work", "LOCK")

	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() in missing dir error = %v", err)
	}
	defer func() { _ = l.Release() }()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("profile dir not created: %v", err)
	}
}

func TestContentionNamesOwner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LOCK")

	l1, err := Acquire(path)
	if err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	defer func() { _ = l1.Release() }()

	_, err = Acquire(path)
	if err == nil {
		t.Fatal("second Acquire() should fail")
	}

	var held *LockHeldError
	if !errors.As(err, &held) {
		t.Fatalf("error type = %T, want *LockHeldError: %v", err, err)
	}
	if held.PID != os.Getpid() {
		t.Errorf("reported owner PID = %d, want %d", held.PID, os.Getpid())
	}
	if held.Path != path {
		t.Errorf("reported path = %q, want %q", held.Path, path)
	}
	if !strings.Contains(held.Error(), strconv.Itoa(os.Getpid())) {
		t.Errorf("message %q does not name the owning PID", held.Error())
	}
}

func TestReacquireAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LOCK")

	l1, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := l1.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("lock file still present after release (stat err = %v)", err)
	}

	l2, err := Acquire(path)
	if err != nil {
		t.Fatalf("re-Acquire() after release error = %v", err)
	}
	_ = l2.Release()
}

func TestReleaseNilAndIdempotent(t *testing.T) {
	var nilLock *Lock
	if err := nilLock.Release(); err != nil {
		t.Errorf("nil Release() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "LOCK")
	l, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("first Release() error = %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
}

// A lock file some other tool scribbled over still blocks, just without
// an owner PID in the message.
func TestMalformedLockFileStillBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LOCK")

	l1, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer func() { _ = l1.Release() }()
	if err := os.WriteFile(path, []byte("not a pid\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err = Acquire(path)
	var held *LockHeldError
	if !errors.As(err, &held) {
		t.Fatalf("error type = %T, want *LockHeldError: %v", err, err)
	}
	if held.PID != 0 {
		t.Errorf("PID = %d, want 0 for malformed lock file", held.PID)
	}
}
