package lock

import (
	"testing"
	"time"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	l, err := Acquire(dir, time.Second)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if l.Path == "" {
		t.Error("lockfile path is empty")
	}
	if err := l.Release(); err != nil {
		t.Errorf("Release failed: %v", err)
	}

	// Reacquirable after release.
	l, err = Acquire(dir, time.Second)
	if err != nil {
		t.Fatalf("reacquire failed: %v", err)
	}
	defer l.Release()
}

func TestAcquireRequiresDirectory(t *testing.T) {
	if _, err := Acquire("", time.Second); err != ErrDirectoryRequired {
		t.Errorf("Acquire(\"\") error = %v, want ErrDirectoryRequired", err)
	}
}

func TestLockfilePathIsStable(t *testing.T) {
	dir := t.TempDir()
	if LockfilePath(dir) != LockfilePath(dir) {
		t.Error("LockfilePath is not deterministic")
	}
	if LockfilePath(dir) == LockfilePath(dir+"2") {
		t.Error("distinct directories share a lockfile path")
	}
	// Trailing separators do not change the lockfile.
	if LockfilePath(dir) != LockfilePath(dir+"/") {
		t.Error("trailing separator changes the lockfile path")
	}
}

func TestReleaseNil(t *testing.T) {
	var l *InstanceLock
	if err := l.Release(); err != nil {
		t.Errorf("Release on nil lock = %v, want nil", err)
	}
}
