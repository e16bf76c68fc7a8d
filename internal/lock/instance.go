package lock

import (
	"context"
	stdErrors "errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

var (
	// ErrLockTimeout is returned when acquiring the instance lock times out,
	// usually because another server already serves the same directory.
	ErrLockTimeout = fmt.Errorf("timeout acquiring instance lock")
	// ErrDirectoryRequired is returned when the working directory is empty.
	ErrDirectoryRequired = fmt.Errorf("working directory is required")
)

// pollInterval is the interval at which lock acquisition is retried.
const pollInterval = 10 * time.Millisecond

// InstanceLock is an advisory, OS-level lock tying one server process to one
// working directory. It does not serialize individual file operations;
// same-path writers still race at the filesystem layer.
type InstanceLock struct {
	// Path is the lockfile location under the OS temp directory.
	Path  string
	flock *flock.Flock
}

// LockfilePath derives a stable lockfile path for a working directory.
func LockfilePath(workingDir string) string {
	h := fnv.New64a()
	h.Write([]byte(filepath.Clean(workingDir)))
	return filepath.Join(os.TempDir(), fmt.Sprintf("file-tools-%016x.lock", h.Sum64()))
}

// Acquire takes the instance lock for workingDir, polling until timeout.
func Acquire(workingDir string, timeout time.Duration) (*InstanceLock, error) {
	if workingDir == "" {
		return nil, ErrDirectoryRequired
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	path := LockfilePath(workingDir)
	fileLock := flock.New(path)
	locked, err := fileLock.TryLockContext(ctx, pollInterval)
	if err != nil {
		if stdErrors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("acquiring instance lock %s: %w", path, err)
	}
	if !locked {
		return nil, ErrLockTimeout
	}

	return &InstanceLock{Path: path, flock: fileLock}, nil
}

// Release gives up the instance lock.
func (l *InstanceLock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}
