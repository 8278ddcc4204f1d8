// Package lock serializes mutating runs with an advisory file lock.
//
// Two processes reconciling the same link paths is a data race, so
// enforce holds an exclusive lock for the duration of a run and fails
// fast when another run already owns it. Read-only status takes no lock.
// The lock is advisory: it coordinates latch processes with each other,
// nothing more.
package lock

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/arthur-debert/latch/pkg/errors"
	"github.com/arthur-debert/latch/pkg/logging"
)

// Locker guards a mutating run
type Locker interface {
	// Acquire takes the lock or fails fast when another run holds it
	Acquire() error
	// Release lets the next run proceed
	Release() error
}

// RunLock is a file-based Locker. It always operates on the real
// filesystem; advisory locks live on file descriptors, not on the FS
// abstraction used for reconciliation.
type RunLock struct {
	path  string
	flock *flock.Flock
}

// New creates a run lock backed by the file at path
func New(path string) *RunLock {
	return &RunLock{
		path:  path,
		flock: flock.New(path),
	}
}

// Acquire takes the exclusive lock without blocking
func (l *RunLock) Acquire() error {
	logger := logging.GetLogger("lock")

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to create lock directory for %s", l.path)
	}

	locked, err := l.flock.TryLock()
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to acquire run lock %s", l.path)
	}
	if !locked {
		return errors.Newf(errors.ErrLockHeld, "another run holds the lock at %s", l.path)
	}

	logger.Debug().Str("path", l.path).Msg("Run lock acquired")
	return nil
}

// Release drops the lock
func (l *RunLock) Release() error {
	logger := logging.GetLogger("lock")

	if err := l.flock.Unlock(); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to release run lock %s", l.path)
	}

	logger.Debug().Str("path", l.path).Msg("Run lock released")
	return nil
}

// noop satisfies Locker without touching the filesystem
type noop struct{}

func (noop) Acquire() error { return nil }
func (noop) Release() error { return nil }

// Noop returns a Locker that always succeeds, for callers running
// against an injected filesystem where no shared state exists.
func Noop() Locker {
	return noop{}
}
