package nexus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"
)

// LockSuffix is appended to a workbook path to name its lock file.
const LockSuffix = ".lock"

// lockReleased is returned by reclaimStaleLock when the holder let go on its own.
const lockReleased = "released"

// errLockTimeout reports that another writer kept the workbook past LockTimeout.
var errLockTimeout = errors.New("timed out waiting for workbook lock")

// pathLocks serializes writers of the same workbook within this process.
type pathLocks struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newPathLocks() *pathLocks {
	return &pathLocks{slots: make(map[string]chan struct{})}
}

func (l *pathLocks) acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[key]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[key] = slot
	}
	l.mu.Unlock()

	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// acquireLockFile creates lockPath exclusively, polling every retry while
// another process holds it. A lock whose holder is gone is taken over.
func acquireLockFile(ctx context.Context, lockPath string, retry, staleAfter time.Duration, logger *slog.Logger) (func(), error) {
	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			fmt.Fprintf(f, "%d %s\n", os.Getpid(), hostname())
			f.Close()
			return func() { os.Remove(lockPath) }, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("creating lock file: %w", err)
		}

		switch reason := reclaimStaleLock(lockPath, staleAfter); reason {
		case "":
		case lockReleased:
			continue
		default:
			logger.Warn("took over stale workbook lock", "lock", lockPath, "reason", reason)
			continue
		}

		timer := time.NewTimer(retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// reclaimStaleLock removes lockPath when the process recorded in it no longer
// runs on this host, or when the file is older than staleAfter. It returns
// why the lock was removed, or "" when the lock is still held.
func reclaimStaleLock(lockPath string, staleAfter time.Duration) string {
	info, err := os.Stat(lockPath)
	if errors.Is(err, fs.ErrNotExist) {
		return lockReleased
	}
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(lockPath)
	if errors.Is(err, fs.ErrNotExist) {
		return lockReleased
	}
	if err != nil {
		return ""
	}

	var reason string
	if pid, ok := lockHolder(data); ok && !processAlive(pid) {
		reason = fmt.Sprintf("process %d is gone", pid)
	} else if staleAfter > 0 && time.Since(info.ModTime()) > staleAfter {
		reason = fmt.Sprintf("lock is older than %s", staleAfter)
	}
	if reason == "" {
		return ""
	}

	// A writer may have released and re-taken the lock since the Stat;
	// only remove the file that was inspected.
	cur, err := os.Stat(lockPath)
	if err != nil || !os.SameFile(info, cur) || !cur.ModTime().Equal(info.ModTime()) {
		return ""
	}
	if err := os.Remove(lockPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return reason
}

// lockHolder parses the "<pid> <host>" lock file content. The PID is only
// usable when the lock was taken on this host; a missing host means local.
func lockHolder(data []byte) (int, bool) {
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, false
	}
	pid, err := strconv.Atoi(fields[0])
	if err != nil || pid <= 0 {
		return 0, false
	}
	if len(fields) > 1 && fields[1] != hostname() {
		return 0, false
	}
	return pid, true
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "localhost"
	}
	return name
}

// lock takes the in-process and the cross-process lock for path. Both waits
// share one LockTimeout budget.
func (s *Store) lock(ctx context.Context, path string) (func(), error) {
	lctx, cancel := context.WithTimeout(ctx, s.opts.LockTimeout)
	defer cancel()

	release, err := s.locks.acquire(lctx, lockKey(path))
	if err != nil {
		return nil, lockError(ctx, err)
	}

	unlockFile, err := acquireLockFile(lctx, path+LockSuffix, s.opts.LockRetry, s.opts.StaleLockAfter, s.logger)
	if err != nil {
		release()
		return nil, lockError(ctx, err)
	}

	return func() {
		unlockFile()
		release()
	}, nil
}

// lockError turns our own deadline into errLockTimeout while passing the
// caller's cancellation through unchanged.
func lockError(parent context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil {
		return errLockTimeout
	}
	return err
}

func lockKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// classify maps an I/O failure onto ErrPermission or ErrUnknownIO.
func classify(err error) error {
	switch {
	case errors.Is(err, errLockTimeout),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, syscall.EROFS),
		errors.Is(err, syscall.EBUSY):
		return ErrPermission
	}
	return ErrUnknownIO
}
