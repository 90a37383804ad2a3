// Package nexus persists tool feedback into per-tool sheets of a shared xlsx workbook.
package nexus

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Default option values.
const (
	DefaultLockTimeout = 5 * time.Second
	DefaultLockRetry   = 25 * time.Millisecond
	DefaultFileMode    = os.FileMode(0o644)

	// staleLockFactor times LockTimeout is the default StaleLockAfter.
	staleLockFactor = 10
)

// Options configures store behavior.
type Options struct {
	// Logger receives store events. If nil, logs are discarded.
	Logger *slog.Logger
	// LockTimeout bounds how long Submit waits for another writer.
	LockTimeout time.Duration
	// LockRetry is the poll interval while the lock file is held elsewhere.
	LockRetry time.Duration
	// StaleLockAfter is the age past which a lock file is taken over even
	// when its holder cannot be checked. Defaults to 10 * LockTimeout.
	StaleLockAfter time.Duration
	// FileMode is applied to newly created workbooks. Existing workbooks keep their mode.
	FileMode os.FileMode
	// StyleHeader specifies whether new sheets get a bold header and sized columns.
	// If nil, defaults to true.
	StyleHeader *bool
}

// DefaultOptions returns default store options.
func DefaultOptions() Options {
	return Options{
		LockTimeout: DefaultLockTimeout,
		LockRetry:   DefaultLockRetry,
		FileMode:    DefaultFileMode,
	}
}

// ShouldStyleHeader returns whether to style the header of new sheets.
func (o Options) ShouldStyleHeader() bool {
	if o.StyleHeader != nil {
		return *o.StyleHeader
	}
	return true
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.LockTimeout <= 0 {
		o.LockTimeout = def.LockTimeout
	}
	if o.LockRetry <= 0 {
		o.LockRetry = def.LockRetry
	}
	if o.StaleLockAfter <= 0 {
		o.StaleLockAfter = staleLockFactor * o.LockTimeout
	}
	if o.FileMode == 0 {
		o.FileMode = def.FileMode
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
