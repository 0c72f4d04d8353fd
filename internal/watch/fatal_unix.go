//go:build !windows

package watch

import (
	"errors"
	"syscall"
)

// isFatal reports inotify resource exhaustion: the watch limit (ENOSPC) or
// the per-process and system-wide descriptor limits (EMFILE, ENFILE).
func isFatal(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}
