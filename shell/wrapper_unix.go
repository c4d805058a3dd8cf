//go:build unix

package shell

import (
	"os"

	"golang.org/x/sys/unix"
)

// execWrapper replaces the current process image with the wrapper. It
// returns only when the exec itself failed, so the caller can move on to
// the next candidate.
func execWrapper(path string, argv []string) (int, bool) {
	_ = unix.Exec(path, argv, os.Environ())
	return 0, false
}
