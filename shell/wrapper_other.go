//go:build !unix

package shell

import (
	"errors"
	"os"
	"os/exec"
)

// execWrapper runs the wrapper as a child on our terminal. Without
// process replacement the closest equivalent is waiting for the child
// and adopting its exit code.
func execWrapper(path string, argv []string) (int, bool) {
	cmd := exec.Command(path, argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), true
		}
		return 0, false
	}
	return 0, true
}
