package shell

import (
	"os/exec"
)

// wrapperArgv builds the command line a wrapper runs: the wrapper itself,
// the original invocation, and --no-wrapper so the wrapped process does
// not try to wrap again.
func wrapperArgv(wrapperPath string, argv []string) []string {
	out := make([]string, 0, len(argv)+2)
	out = append(out, wrapperPath)
	out = append(out, argv...)
	return append(out, "--no-wrapper")
}

// tryWrapper hands the terminal to the first usable wrapper candidate.
// On Unix a successful takeover replaces the process image and never
// returns; elsewhere the wrapped child runs to completion and its exit
// code comes back with ok=true. Candidates that cannot be found or
// started are skipped; when every candidate fails the shell continues
// unwrapped.
func tryWrapper(candidates []string, argv []string) (code int, ok bool) {
	for _, cand := range candidates {
		path, err := exec.LookPath(cand)
		if err != nil {
			continue
		}
		if code, ok := execWrapper(path, wrapperArgv(path, argv)); ok {
			return code, true
		}
	}
	return 0, false
}
