package shell

import (
	"glot/diag"
)

// defaultWrapper lists the line-editing wrappers tried in order when the
// user does not pick one.
var defaultWrapper = []string{"rlwrap", "ledit"}

const defaultHistoryLimit = 1000

// FileEntry is one queued file with its echo mode. Entries from -l load
// silently; command-line file arguments echo results the way typed input
// does.
type FileEntry struct {
	Path        string
	Interactive bool
}

// Config is the resolved shell configuration. It is assembled once during
// startup, from defaults, then the rc file, then the command line, and
// never mutated afterwards.
type Config struct {
	// Interactive is whether the shell runs after the file queue. File
	// arguments and -n turn it off.
	Interactive bool

	// Wrapper holds the wrapper candidates to try, nil when wrapping and
	// the built-in line editor are disabled.
	Wrapper []string

	// Files is the load queue in execution order.
	Files []FileEntry

	Verbosity    int
	ColorMode    string // auto|on|off
	UI           bool
	HistoryLimit int
}

func defaultConfig() Config {
	return Config{
		Interactive:  true,
		Wrapper:      defaultWrapper,
		Verbosity:    diag.VerbosityDefault,
		ColorMode:    "auto",
		HistoryLimit: defaultHistoryLimit,
	}
}

func validColorMode(mode string) bool {
	switch mode {
	case "auto", "on", "off":
		return true
	}
	return false
}

func validVerbosity(v int) bool {
	return v >= diag.VerbosityQuiet && v <= diag.VerbosityAll
}
