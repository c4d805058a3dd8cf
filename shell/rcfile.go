package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// rcFileName is looked up from the working directory upward, then in the
// user's config directory, so a project can pin shell behavior while the
// user keeps global defaults. All glot-built tools share the file.
const rcFileName = "glot.toml"

type rcFile struct {
	path string
	conf rcConfig
	meta toml.MetaData
}

type rcConfig struct {
	Shell rcShell `toml:"shell"`
}

type rcShell struct {
	Verbosity    int      `toml:"verbosity"`
	Color        string   `toml:"color"`
	Wrapper      []string `toml:"wrapper"`
	NoWrapper    bool     `toml:"no_wrapper"`
	HistoryLimit int      `toml:"history_limit"`
	UI           bool     `toml:"ui"`
}

// findRCFile returns the path of the active rc file, if any.
func findRCFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, rcFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, nil
		}
		base = filepath.Join(home, ".config")
	}
	candidate := filepath.Join(base, "glot", rcFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, true, nil
	}
	return "", false, nil
}

// loadRCFile finds and parses the rc file. A missing file is not an error.
func loadRCFile(startDir string) (*rcFile, error) {
	path, ok, err := findRCFile(startDir)
	if err != nil || !ok {
		return nil, err
	}
	rc := &rcFile{path: path}
	rc.meta, err = toml.DecodeFile(path, &rc.conf)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return rc, nil
}

func (rc *rcFile) defined(key string) bool {
	return rc.meta.IsDefined("shell", key)
}

// apply overlays the rc file's settings onto cfg, validating as it goes.
// Only keys actually present in the file take effect.
func (rc *rcFile) apply(cfg *Config) error {
	s := rc.conf.Shell
	if rc.defined("verbosity") {
		if !validVerbosity(s.Verbosity) {
			return fmt.Errorf("%s: [shell].verbosity %d out of range 0-3", rc.path, s.Verbosity)
		}
		cfg.Verbosity = s.Verbosity
	}
	if rc.defined("color") {
		if !validColorMode(s.Color) {
			return fmt.Errorf("%s: [shell].color %q must be auto, on, or off", rc.path, s.Color)
		}
		cfg.ColorMode = s.Color
	}
	if rc.defined("wrapper") {
		cfg.Wrapper = s.Wrapper
	}
	if rc.defined("no_wrapper") && s.NoWrapper {
		cfg.Wrapper = nil
	}
	if rc.defined("history_limit") {
		if s.HistoryLimit < 0 {
			return fmt.Errorf("%s: [shell].history_limit must not be negative", rc.path)
		}
		cfg.HistoryLimit = s.HistoryLimit
	}
	if rc.defined("ui") {
		cfg.UI = s.UI
	}
	return nil
}
