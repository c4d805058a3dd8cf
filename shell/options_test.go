package shell

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"glot/diag"
	"glot/internal/version"
)

// parseShellFlags builds the command for a throwaway language and parses
// args through it, returning the flag set buildConfig consumes.
func parseShellFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	d := &driver[[]string, string]{lang: scriptLang(io.Discard, nil)}
	cmd, err := d.newCommand()
	if err != nil {
		t.Fatalf("newCommand: %v", err)
	}
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return cmd.Flags()
}

func TestBuildConfig_Defaults(t *testing.T) {
	cfg, err := buildConfig(parseShellFlags(t), nil, nil)
	if err != nil {
		t.Fatalf("buildConfig returned error: %v", err)
	}
	if !cfg.Interactive {
		t.Fatal("Interactive = false, want true by default")
	}
	if got, want := strings.Join(cfg.Wrapper, " "), strings.Join(defaultWrapper, " "); got != want {
		t.Fatalf("Wrapper = %q, want %q", got, want)
	}
	if cfg.Verbosity != diag.VerbosityDefault {
		t.Fatalf("Verbosity = %d, want %d", cfg.Verbosity, diag.VerbosityDefault)
	}
	if cfg.ColorMode != "auto" {
		t.Fatalf("ColorMode = %q, want %q", cfg.ColorMode, "auto")
	}
	if cfg.UI {
		t.Fatal("UI = true, want false by default")
	}
	if cfg.HistoryLimit != defaultHistoryLimit {
		t.Fatalf("HistoryLimit = %d, want %d", cfg.HistoryLimit, defaultHistoryLimit)
	}
	if len(cfg.Files) != 0 {
		t.Fatalf("Files = %v, want none", cfg.Files)
	}
}

func TestBuildConfig_FlagsBeatRCFile(t *testing.T) {
	rc := decodeRC(t, "[shell]\nverbosity = 0\ncolor = \"off\"\n")
	cfg, err := buildConfig(parseShellFlags(t, "--verbosity", "3"), nil, rc)
	if err != nil {
		t.Fatalf("buildConfig returned error: %v", err)
	}
	if cfg.Verbosity != 3 {
		t.Fatalf("Verbosity = %d, want the flag's 3 over the rc file's 0", cfg.Verbosity)
	}
	if cfg.ColorMode != "off" {
		t.Fatalf("ColorMode = %q, want the rc file's %q to hold", cfg.ColorMode, "off")
	}
}

func TestBuildConfig_FileQueue(t *testing.T) {
	flags := parseShellFlags(t, "-l", "lib.toy", "--load", "more.toy")
	cfg, err := buildConfig(flags, []string{"main.toy"}, nil)
	if err != nil {
		t.Fatalf("buildConfig returned error: %v", err)
	}
	want := []FileEntry{
		{Path: "lib.toy"},
		{Path: "more.toy"},
		{Path: "main.toy", Interactive: true},
	}
	if len(cfg.Files) != len(want) {
		t.Fatalf("Files = %v, want %v", cfg.Files, want)
	}
	for i := range want {
		if cfg.Files[i] != want[i] {
			t.Fatalf("Files[%d] = %+v, want %+v", i, cfg.Files[i], want[i])
		}
	}
	if cfg.Interactive {
		t.Fatal("Interactive = true, want a file argument to turn the shell off")
	}
}

func TestBuildConfig_DashLKeepsShellOpen(t *testing.T) {
	cfg, err := buildConfig(parseShellFlags(t, "-l", "lib.toy"), nil, nil)
	if err != nil {
		t.Fatalf("buildConfig returned error: %v", err)
	}
	if !cfg.Interactive {
		t.Fatal("Interactive = false, want -l to leave the shell on")
	}
	if len(cfg.Files) != 1 || cfg.Files[0].Interactive {
		t.Fatalf("Files = %v, want one silent entry", cfg.Files)
	}
}

func TestBuildConfig_WrapperFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"default", nil, defaultWrapper},
		{"custom", []string{"--wrapper", "my-editor"}, []string{"my-editor"}},
		{"custom multi", []string{"--wrapper", "a", "--wrapper", "b"}, []string{"a", "b"}},
		{"disabled", []string{"--no-wrapper"}, nil},
		{"disabled wins", []string{"--wrapper", "a", "--no-wrapper"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := buildConfig(parseShellFlags(t, tt.args...), nil, nil)
			if err != nil {
				t.Fatalf("buildConfig returned error: %v", err)
			}
			if got, want := strings.Join(cfg.Wrapper, " "), strings.Join(tt.want, " "); got != want {
				t.Fatalf("Wrapper = %q, want %q", got, want)
			}
		})
	}
}

func TestBuildConfig_NonInteractive(t *testing.T) {
	cfg, err := buildConfig(parseShellFlags(t, "-n"), nil, nil)
	if err != nil {
		t.Fatalf("buildConfig returned error: %v", err)
	}
	if cfg.Interactive {
		t.Fatal("Interactive = true, want -n to turn the shell off")
	}
}

func TestBuildConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"verbosity high", []string{"--verbosity=9"}, "invalid --verbosity 9 (want 0-3)"},
		{"verbosity negative", []string{"--verbosity=-1"}, "invalid --verbosity -1 (want 0-3)"},
		{"color", []string{"--color=purple"}, `invalid --color "purple" (want auto, on, or off)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildConfig(parseShellFlags(t, tt.args...), nil, nil)
			if err == nil || err.Error() != tt.want {
				t.Fatalf("buildConfig error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestMergeLanguageFlags(t *testing.T) {
	t.Run("adds clean flags", func(t *testing.T) {
		lang := scriptLang(io.Discard, nil)
		lang.Flags = func(fs *pflag.FlagSet) {
			fs.BoolP("trace", "t", false, "trace evaluation")
		}
		d := &driver[[]string, string]{lang: lang}
		cmd, err := d.newCommand()
		if err != nil {
			t.Fatalf("newCommand: %v", err)
		}
		if err := cmd.ParseFlags([]string{"-t"}); err != nil {
			t.Fatalf("ParseFlags: %v", err)
		}
		on, err := cmd.Flags().GetBool("trace")
		if err != nil || !on {
			t.Fatalf("GetBool(trace) = %v, %v, want true", on, err)
		}
	})

	t.Run("name conflict", func(t *testing.T) {
		lang := scriptLang(io.Discard, nil)
		lang.Flags = func(fs *pflag.FlagSet) {
			fs.Bool("verbosity", false, "clash")
		}
		d := &driver[[]string, string]{lang: lang}
		_, err := d.newCommand()
		if err == nil || err.Error() != "flag --verbosity is already taken by the shell" {
			t.Fatalf("newCommand error = %v, want the name conflict", err)
		}
	})

	t.Run("shorthand conflict", func(t *testing.T) {
		lang := scriptLang(io.Discard, nil)
		lang.Flags = func(fs *pflag.FlagSet) {
			fs.BoolP("noisy", "n", false, "clash")
		}
		d := &driver[[]string, string]{lang: lang}
		_, err := d.newCommand()
		if err == nil || err.Error() != "shorthand -n of --noisy is already taken by --non-interactive" {
			t.Fatalf("newCommand error = %v, want the shorthand conflict", err)
		}
	})
}

func TestNewCommand_VersionLine(t *testing.T) {
	d := &driver[[]string, string]{lang: scriptLang(io.Discard, nil)}
	cmd, err := d.newCommand()
	if err != nil {
		t.Fatalf("newCommand: %v", err)
	}
	want := fmt.Sprintf("toy %s (%s/%s)", version.String(), runtime.GOOS, runtime.GOARCH)
	if cmd.Version != want {
		t.Fatalf("Version = %q, want %q", cmd.Version, want)
	}

	d.lang.Version = "2.0.0-rc1"
	cmd, err = d.newCommand()
	if err != nil {
		t.Fatalf("newCommand: %v", err)
	}
	want = fmt.Sprintf("toy 2.0.0-rc1 (%s/%s)", runtime.GOOS, runtime.GOARCH)
	if cmd.Version != want {
		t.Fatalf("Version = %q, want %q", cmd.Version, want)
	}
}

func TestNewCommand_FileArgumentsNeedParseFile(t *testing.T) {
	d := &driver[[]string, string]{lang: scriptLang(io.Discard, nil)}
	cmd, err := d.newCommand()
	if err != nil {
		t.Fatalf("newCommand: %v", err)
	}
	if cmd.Use != "toy [options] [file ...]" {
		t.Fatalf("Use = %q, want the file arguments advertised", cmd.Use)
	}

	d.lang.ParseFile = nil
	cmd, err = d.newCommand()
	if err != nil {
		t.Fatalf("newCommand: %v", err)
	}
	if cmd.Use != "toy [options]" {
		t.Fatalf("Use = %q, want no file arguments without ParseFile", cmd.Use)
	}
}
