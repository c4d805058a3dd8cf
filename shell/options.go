package shell

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"glot/diag"
	"glot/internal/version"
)

// newCommand assembles the cobra command for the language: the fixed shell
// flags, the -v version path, and the language's own flags merged in with
// collision checking. RunE is left for the caller to attach.
func (d *driver[Env, Cmd]) newCommand() (*cobra.Command, error) {
	lang := d.lang

	use := lang.Name + " [options]"
	argPolicy := cobra.NoArgs
	if lang.ParseFile != nil {
		use += " [file ...]"
		argPolicy = cobra.ArbitraryArgs
	}

	cmd := &cobra.Command{
		Use:           use,
		Short:         fmt.Sprintf("The %s interactive shell", lang.Name),
		Args:          argPolicy,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.StringArray("wrapper", nil, "wrap the shell with `program` instead of the default candidates")
	flags.Bool("no-wrapper", false, "run without a line-editing wrapper")
	flags.BoolP("non-interactive", "n", false, "do not run the interactive shell")
	flags.StringArrayP("load", "l", nil, "load `file` into the initial environment")
	flags.Int("verbosity", diag.VerbosityDefault, "report level: 0 silent, 1 errors, 2 +warnings, 3 +info")
	flags.String("color", "auto", "colorize reports (auto|on|off)")
	flags.Bool("ui", false, "run the full-screen shell")
	flags.BoolP("version", "v", false, "print version information and exit")

	langVersion := lang.Version
	if langVersion == "" {
		langVersion = version.String()
	}
	cmd.Version = fmt.Sprintf("%s %s (%s/%s)", lang.Name, langVersion, runtime.GOOS, runtime.GOARCH)
	cmd.SetVersionTemplate("{{.Version}}\n")

	if err := mergeLanguageFlags(flags, lang.Flags); err != nil {
		return nil, err
	}
	return cmd, nil
}

// mergeLanguageFlags folds the language's flag definitions into the shell
// flag set, refusing any name or shorthand already taken. AddFlagSet would
// skip duplicates silently, which hides exactly the bug this catches.
func mergeLanguageFlags(dst *pflag.FlagSet, register func(*pflag.FlagSet)) error {
	if register == nil {
		return nil
	}
	extra := pflag.NewFlagSet("language", pflag.ContinueOnError)
	register(extra)

	var conflict error
	extra.VisitAll(func(f *pflag.Flag) {
		if conflict != nil {
			return
		}
		if dst.Lookup(f.Name) != nil {
			conflict = fmt.Errorf("flag --%s is already taken by the shell", f.Name)
			return
		}
		if f.Shorthand != "" {
			if prev := dst.ShorthandLookup(f.Shorthand); prev != nil {
				conflict = fmt.Errorf("shorthand -%s of --%s is already taken by --%s", f.Shorthand, f.Name, prev.Name)
				return
			}
		}
		dst.AddFlag(f)
	})
	return conflict
}

type flagValues struct {
	wrapper        []string
	noWrapper      bool
	nonInteractive bool
	loads          []string
	verbosity      int
	colorMode      string
	ui             bool
}

func readFlags(flags *pflag.FlagSet) (flagValues, error) {
	var v flagValues
	var err error
	if v.wrapper, err = flags.GetStringArray("wrapper"); err != nil {
		return v, err
	}
	if v.noWrapper, err = flags.GetBool("no-wrapper"); err != nil {
		return v, err
	}
	if v.nonInteractive, err = flags.GetBool("non-interactive"); err != nil {
		return v, err
	}
	if v.loads, err = flags.GetStringArray("load"); err != nil {
		return v, err
	}
	if v.verbosity, err = flags.GetInt("verbosity"); err != nil {
		return v, err
	}
	if v.colorMode, err = flags.GetString("color"); err != nil {
		return v, err
	}
	if v.ui, err = flags.GetBool("ui"); err != nil {
		return v, err
	}
	return v, nil
}

// buildConfig resolves the final configuration: defaults, then the rc
// file, then whatever the command line explicitly set. Files queue in
// execution order, -l loads ahead of file arguments; a file argument also
// turns the interactive shell off, -l does not.
func buildConfig(flags *pflag.FlagSet, fileArgs []string, rc *rcFile) (Config, error) {
	cfg := defaultConfig()
	if rc != nil {
		if err := rc.apply(&cfg); err != nil {
			return cfg, err
		}
	}

	fv, err := readFlags(flags)
	if err != nil {
		return cfg, err
	}

	if flags.Changed("verbosity") {
		cfg.Verbosity = fv.verbosity
	}
	if flags.Changed("color") {
		cfg.ColorMode = fv.colorMode
	}
	if flags.Changed("ui") {
		cfg.UI = fv.ui
	}
	if len(fv.wrapper) > 0 {
		cfg.Wrapper = fv.wrapper
	}
	if fv.noWrapper {
		cfg.Wrapper = nil
	}
	if fv.nonInteractive {
		cfg.Interactive = false
	}

	for _, path := range fv.loads {
		cfg.Files = append(cfg.Files, FileEntry{Path: path})
	}
	for _, path := range fileArgs {
		cfg.Files = append(cfg.Files, FileEntry{Path: path, Interactive: true})
		cfg.Interactive = false
	}

	if !validVerbosity(cfg.Verbosity) {
		return cfg, fmt.Errorf("invalid --verbosity %d (want 0-3)", cfg.Verbosity)
	}
	if !validColorMode(cfg.ColorMode) {
		return cfg, fmt.Errorf("invalid --color %q (want auto, on, or off)", cfg.ColorMode)
	}
	return cfg, nil
}
