package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"glot/diag"
	"glot/internal/ui"
	"glot/internal/version"
)

// Exit codes returned by Main.
const (
	ExitSuccess = 0
	// ExitFailure means a diagnostic escaped the catch points or the
	// session broke.
	ExitFailure = 1
	// ExitUsage means the options could not be parsed or validated.
	ExitUsage = 2
)

// Run executes the language's command line and exits the process. It is
// the usual main() body of a language binary.
func Run[Env, Cmd any](lang *Language[Env, Cmd]) {
	os.Exit(Main(lang, os.Args[1:]))
}

// Main executes the language's command line and returns the exit code.
func Main[Env, Cmd any](lang *Language[Env, Cmd], argv []string) int {
	d := &driver[Env, Cmd]{
		lang:     lang,
		argv:     argv,
		procArgv: os.Args,
		in:       os.Stdin,
		out:      os.Stdout,
		errw:     os.Stderr,
		ttyIn:    func() bool { return isTerminal(os.Stdin) },
		ttyOut:   func() bool { return isTerminal(os.Stdout) },
		ttyErr:   func() bool { return isTerminal(os.Stderr) },
		wrap:     tryWrapper,
	}
	return d.main()
}

// driver holds the wiring of one invocation. The terminal and process
// seams are plain fields so a test can run a whole session headless.
type driver[Env, Cmd any] struct {
	lang     *Language[Env, Cmd]
	argv     []string // arguments, program name excluded
	procArgv []string // full original argv, for wrapper re-exec
	startDir string   // rc search root, "" means the working directory

	in   io.Reader
	out  io.Writer
	errw io.Writer

	ttyIn  func() bool
	ttyOut func() bool
	ttyErr func() bool
	wrap   func(candidates, argv []string) (int, bool)

	printer *diag.Printer
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func (d *driver[Env, Cmd]) main() int {
	if err := d.lang.validate(); err != nil {
		fmt.Fprintf(d.errw, "%v\n", err)
		return ExitUsage
	}

	cmd, err := d.newCommand()
	if err != nil {
		fmt.Fprintf(d.errw, "%s: %v\n", d.lang.Name, err)
		return ExitUsage
	}

	code := ExitSuccess
	entered := false
	cmd.RunE = func(c *cobra.Command, args []string) error {
		entered = true
		code = d.run(c, args)
		return nil
	}
	cmd.SetArgs(d.argv)
	cmd.SetIn(d.in)
	cmd.SetOut(d.out)
	cmd.SetErr(d.errw)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(d.errw, "%s: %v\n", d.lang.Name, err)
		if !entered {
			fmt.Fprintf(d.errw, "Run '%s --help' for usage.\n", d.lang.Name)
			return ExitUsage
		}
		return ExitFailure
	}
	return code
}

func (d *driver[Env, Cmd]) run(cmd *cobra.Command, args []string) int {
	rc, err := loadRCFile(d.startDir)
	if err != nil {
		fmt.Fprintf(d.errw, "%s: %v\n", d.lang.Name, err)
		return ExitUsage
	}

	cfg, err := buildConfig(cmd.Flags(), args, rc)
	if err != nil {
		fmt.Fprintf(d.errw, "%s: %v\n", d.lang.Name, err)
		fmt.Fprintf(d.errw, "Run '%s --help' for usage.\n", d.lang.Name)
		return ExitUsage
	}

	p := diag.NewPrinter(d.errw)
	p.Verbosity = cfg.Verbosity
	p.Color = cfg.ColorMode == "on" || (cfg.ColorMode == "auto" && d.ttyErr())
	d.printer = p
	if d.lang.Ready != nil {
		d.lang.Ready(p)
	}

	// An external wrapper restarts the whole invocation around us, so it
	// has to win before any file loads.
	if cfg.Interactive && len(cfg.Wrapper) > 0 && d.ttyIn() && d.ttyOut() {
		if code, ok := d.wrap(cfg.Wrapper, d.procArgv); ok {
			return code
		}
	}

	ld := &loader[Env, Cmd]{lang: d.lang, printer: p}
	ctx := context.Background()
	env := d.lang.Init()
	for _, entry := range cfg.Files {
		env, err = ld.load(ctx, env, entry.Path, entry.Interactive)
		if err != nil {
			return d.fail(err)
		}
	}

	if !cfg.Interactive {
		return ExitSuccess
	}

	session := &Session[Env, Cmd]{
		lang:    d.lang,
		printer: p,
		load:    ld.load,
		out:     d.out,
		env:     env,
	}

	if cfg.UI {
		return d.runUI(ctx, session)
	}

	d.banner(cfg.ColorMode == "on" || (cfg.ColorMode == "auto" && d.ttyOut()))

	reader := d.newReader(cfg)
	session.reader = reader
	runErr := session.Run(ctx)
	if closeErr := reader.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		return d.fail(runErr)
	}
	return ExitSuccess
}

// fail reports a terminal error: diagnostics through the printer,
// anything else as a bare line.
func (d *driver[Env, Cmd]) fail(err error) int {
	var dg *diag.Diagnostic
	if errors.As(err, &dg) {
		d.printer.Print(dg)
	} else {
		fmt.Fprintf(d.errw, "%s: %v\n", d.lang.Name, err)
	}
	return ExitFailure
}

// newReader picks the input device: the built-in editor on a terminal no
// external wrapper claimed, a plain reader everywhere else.
func (d *driver[Env, Cmd]) newReader(cfg Config) lineReader {
	if len(cfg.Wrapper) > 0 && d.ttyIn() && d.ttyOut() {
		hist, err := OpenHistory(d.lang.Name, cfg.HistoryLimit)
		if err != nil {
			d.printer.Infof("history disabled: %v", err)
			hist = nil
		}
		return newLinerReader(hist)
	}
	return newPlainReader(d.in, d.out)
}

func (d *driver[Env, Cmd]) versionString() string {
	if d.lang.Version != "" {
		return d.lang.Version
	}
	return version.String()
}

// banner greets the interactive user the way toplevels traditionally do.
func (d *driver[Env, Cmd]) banner(useColor bool) {
	vstr := d.versionString()
	if useColor && d.lang.Version == "" {
		vstr = version.Pretty()
	}
	fmt.Fprintf(d.out, "%s %s\n", d.lang.Name, vstr)
	if d.lang.HelpDirective != "" {
		fmt.Fprintf(d.out, "Type %s for help. Press Ctrl-D to exit.\n", d.lang.HelpDirective)
	} else {
		fmt.Fprintln(d.out, "Press Ctrl-D to exit.")
	}
}

// runUI hands the session to the full-screen front-end. The language and
// the printer write to plain streams, so command output is detoured
// through a pipe into the transcript.
func (d *driver[Env, Cmd]) runUI(ctx context.Context, s *Session[Env, Cmd]) int {
	cfg := ui.Config{
		Title:      fmt.Sprintf("%s %s", d.lang.Name, d.versionString()),
		Prompt:     d.lang.prompt(),
		MorePrompt: d.lang.morePrompt(),
		ReadMore:   d.lang.ReadMore,
		Execute: func(text string) (string, error) {
			var reports bytes.Buffer
			prev := d.printer.Out
			d.printer.Out = &reports
			captured, err := captureStdout(func() error { return s.execute(ctx, text) })
			d.printer.Out = prev
			return captured + reports.String(), err
		},
	}
	if err := ui.Run(cfg); err != nil {
		return d.fail(err)
	}
	return ExitSuccess
}

// captureStdout runs fn with os.Stdout redirected into a pipe and returns
// what it printed. A drainer goroutine keeps the pipe from filling up
// while fn runs.
func captureStdout(fn func() error) (string, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	old := os.Stdout
	os.Stdout = w

	done := make(chan string, 1)
	go func() {
		var b strings.Builder
		_, _ = io.Copy(&b, r)
		done <- b.String()
	}()

	fnErr := fn()

	os.Stdout = old
	_ = w.Close()
	out := <-done
	_ = r.Close()
	return out, fnErr
}
