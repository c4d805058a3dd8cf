// Package calc is a small integer calculator: arithmetic with let
// bindings, a load directive for running files, and #help/#env toplevel
// directives. It is the demonstration language for the glot shell and
// exercises every capability the shell offers.
package calc

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"glot/diag"
	"glot/shell"
)

// New describes the calculator to the shell.
func New() *shell.Language[Env, Command] {
	return newLanguage(os.Stdout)
}

func newLanguage(out io.Writer) *shell.Language[Env, Command] {
	var (
		trace  bool
		report *diag.Printer
	)
	return &shell.Language[Env, Command]{
		Name:          "calc",
		HelpDirective: "#help",
		Flags: func(fs *pflag.FlagSet) {
			fs.BoolVar(&trace, "trace-eval", false, "report every evaluation step")
		},
		Ready:     func(p *diag.Printer) { report = p },
		Init:      func() Env { return Env{} },
		ReadMore:  needsMore,
		Parse:     parseOne,
		ParseFile: parseFile,
		Exec: func(ctx context.Context, load shell.LoadFunc[Env], interactive bool, env Env, cmd Command) (Env, error) {
			st := execState{out: out, load: load, interactive: interactive, trace: trace, report: report}
			return execute(ctx, st, env, cmd)
		},
	}
}

// needsMore reports whether the accumulated input still has open
// parentheses. A plain byte count; strings and comments are not
// excluded.
func needsMore(text string) bool {
	return strings.Count(text, "(") > strings.Count(text, ")")
}

// execState carries what one Exec call needs besides the environment.
type execState struct {
	out         io.Writer
	load        shell.LoadFunc[Env]
	interactive bool
	trace       bool
	report      *diag.Printer
}

func execute(ctx context.Context, st execState, env Env, cmd Command) (Env, error) {
	switch cmd := cmd.(type) {
	case Def:
		if cmd.Name == itName {
			return env, diag.TypingErrorf(cmd.NameSpan, "%s is reserved for the last result", itName)
		}
		v, err := st.eval(env, cmd.Body)
		if err != nil {
			return env, err
		}
		env = env.bind(cmd.Name, v)
		if st.interactive {
			fmt.Fprintf(st.out, "%s = %d\n", cmd.Name, v)
		}
		return env, nil

	case Eval:
		v, err := st.eval(env, cmd.Body)
		if err != nil {
			return env, err
		}
		env = env.bind(itName, v)
		if st.interactive {
			fmt.Fprintf(st.out, "- : %d\n", v)
		}
		return env, nil

	case Load:
		return st.load(ctx, env, cmd.Path, false)

	case Help:
		writeHelp(st.out)
		return env, nil

	case ShowEnv:
		if err := writeEnv(st.out, env); err != nil {
			return env, err
		}
		return env, nil
	}
	return env, diag.Fatalf("unhandled command %T", cmd)
}

func (st execState) eval(env Env, body Expr) (int64, error) {
	ev := &evaluator{env: env, trace: st.trace, report: st.report}
	return ev.eval(body)
}
