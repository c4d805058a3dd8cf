package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"glot/diag"
	"glot/source"
)

// LoadFunc re-enters the shell's file pipeline so a language can implement
// a load directive. The interactive flag controls whether the loaded
// commands echo their results.
type LoadFunc[Env any] func(ctx context.Context, env Env, path string, interactive bool) (Env, error)

// Language describes one toy language to the shell. Fill in the fields
// and hand the value to Run or Main; a nil function field means the
// capability is absent. At least one of Parse and ParseFile is required.
type Language[Env, Cmd any] struct {
	// Name is shown in prompts, usage, and version output, and names the
	// history file.
	Name string

	// Version overrides the driver build version in -v output.
	Version string

	// HelpDirective, when non-empty, is mentioned in the banner as the
	// way to ask the language for help (for example "#help").
	HelpDirective string

	// Flags registers language-specific options. A name or shorthand that
	// collides with a shell flag is a startup error.
	Flags func(fs *pflag.FlagSet)

	// Ready is called once with the configured reporter, before any file
	// loads. Languages keep the reporter to emit warnings and traces of
	// their own.
	Ready func(p *diag.Printer)

	// Init produces the starting environment.
	Init func() Env

	// Prompt and MorePrompt override the default pair: "name> " and the
	// same width of spaces followed by "> " for continuation lines.
	Prompt     string
	MorePrompt string

	// ReadMore reports whether the accumulated interactive input is still
	// incomplete and another line should be requested. Nil means every
	// line is a complete command.
	ReadMore func(buffered string) bool

	// ParseFile parses a whole file into toplevel commands. Nil means the
	// language cannot load files; file arguments and -l are then refused.
	ParseFile func(f *source.File) ([]Cmd, error)

	// Parse parses a single interactive command. Nil disables the shell,
	// leaving a pure batch tool.
	Parse func(f *source.File) (Cmd, error)

	// Exec runs one command against env and returns the successor
	// environment. load re-enters the file pipeline for load directives.
	Exec func(ctx context.Context, load LoadFunc[Env], interactive bool, env Env, cmd Cmd) (Env, error)
}

func (l *Language[Env, Cmd]) validate() error {
	if l == nil {
		return errors.New("nil language")
	}
	if l.Name == "" {
		return errors.New("language has no name")
	}
	if l.Init == nil {
		return fmt.Errorf("language %s has no Init", l.Name)
	}
	if l.Exec == nil {
		return fmt.Errorf("language %s has no Exec", l.Name)
	}
	if l.Parse == nil && l.ParseFile == nil {
		return fmt.Errorf("language %s has neither Parse nor ParseFile", l.Name)
	}
	return nil
}

func (l *Language[Env, Cmd]) prompt() string {
	if l.Prompt != "" {
		return l.Prompt
	}
	return l.Name + "> "
}

// morePrompt aligns the continuation marker under the main prompt.
func (l *Language[Env, Cmd]) morePrompt() string {
	if l.MorePrompt != "" {
		return l.MorePrompt
	}
	return strings.Repeat(" ", len(l.Name)) + "> "
}
