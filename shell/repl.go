package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"glot/diag"
	"glot/source"
)

// Session is the interactive loop for one language: read a command
// (accumulating lines while the language asks for more), parse it,
// execute it, and carry the environment forward. Failed commands report
// and leave the environment untouched.
type Session[Env, Cmd any] struct {
	lang    *Language[Env, Cmd]
	printer *diag.Printer
	reader  lineReader
	load    LoadFunc[Env]
	out     io.Writer
	env     Env
}

// Run loops until end of input. Ctrl-C drops the pending command or
// cancels the running one; only a broken reader or a non-diagnostic
// failure ends the session with an error.
func (s *Session[Env, Cmd]) Run(ctx context.Context) error {
	for {
		cmdCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		text, err := s.readCommand()
		if err != nil {
			stop()
			switch {
			case errors.Is(err, io.EOF):
				fmt.Fprintln(s.out)
				return nil
			case errors.Is(err, errInterrupted):
				s.interrupted()
				continue
			default:
				return fmt.Errorf("read command: %w", err)
			}
		}

		err = s.execute(cmdCtx, text)
		stop()
		if err != nil {
			return err
		}
	}
}

// readCommand accumulates input lines until the language stops asking for
// more. An interrupt or EOF mid-command discards the partial input.
func (s *Session[Env, Cmd]) readCommand() (string, error) {
	var b strings.Builder
	for {
		prompt := s.lang.prompt()
		if b.Len() > 0 {
			prompt = s.lang.morePrompt()
		}
		line, err := s.reader.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		buffered := b.String()
		if s.lang.ReadMore == nil || !s.lang.ReadMore(buffered) {
			return buffered, nil
		}
	}
}

// execute runs one command text against the current environment. A
// diagnostic reports and keeps the old environment; only non-diagnostic
// failures propagate.
func (s *Session[Env, Cmd]) execute(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if s.reader != nil {
		s.reader.AppendHistory(strings.ReplaceAll(text, "\n", " "))
	}

	f := source.NewFile("", []byte(text))
	s.printer.Files.Add(f)

	cmd, err := s.lang.Parse(f)
	if err != nil {
		s.printer.Print(diag.FromParse(err, source.At(source.Pos{Line: 1})))
		return nil
	}

	env, err := s.lang.Exec(ctx, s.load, true, s.env, cmd)
	if err != nil {
		if ctx.Err() != nil {
			s.interrupted()
			return nil
		}
		var d *diag.Diagnostic
		if errors.As(err, &d) {
			s.printer.Print(d)
			return nil
		}
		return err
	}
	s.env = env
	return nil
}

// interrupted acknowledges a Ctrl-C, at every verbosity.
func (s *Session[Env, Cmd]) interrupted() {
	fmt.Fprintln(s.printer.Out, "Interrupted.")
}
