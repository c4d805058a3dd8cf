package shell

import (
	"context"

	"glot/diag"
	"glot/source"
)

// loader is the file pipeline shared by -l loads, file arguments, and
// language load directives.
type loader[Env, Cmd any] struct {
	lang    *Language[Env, Cmd]
	printer *diag.Printer
}

// load reads, parses, and folds one file into env, threading env through
// the commands left to right. The returned environment always reflects
// the commands that completed, even when err is non-nil, so a caller can
// decide what an aborted load leaves behind.
func (ld *loader[Env, Cmd]) load(ctx context.Context, env Env, path string, interactive bool) (Env, error) {
	if ld.lang.ParseFile == nil {
		return env, diag.Fatalf("%s cannot load files", ld.lang.Name)
	}

	f, err := source.ReadFile(path)
	if err != nil {
		return env, diag.Fatalf("%v", err)
	}
	ld.printer.Files.Add(f)

	cmds, err := ld.lang.ParseFile(f)
	if err != nil {
		return env, diag.FromParse(err, source.At(source.Pos{Name: f.Name, Line: 1}))
	}

	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return env, err
		}
		next, err := ld.lang.Exec(ctx, ld.load, interactive, env, cmd)
		if err != nil {
			return env, err
		}
		env = next
	}
	return env, nil
}
