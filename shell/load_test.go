package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glot/diag"
	"glot/source"
)

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newTestLoader(lang *Language[[]string, string]) *loader[[]string, string] {
	return &loader[[]string, string]{lang: lang, printer: diag.NewPrinter(&bytes.Buffer{})}
}

func TestLoader_FoldsFileIntoEnv(t *testing.T) {
	tests := []struct {
		name        string
		interactive bool
		wantEcho    string
	}{
		{"silent", false, ""},
		{"echoing", true, "did a\ndid b\ndid c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var echo bytes.Buffer
			var rec []execRecord
			ld := newTestLoader(scriptLang(&echo, &rec))
			path := writeScript(t, "prog.toy", "a\nb\nc\n")

			env, err := ld.load(context.Background(), nil, path, tt.interactive)
			if err != nil {
				t.Fatalf("load returned error: %v", err)
			}
			if got := strings.Join(env, " "); got != "a b c" {
				t.Fatalf("env = %q, want %q", got, "a b c")
			}
			if got := echo.String(); got != tt.wantEcho {
				t.Fatalf("echo = %q, want %q", got, tt.wantEcho)
			}
			for i, r := range rec {
				if r.interactive != tt.interactive {
					t.Fatalf("command %d ran with interactive=%v, want %v", i, r.interactive, tt.interactive)
				}
			}
		})
	}
}

func TestLoader_RegistersFileForDiagnostics(t *testing.T) {
	ld := newTestLoader(scriptLang(io.Discard, nil))
	path := writeScript(t, "prog.toy", "a\n")

	if _, err := ld.load(context.Background(), nil, path, false); err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if _, ok := ld.printer.Files.Lookup(path); !ok {
		t.Fatalf("loaded file %q not registered with the printer", path)
	}
}

func TestLoader_KeepsCompletedPrefixOnFailure(t *testing.T) {
	var rec []execRecord
	ld := newTestLoader(scriptLang(io.Discard, &rec))
	path := writeScript(t, "prog.toy", "a\nfail boom\nc\n")

	env, err := ld.load(context.Background(), nil, path, false)
	var d *diag.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("load error = %v, want a diagnostic", err)
	}
	if d.Kind != diag.KindRuntime || d.Message != "boom" {
		t.Fatalf("diagnostic = %v, want the runtime failure", d)
	}
	if got := strings.Join(env, " "); got != "a" {
		t.Fatalf("env = %q, want the completed prefix %q", got, "a")
	}
	checkRecords(t, rec, execRecord{"a", false}, execRecord{"fail boom", false})
}

func TestLoader_MissingFileIsFatal(t *testing.T) {
	ld := newTestLoader(scriptLang(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "ghost.toy")

	env, err := ld.load(context.Background(), []string{"seed"}, path, false)
	var d *diag.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("load error = %v, want a diagnostic", err)
	}
	if d.Kind != diag.KindFatal || !strings.Contains(d.Message, "ghost.toy") {
		t.Fatalf("diagnostic = %v, want a fatal report naming the file", d)
	}
	if got := strings.Join(env, " "); got != "seed" {
		t.Fatalf("env = %q, want it untouched", got)
	}
}

func TestLoader_RefusesWithoutParseFile(t *testing.T) {
	lang := scriptLang(io.Discard, nil)
	lang.ParseFile = nil
	ld := newTestLoader(lang)

	_, err := ld.load(context.Background(), nil, "prog.toy", false)
	var d *diag.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("load error = %v, want a diagnostic", err)
	}
	if d.Kind != diag.KindFatal || d.Message != "toy cannot load files" {
		t.Fatalf("diagnostic = %v, want the missing-capability report", d)
	}
}

func TestLoader_ParseFailureBecomesSyntax(t *testing.T) {
	lang := scriptLang(io.Discard, nil)
	lang.ParseFile = func(*source.File) ([]string, error) {
		return nil, errors.New("gibberish")
	}
	ld := newTestLoader(lang)
	path := writeScript(t, "bad.toy", "???\n")

	_, err := ld.load(context.Background(), nil, path, false)
	var d *diag.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("load error = %v, want a diagnostic", err)
	}
	if d.Kind != diag.KindSyntax || d.Message != "general confusion" {
		t.Fatalf("diagnostic = %v, want the syntax fallback", d)
	}
	if d.Span.Begin.Name != path || d.Span.Begin.Line != 1 {
		t.Fatalf("diagnostic span = %v, want the first line of %q", d.Span, path)
	}
}

func TestLoader_LoadDirectiveReenters(t *testing.T) {
	var rec []execRecord
	ld := newTestLoader(scriptLang(io.Discard, &rec))
	inner := writeScript(t, "inner.toy", "nested\n")
	outer := writeScript(t, "outer.toy", fmt.Sprintf("first\nload %s\nlast\n", inner))

	env, err := ld.load(context.Background(), nil, outer, false)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if got := strings.Join(env, " "); got != "first nested last" {
		t.Fatalf("env = %q, want %q", got, "first nested last")
	}
	checkRecords(t, rec,
		execRecord{"first", false},
		execRecord{"load " + inner, false},
		execRecord{"nested", false},
		execRecord{"last", false},
	)
}

func TestLoader_HonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var rec []execRecord
	ld := newTestLoader(scriptLang(io.Discard, &rec))
	path := writeScript(t, "prog.toy", "a\n")

	env, err := ld.load(ctx, nil, path, false)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("load error = %v, want context.Canceled", err)
	}
	if len(env) != 0 {
		t.Fatalf("env = %q, want nothing executed", env)
	}
	checkRecords(t, rec)
}
