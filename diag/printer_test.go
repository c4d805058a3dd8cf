package diag

import (
	"bytes"
	"strings"
	"testing"

	"glot/source"
)

func TestPrinter_UnpositionedReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Print(Fatalf("cannot open %q", "x.calc"))

	expected := "Fatal error: cannot open \"x.calc\"\n"
	if buf.String() != expected {
		t.Errorf("output = %q, want %q", buf.String(), expected)
	}
}

func TestPrinter_PositionedReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	sp := span("t.calc", 4, 5)
	p.Print(SyntaxErrorf(sp, "unrecognised symbol"))

	expected := "Syntax error at file \"t.calc\", line 1, characters 4-5:\nunrecognised symbol\n"
	if buf.String() != expected {
		t.Errorf("output = %q, want %q", buf.String(), expected)
	}
}

func TestPrinter_Preview(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Files.Add(source.NewFile("t.calc", []byte("1 + $ 2")))

	p.Print(SyntaxErrorf(span("t.calc", 4, 5), "unrecognised symbol"))

	expected := strings.Join([]string{
		`Syntax error at file "t.calc", line 1, characters 4-5:`,
		"unrecognised symbol",
		"  1 + $ 2",
		"      ^",
		"",
	}, "\n")
	if buf.String() != expected {
		t.Errorf("output = %q, want %q", buf.String(), expected)
	}
}

func TestPrinter_PreviewMarkerWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Files.Add(source.NewFile("t.calc", []byte("let foo = ")))

	p.Print(TypingErrorf(span("t.calc", 4, 7), "unknown variable"))

	if !strings.Contains(buf.String(), "    ^~~\n") {
		t.Errorf("output %q should underline three columns", buf.String())
	}
}

func TestPrinter_PreviewMultibyteAlignment(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	// Two double-width runes before the offending byte: the caret indent
	// counts display cells, not bytes.
	p.Files.Add(source.NewFile("t.calc", []byte("世界 + $")))

	p.Print(SyntaxErrorf(span("t.calc", 9, 10), "unrecognised symbol"))

	expected := strings.Join([]string{
		`Syntax error at file "t.calc", line 1, characters 9-10:`,
		"unrecognised symbol",
		"  世界 + $",
		"         ^",
		"",
	}, "\n")
	if buf.String() != expected {
		t.Errorf("output = %q, want %q", buf.String(), expected)
	}
}

func TestPrinter_PreviewSkippedForUnknownFile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Print(SyntaxErrorf(span("missing.calc", 0, 1), "general confusion"))

	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("output %q should have no preview lines", buf.String())
	}
}

func TestPrinter_VerbosityGating(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		report    func(p *Printer)
		printed   bool
	}{
		{
			name:      "errors print at verbosity 1",
			verbosity: VerbosityErrors,
			report:    func(p *Printer) { p.Print(RuntimeErrorf(source.Span{}, "division by zero")) },
			printed:   true,
		},
		{
			name:      "warnings drop at verbosity 1",
			verbosity: VerbosityErrors,
			report:    func(p *Printer) { p.Warningf(source.Span{}, "unused binding") },
			printed:   false,
		},
		{
			name:      "warnings print at the default",
			verbosity: VerbosityDefault,
			report:    func(p *Printer) { p.Warningf(source.Span{}, "unused binding") },
			printed:   true,
		},
		{
			name:      "info drops at the default",
			verbosity: VerbosityDefault,
			report:    func(p *Printer) { p.Infof("loaded prelude") },
			printed:   false,
		},
		{
			name:      "info prints at verbosity 3",
			verbosity: VerbosityAll,
			report:    func(p *Printer) { p.Infof("loaded prelude") },
			printed:   true,
		},
		{
			name:      "quiet silences errors",
			verbosity: VerbosityQuiet,
			report:    func(p *Printer) { p.Print(Fatalf("boom")) },
			printed:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPrinter(&buf)
			p.Verbosity = tt.verbosity
			tt.report(p)
			if got := buf.Len() > 0; got != tt.printed {
				t.Errorf("printed = %v, want %v (output %q)", got, tt.printed, buf.String())
			}
		})
	}
}

func TestPrinter_Color(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Color = true

	p.Print(Fatalf("boom"))

	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("output %q should carry ANSI sequences when color is on", buf.String())
	}

	buf.Reset()
	p.Color = false
	p.Print(Fatalf("boom"))
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("output %q should be plain when color is off", buf.String())
	}
}

func TestPrinter_Enabled(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{})
	if !p.Enabled(SevError) || !p.Enabled(SevWarning) {
		t.Error("default verbosity should enable errors and warnings")
	}
	if p.Enabled(SevInfo) {
		t.Error("default verbosity should drop info")
	}
}
