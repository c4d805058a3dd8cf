package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"glot/source"
)

// Verbosity levels accepted by the printer. The default keeps errors and
// warnings and drops info chatter.
const (
	VerbosityQuiet   = 0
	VerbosityErrors  = 1
	VerbosityDefault = 2
	VerbosityAll     = 3
)

var (
	errorColor   = forced(color.FgRed, color.Bold)
	warningColor = forced(color.FgYellow, color.Bold)
	infoColor    = forced(color.FgCyan)
)

// forced builds a color that ignores the package-global TTY sniffing.
// Whether to colorize at all is the printer's decision, not the library's.
func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// Printer writes leveled reports to a single stream, normally stderr.
// Files, when set, lets the printer show the offending source line under
// positioned reports. The zero Verbosity silences everything; use
// NewPrinter for the conventional default.
type Printer struct {
	Out       io.Writer
	Verbosity int
	Color     bool
	Files     *source.Set
}

// NewPrinter returns a printer with the default verbosity and an empty
// file set.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		Out:       out,
		Verbosity: VerbosityDefault,
		Files:     source.NewSet(),
	}
}

// Enabled reports whether a report of severity sev would be printed.
func (p *Printer) Enabled(sev Severity) bool {
	return int(sev) <= p.Verbosity
}

// Report is the primitive behind every printing helper: a labelled and
// optionally positioned message, gated by verbosity. Positioned reports
// put the message on its own line under the header, followed by a source
// preview when the file is known.
func (p *Printer) Report(sev Severity, label string, span source.Span, format string, args ...any) {
	if !p.Enabled(sev) {
		return
	}

	head := label
	if p.Color {
		head = p.paint(sev, label)
	}
	msg := fmt.Sprintf(format, args...)

	if span.Known() {
		fmt.Fprintf(p.Out, "%s at %s:\n%s\n", head, span, msg)
		p.preview(sev, span)
		return
	}
	fmt.Fprintf(p.Out, "%s: %s\n", head, msg)
}

// Print reports a diagnostic under its kind's label.
func (p *Printer) Print(d *Diagnostic) {
	p.Report(d.Kind.Severity(), d.Kind.Label(), d.Span, "%s", d.Message)
}

// Warningf reports a positioned warning.
func (p *Printer) Warningf(span source.Span, format string, args ...any) {
	p.Report(SevWarning, KindWarning.Label(), span, format, args...)
}

// Infof reports unpositioned progress chatter, visible at verbosity 3.
func (p *Printer) Infof(format string, args ...any) {
	p.Report(SevInfo, "Info", source.Span{}, format, args...)
}

func (p *Printer) paint(sev Severity, s string) string {
	switch sev {
	case SevError:
		return errorColor.Sprint(s)
	case SevWarning:
		return warningColor.Sprint(s)
	default:
		return infoColor.Sprint(s)
	}
}

// preview prints the offending line with a caret underline. It needs the
// span's file in Files and a span that starts inside the line; anything
// else prints nothing. Widths are measured in display cells so the caret
// lands right even after tabs-free CJK text.
func (p *Printer) preview(sev Severity, span source.Span) {
	if p.Files == nil {
		return
	}
	f, ok := p.Files.Lookup(span.Begin.Name)
	if !ok {
		return
	}
	line := f.Line(span.Begin)
	col := span.Begin.Column()
	if line == "" || col < 0 || col > len(line) {
		return
	}

	width := 1
	if span.End.Line == span.Begin.Line {
		end := span.End.Offset - span.Begin.LineOffset
		if end > len(line) {
			end = len(line)
		}
		if end > col {
			width = runewidth.StringWidth(line[col:end])
		}
	}
	if width < 1 {
		width = 1
	}

	marker := "^" + strings.Repeat("~", width-1)
	if p.Color {
		marker = p.paint(sev, marker)
	}
	indent := runewidth.StringWidth(line[:col])
	fmt.Fprintf(p.Out, "  %s\n  %s%s\n", line, strings.Repeat(" ", indent), marker)
}
