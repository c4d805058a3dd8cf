package diag

import (
	"errors"
	"fmt"

	"glot/source"
)

// Diagnostic is a position-tagged report. Language implementations return
// it through the ordinary error channel; the shell recognises it with
// errors.As, prints it, and keeps going, while any other error type tears
// the process down.
type Diagnostic struct {
	Kind    Kind
	Span    source.Span
	Message string
}

// Error renders the diagnostic on one line, for use in error chains.
func (d *Diagnostic) Error() string {
	if d.Span.Known() {
		return fmt.Sprintf("%s at %s: %s", d.Kind.Label(), d.Span, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind.Label(), d.Message)
}

// Newf builds a diagnostic of the given kind at span.
func Newf(kind Kind, span source.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	}
}

// Fatalf reports a driver-level failure with no useful position.
func Fatalf(format string, args ...any) *Diagnostic {
	return Newf(KindFatal, source.Span{}, format, args...)
}

// SyntaxErrorf reports a scan or parse failure at span.
func SyntaxErrorf(span source.Span, format string, args ...any) *Diagnostic {
	return Newf(KindSyntax, span, format, args...)
}

// TypingErrorf reports a static-check failure at span.
func TypingErrorf(span source.Span, format string, args ...any) *Diagnostic {
	return Newf(KindTyping, span, format, args...)
}

// RuntimeErrorf reports an evaluation failure at span.
func RuntimeErrorf(span source.Span, format string, args ...any) *Diagnostic {
	return Newf(KindRuntime, span, format, args...)
}

// Warningf reports a non-fatal finding at span.
func Warningf(span source.Span, format string, args ...any) *Diagnostic {
	return Newf(KindWarning, span, format, args...)
}

// ErrUnrecognizedToken is returned by scanners that hit a byte sequence
// with no meaning in the language. The shell translates it into the
// conventional "unrecognised symbol" syntax error; every other parse
// failure becomes "general confusion".
var ErrUnrecognizedToken = errors.New("unrecognised symbol")

// Spanner is implemented by parse errors that know where they happened.
// The shell uses it to position the translated syntax error.
type Spanner interface {
	Span() source.Span
}

// FromParse normalises a parse failure into a syntax diagnostic. Errors
// that already are diagnostics pass through untouched, so languages with
// precise reporting keep their messages.
func FromParse(err error, fallback source.Span) *Diagnostic {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d
	}

	span := fallback
	var sp Spanner
	if errors.As(err, &sp) {
		span = sp.Span()
	}

	if errors.Is(err, ErrUnrecognizedToken) {
		return SyntaxErrorf(span, "unrecognised symbol")
	}
	return SyntaxErrorf(span, "general confusion")
}
