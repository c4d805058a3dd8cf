package diag

// Kind classifies a diagnostic by the phase that produced it. The label is
// part of the user-visible output format and is kept stable.
type Kind uint8

const (
	// KindFatal is for driver-level failures: unreadable files, broken
	// options, anything that is not the language's fault.
	KindFatal Kind = iota
	// KindSyntax is for scanner and parser failures.
	KindSyntax
	// KindTyping is for static checks a language runs before evaluation.
	KindTyping
	// KindRuntime is for failures during evaluation.
	KindRuntime
	KindWarning
)

// Label returns the header text used when the diagnostic is printed.
func (k Kind) Label() string {
	switch k {
	case KindFatal:
		return "Fatal error"
	case KindSyntax:
		return "Syntax error"
	case KindTyping:
		return "Typing error"
	case KindRuntime:
		return "Runtime error"
	case KindWarning:
		return "Warning"
	}
	return "Error"
}

// Severity maps the kind onto the verbosity ladder. Everything except
// warnings reports as an error.
func (k Kind) Severity() Severity {
	if k == KindWarning {
		return SevWarning
	}
	return SevError
}
