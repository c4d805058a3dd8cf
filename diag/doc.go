// Package diag defines the diagnostic model shared by the shell and the
// languages it hosts.
//
// # Purpose
//
//   - Provide a position-tagged error type (Diagnostic) that travels the
//     ordinary error channel of a language implementation.
//   - Classify failures by phase (Kind) with the stable labels users see:
//     "Fatal error", "Syntax error", "Typing error", "Runtime error",
//     "Warning".
//   - Offer a verbosity-gated Printer that renders reports with their
//     source position and, when the file is known, the offending line.
//
// # Contract with languages
//
// A language signals a user-level failure by returning *Diagnostic from
// Parse or Exec. The shell prints it and keeps the session alive; any
// other error type is treated as a driver bug and aborts. Scanners that
// cannot make sense of the input return ErrUnrecognizedToken (optionally
// wrapped, optionally implementing Spanner); FromParse folds everything
// else into the conventional "general confusion" syntax error.
//
// Severity ranks double as verbosity thresholds: errors print from
// verbosity 1, warnings from 2 (the default), info from 3.
package diag
