// Package pprint parenthesizes expression output by precedence level.
//
// A printer for an expression tree calls Print with the level of the node
// being rendered and the maximum level its context admits; the output is
// wrapped in parentheses exactly when the node binds too loosely for the
// context. The usual recursion rule for a left-associative binary operator
// at level n prints the left operand with max n and the right operand with
// max n-1, so "1 - 2 - 3" and "1 - (2 - 3)" survive a round trip through
// parse and print. Right-associative operators flip the rule.
package pprint

import (
	"fmt"
	"io"
)

// Print renders one node, parenthesizing when level exceeds max.
func Print(w io.Writer, max, level int, render func(io.Writer) error) error {
	if level > max {
		if _, err := io.WriteString(w, "("); err != nil {
			return err
		}
		if err := render(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, ")")
		return err
	}
	return render(w)
}

// Printf renders a formatted leaf, parenthesizing when level exceeds max.
func Printf(w io.Writer, max, level int, format string, args ...any) error {
	return Print(w, max, level, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	})
}

// Sequence renders items with sep between neighbours and none after the
// last. The first failing item aborts the sequence.
func Sequence(w io.Writer, sep string, items ...func(io.Writer) error) error {
	for i, item := range items {
		if i > 0 {
			if _, err := io.WriteString(w, sep); err != nil {
				return err
			}
		}
		if err := item(w); err != nil {
			return err
		}
	}
	return nil
}
