package calc

import (
	"fmt"
	"io"
	"strings"

	"glot/pprint"
)

// Printing precedence levels, loosest last. A node is parenthesized
// exactly when its level exceeds what its context admits, so printed
// output re-parses to the same tree.
const (
	levelAtom = 0
	levelNeg  = 1
	levelPow  = 2
	levelMul  = 3
	levelAdd  = 4
)

func (op Op) level() int {
	switch op {
	case OpNeg:
		return levelNeg
	case OpPow:
		return levelPow
	case OpMul, OpDiv, OpMod:
		return levelMul
	case OpAdd, OpSub:
		return levelAdd
	}
	return levelAtom
}

func (e *Number) print(w io.Writer, max int) error {
	return pprint.Printf(w, max, levelAtom, "%d", e.Value)
}

func (e *Var) print(w io.Writer, max int) error {
	return pprint.Printf(w, max, levelAtom, "%s", e.Name)
}

func (e *Unary) print(w io.Writer, max int) error {
	return pprint.Print(w, max, levelNeg, func(w io.Writer) error {
		if _, err := io.WriteString(w, "-"); err != nil {
			return err
		}
		return e.X.print(w, levelAtom)
	})
}

func (e *Binary) print(w io.Writer, max int) error {
	level := e.Op.level()
	leftMax, rightMax := level, level-1
	if e.Op == OpPow {
		// Right-associative, so the rule flips.
		leftMax, rightMax = rightMax, leftMax
	}
	return pprint.Print(w, max, level, func(w io.Writer) error {
		if err := e.L.print(w, leftMax); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " %s ", e.Op); err != nil {
			return err
		}
		return e.R.print(w, rightMax)
	})
}

// ExprString renders e with the fewest parentheses that still re-parse
// to the same tree.
func ExprString(e Expr) string {
	var b strings.Builder
	_ = e.print(&b, levelAdd)
	return b.String()
}

// writeEnv lists the visible bindings on one line, most recent first.
func writeEnv(w io.Writer, env Env) error {
	entries := env.entries()
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no bindings")
		return err
	}
	items := make([]func(io.Writer) error, len(entries))
	for i, ent := range entries {
		items[i] = func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "%s = %d", ent.name, ent.value)
			return err
		}
	}
	if err := pprint.Sequence(w, ", ", items...); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeHelp(w io.Writer) {
	fmt.Fprintln(w, "Toplevel commands:")
	fmt.Fprintln(w, `  let <name> = <expr>    bind a value`)
	fmt.Fprintln(w, `  <expr>                 evaluate and bind the result to it`)
	fmt.Fprintln(w, `  load "<path>"          run a file in the current environment`)
	fmt.Fprintln(w, `  #env                   show the visible bindings`)
	fmt.Fprintln(w, `  #help                  show this summary`)
}
