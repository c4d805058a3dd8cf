package calc

import (
	"io"

	"glot/source"
)

// Command is one parsed toplevel unit: a binding, an expression to
// evaluate, a file to load, or a directive.
type Command interface{ isCommand() }

// Def binds the value of Body to Name.
type Def struct {
	Name     string
	NameSpan source.Span
	Body     Expr
}

// Eval evaluates Body and, interactively, echoes the result and binds it
// to the name it.
type Eval struct {
	Body Expr
}

// Load runs the commands of another file in the current environment.
type Load struct {
	Path     string
	PathSpan source.Span
}

// Help prints the toplevel summary.
type Help struct{}

// ShowEnv prints the visible bindings.
type ShowEnv struct{}

func (Def) isCommand()     {}
func (Eval) isCommand()    {}
func (Load) isCommand()    {}
func (Help) isCommand()    {}
func (ShowEnv) isCommand() {}

// Op enumerates the expression operators.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpNeg
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub, OpNeg:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "^"
	}
	return "?"
}

// Expr is a parsed expression. Spans cover the whole extent of the node.
type Expr interface {
	Span() source.Span
	print(w io.Writer, max int) error
}

// Number is an integer literal.
type Number struct {
	Value int64
	span  source.Span
}

// Var is a reference to a bound name.
type Var struct {
	Name string
	span source.Span
}

// Unary is a prefix operator application, OpNeg only.
type Unary struct {
	Op   Op
	X    Expr
	span source.Span
}

// Binary is an infix operator application.
type Binary struct {
	Op   Op
	L, R Expr
	span source.Span
}

func (e *Number) Span() source.Span { return e.span }
func (e *Var) Span() source.Span    { return e.span }
func (e *Unary) Span() source.Span  { return e.span }
func (e *Binary) Span() source.Span { return e.span }
