package calc

import (
	"fmt"
	"strconv"

	"glot/diag"
	"glot/source"
)

// parseError describes a parse failure for the shell to translate. The
// message is internal detail; users see the conventional report at the
// carried span.
type parseError struct {
	span source.Span
	msg  string
}

func (e *parseError) Error() string { return e.msg }

func (e *parseError) Span() source.Span { return e.span }

type parser struct {
	lx  *lexer
	tok token
}

func newParser(f *source.File) (*parser, error) {
	p := &parser{lx: newLexer(f)}
	return p, p.advance()
}

func (p *parser) advance() error {
	t, err := p.lx.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.tok.Kind != kind {
		return token{}, p.errHere("expected %s, found %s", what, p.tok.Kind)
	}
	t := p.tok
	return t, p.advance()
}

func (p *parser) errHere(format string, args ...any) error {
	return &parseError{span: p.tok.Span, msg: fmt.Sprintf(format, args...)}
}

// parseFile parses a whole file into its toplevel commands. Commands are
// self-delimiting; semicolons between them are allowed and ignored.
func parseFile(f *source.File) ([]Command, error) {
	p, err := newParser(f)
	if err != nil {
		return nil, err
	}
	var cmds []Command
	for p.tok.Kind != tokEOF {
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
		if err := p.skipSemis(); err != nil {
			return nil, err
		}
	}
	return cmds, nil
}

// parseOne parses exactly one interactive command.
func parseOne(f *source.File) (Command, error) {
	p, err := newParser(f)
	if err != nil {
		return nil, err
	}
	cmd, err := p.parseCommand()
	if err != nil {
		return nil, err
	}
	if err := p.skipSemis(); err != nil {
		return nil, err
	}
	if p.tok.Kind != tokEOF {
		return nil, p.errHere("unexpected %s after the command", p.tok.Kind)
	}
	return cmd, nil
}

func (p *parser) skipSemis() error {
	for p.tok.Kind == tokSemi {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseCommand() (Command, error) {
	switch p.tok.Kind {
	case tokLet:
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expect(tokIdent, "a name after let")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokAssign, "= after the name"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return Def{Name: name.Text, NameSpan: name.Span, Body: body}, nil

	case tokLoad:
		if err := p.advance(); err != nil {
			return nil, err
		}
		path, err := p.expect(tokString, "a quoted path after load")
		if err != nil {
			return nil, err
		}
		return Load{Path: path.Text, PathSpan: path.Span}, nil

	case tokDirective:
		t := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch t.Text {
		case "#help":
			return Help{}, nil
		case "#env":
			return ShowEnv{}, nil
		}
		return nil, &parseError{span: t.Span, msg: fmt.Sprintf("unknown directive %s", t.Text)}

	default:
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return Eval{Body: body}, nil
	}
}

func binaryPrec(kind tokenKind) (prec int, rightAssoc, ok bool) {
	switch kind {
	case tokPlus, tokMinus:
		return 1, false, true
	case tokStar, tokSlash, tokPercent:
		return 2, false, true
	case tokCaret:
		return 3, true, true
	}
	return 0, false, false
}

func binaryOp(kind tokenKind) Op {
	switch kind {
	case tokPlus:
		return OpAdd
	case tokMinus:
		return OpSub
	case tokStar:
		return OpMul
	case tokSlash:
		return OpDiv
	case tokPercent:
		return OpMod
	}
	return OpPow
}

func (p *parser) parseExpr() (Expr, error) {
	return p.parseBinary(1)
}

// parseBinary climbs operator precedence; right-associative operators
// re-enter at their own level instead of one above.
func (p *parser) parseBinary(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec, rightAssoc, ok := binaryPrec(p.tok.Kind)
		if !ok || prec < minPrec {
			return left, nil
		}
		op := binaryOp(p.tok.Kind)
		if err := p.advance(); err != nil {
			return nil, err
		}
		next := prec + 1
		if rightAssoc {
			next = prec
		}
		right, err := p.parseBinary(next)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right, span: left.Span().Cover(right.Span())}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if p.tok.Kind == tokMinus {
		t := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpNeg, X: x, span: t.Span.Cover(x.Span())}, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (Expr, error) {
	switch p.tok.Kind {
	case tokInt:
		t := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return nil, diag.SyntaxErrorf(t.Span, "integer literal %s out of range", t.Text)
		}
		return &Number{Value: v, span: t.Span}, nil

	case tokIdent:
		t := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Var{Name: t.Text, span: t.Span}, nil

	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "a closing parenthesis"); err != nil {
			return nil, err
		}
		return x, nil
	}
	return nil, p.errHere("expected an expression, found %s", p.tok.Kind)
}
