package calc

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"glot/diag"
	"glot/source"
)

// scanError positions a lexical failure. The shell translates any error
// that wraps diag.ErrUnrecognizedToken into the conventional
// "unrecognised symbol" report at the carried span.
type scanError struct {
	span source.Span
	err  error
}

func (e *scanError) Error() string { return fmt.Sprintf("%s: %s", e.span, e.err) }

func (e *scanError) Unwrap() error { return e.err }

func (e *scanError) Span() source.Span { return e.span }

type lexer struct {
	file *source.File
	cur  source.Cursor
	look *token
}

func newLexer(f *source.File) *lexer {
	return &lexer{file: f, cur: source.NewCursor(f)}
}

// next returns the next significant token. After the input is exhausted
// it keeps returning EOF tokens.
func (lx *lexer) next() (token, error) {
	if lx.look != nil {
		t := *lx.look
		lx.look = nil
		return t, nil
	}
	if err := lx.skipTrivia(); err != nil {
		return token{}, err
	}
	if lx.cur.EOF() {
		return token{Kind: tokEOF, Span: source.At(lx.cur.Pos())}, nil
	}

	start := lx.cur.Mark()
	b := lx.cur.Peek()
	switch {
	case isDigit(b):
		return lx.scanNumber(start)
	case b == '"':
		return lx.scanString(start)
	case b == '#':
		return lx.scanDirective(start)
	case isIdentStartByte(b) || b >= utf8.RuneSelf:
		return lx.scanIdent(start)
	}

	if kind, ok := punctKind(b); ok {
		lx.cur.Bump()
		return lx.emit(start, kind), nil
	}

	lx.bumpRune()
	return token{}, &scanError{span: lx.cur.SpanFrom(start), err: diag.ErrUnrecognizedToken}
}

func (lx *lexer) peek() (token, error) {
	t, err := lx.next()
	if err != nil {
		return token{}, err
	}
	lx.look = &t
	return t, nil
}

func (lx *lexer) emit(start source.Pos, kind tokenKind) token {
	return token{Kind: kind, Span: lx.cur.SpanFrom(start), Text: lx.cur.Text(start)}
}

// skipTrivia consumes whitespace, // line comments, and nested /* */
// block comments. A block comment still open at end of input is a syntax
// error positioned there.
func (lx *lexer) skipTrivia() error {
	for !lx.cur.EOF() {
		b := lx.cur.Peek()
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			lx.cur.Bump()
			continue
		}
		if b != '/' {
			return nil
		}
		_, b1, ok := lx.cur.Peek2()
		if !ok {
			return nil
		}
		switch b1 {
		case '/':
			for !lx.cur.EOF() && lx.cur.Peek() != '\n' {
				lx.cur.Bump()
			}
		case '*':
			if err := lx.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (lx *lexer) skipBlockComment() error {
	lx.cur.Bump() // '/'
	lx.cur.Bump() // '*'
	depth := 1
	for !lx.cur.EOF() && depth > 0 {
		if b0, b1, ok := lx.cur.Peek2(); ok {
			if b0 == '/' && b1 == '*' {
				lx.cur.Bump()
				lx.cur.Bump()
				depth++
				continue
			}
			if b0 == '*' && b1 == '/' {
				lx.cur.Bump()
				lx.cur.Bump()
				depth--
				continue
			}
		}
		lx.cur.Bump()
	}
	if depth > 0 {
		return diag.SyntaxErrorf(source.At(lx.cur.Pos()), "unterminated comment")
	}
	return nil
}

func (lx *lexer) scanNumber(start source.Pos) (token, error) {
	for isDigit(lx.cur.Peek()) {
		lx.cur.Bump()
	}
	return lx.emit(start, tokInt), nil
}

// scanIdent scans a name, an ASCII fast path with a Unicode fallback.
// The text is NFC-normalized so visually identical names compare equal.
func (lx *lexer) scanIdent(start source.Pos) (token, error) {
	r, _ := lx.peekRune()
	if r >= utf8.RuneSelf && !unicode.IsLetter(r) {
		lx.bumpRune()
		return token{}, &scanError{span: lx.cur.SpanFrom(start), err: diag.ErrUnrecognizedToken}
	}
	lx.bumpRune()
	for {
		r, size := lx.peekRune()
		if size == 0 || !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(start, tokIdent)
	tok.Text = norm.NFC.String(tok.Text)
	if kind, ok := keywords[tok.Text]; ok {
		tok.Kind = kind
	}
	return tok, nil
}

// scanString scans a quoted path. No escape sequences; the text is the
// raw bytes between the quotes.
func (lx *lexer) scanString(start source.Pos) (token, error) {
	lx.cur.Bump() // opening quote
	for !lx.cur.EOF() && lx.cur.Peek() != '"' {
		lx.cur.Bump()
	}
	if lx.cur.EOF() {
		return token{}, diag.SyntaxErrorf(source.At(lx.cur.Pos()), "unterminated string")
	}
	lx.cur.Bump() // closing quote
	tok := lx.emit(start, tokString)
	tok.Text = tok.Text[1 : len(tok.Text)-1]
	return tok, nil
}

func (lx *lexer) scanDirective(start source.Pos) (token, error) {
	lx.cur.Bump() // '#'
	for {
		r, size := lx.peekRune()
		if size == 0 || !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}
	return lx.emit(start, tokDirective), nil
}

func (lx *lexer) peekRune() (r rune, size int) {
	if lx.cur.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cur.Peek()
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cur.Pos().Offset:])
}

func (lx *lexer) bumpRune() {
	_, size := lx.peekRune()
	for i := 0; i < size; i++ {
		lx.cur.Bump()
	}
}

func punctKind(b byte) (tokenKind, bool) {
	switch b {
	case '+':
		return tokPlus, true
	case '-':
		return tokMinus, true
	case '*':
		return tokStar, true
	case '/':
		return tokSlash, true
	case '%':
		return tokPercent, true
	case '^':
		return tokCaret, true
	case '(':
		return tokLParen, true
	case ')':
		return tokRParen, true
	case ';':
		return tokSemi, true
	case '=':
		return tokAssign, true
	}
	return 0, false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// Combining marks continue an identifier so decomposed spellings scan as
// one name before NFC folds them together.
func isIdentContinueRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
