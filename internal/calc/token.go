package calc

import "glot/source"

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokInt
	tokIdent
	tokString
	tokDirective
	tokLet
	tokLoad
	tokAssign
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokCaret
	tokLParen
	tokRParen
	tokSemi
)

var tokenNames = [...]string{
	tokEOF:       "end of input",
	tokInt:       "number",
	tokIdent:     "name",
	tokString:    "string",
	tokDirective: "directive",
	tokLet:       "let",
	tokLoad:      "load",
	tokAssign:    "=",
	tokPlus:      "+",
	tokMinus:     "-",
	tokStar:      "*",
	tokSlash:     "/",
	tokPercent:   "%",
	tokCaret:     "^",
	tokLParen:    "(",
	tokRParen:    ")",
	tokSemi:      ";",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "invalid token"
}

var keywords = map[string]tokenKind{
	"let":  tokLet,
	"load": tokLoad,
}

type token struct {
	Kind tokenKind
	Span source.Span
	Text string
}
