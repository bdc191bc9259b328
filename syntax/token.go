package syntax

import "ion/report"

// TokenKind is the kind of a lexical token.
type TokenKind int

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind TokenKind

	// The string value of the token.
	Value string

	// The text span over which the token exists.  This may not directly
	// correspond to its value: eg. the value of a string token has the leading
	// quotes trimmed off for convenience.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_MODULE TokenKind = iota

	TOK_FN
	TOK_EXTERN
	TOK_GLOBAL
	TOK_STRUCT
	TOK_UNSAFE

	TOK_CONST
	TOK_MUT

	TOK_IF
	TOK_ELSE
	TOK_RETURN

	TOK_VOID
	TOK_BOOL
	TOK_INT8
	TOK_INT16
	TOK_INT32
	TOK_INT64
	TOK_FLOAT16
	TOK_FLOAT32
	TOK_FLOAT64
	TOK_CHAR
	TOK_STRING

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD
	TOK_POW

	TOK_ASSIGN

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_COMMA
	TOK_DOT
	TOK_SEMI
	TOK_COLON
	TOK_ATSIGN

	TOK_IDENT
	TOK_INTLIT
	TOK_CHARLIT
	TOK_STRINGLIT
	TOK_TRUE
	TOK_FALSE

	TOK_EOF
)

// -----------------------------------------------------------------------------

// TokenStream is a source of tokens.  Once the stream is exhausted it must
// keep returning EOF tokens.
type TokenStream interface {
	NextToken() (*Token, error)
}

// TokenSlice is a token stream over a fixed sequence of tokens.
type TokenSlice struct {
	toks []*Token
	pos  int
}

// NewTokenSlice creates a new token stream over the given tokens.
func NewTokenSlice(toks ...*Token) *TokenSlice {
	return &TokenSlice{toks: toks}
}

func (ts *TokenSlice) NextToken() (*Token, error) {
	if ts.pos >= len(ts.toks) {
		return &Token{Kind: TOK_EOF}, nil
	}

	tok := ts.toks[ts.pos]
	ts.pos++
	return tok, nil
}
