package syntax

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"

	"ion/report"
)

// position is a zero-based line and column in the source text.
type position struct {
	line, col int
}

// Lexer converts Ion source text into tokens on demand.  It implements
// TokenStream.
type Lexer struct {
	src *bufio.Reader
	cls *Classifier

	// lexeme accumulates the value of the token being lexed.
	lexeme strings.Builder

	// pos is the position of the next rune; start is where the token being
	// lexed begins.
	pos, start position
}

// NewLexer creates a lexer reading from src.
func NewLexer(src *bufio.Reader, cls *Classifier) *Lexer {
	return &Lexer{src: src, cls: cls}
}

// NextToken returns the next token of the source text.  Once the text is
// exhausted, every call returns an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c, err := l.lookahead()
		if err != nil {
			return nil, err
		}

		switch {
		case c == -1:
			l.begin()
			return l.emit(TOK_EOF), nil
		case unicode.IsSpace(c):
			l.read()
		case c == '/':
			if tok, err := l.lexSlash(); tok != nil || err != nil {
				return tok, err
			}
		case c == '\'':
			return l.lexQuoted('\'', TOK_CHARLIT, "character")
		case c == '"':
			return l.lexQuoted('"', TOK_STRINGLIT, "string")
		case isDigit(c):
			return l.lexIntLit()
		case isIdentStart(c):
			return l.lexWord()
		default:
			return l.lexSymbol()
		}
	}
}

// -----------------------------------------------------------------------------

// lexSymbol lexes the longest operator or punctuation symbol known to the
// classifier.
func (l *Lexer) lexSymbol() (*Token, error) {
	l.begin()
	l.take()

	kind, ok := l.cls.Symbol(l.lexeme.String())
	if !ok {
		return nil, report.Raise(l.span(), "unknown character `%s`", l.lexeme.String())
	}

	for {
		c, err := l.lookahead()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		longer, ok := l.cls.Symbol(l.lexeme.String() + string(c))
		if !ok {
			break
		}

		l.take()
		kind = longer
	}

	return l.emit(kind), nil
}

// lexWord lexes an identifier, a keyword or a builtin type name.
func (l *Lexer) lexWord() (*Token, error) {
	l.begin()
	if err := l.takeWhile(isIdentPart); err != nil {
		return nil, err
	}

	if kind, ok := l.cls.Keyword(l.lexeme.String()); ok {
		return l.emit(kind), nil
	}

	return l.emit(TOK_IDENT), nil
}

// lexIntLit lexes a decimal integer literal.  Underscores may separate digits
// and are dropped from the value.
func (l *Lexer) lexIntLit() (*Token, error) {
	l.begin()

	for {
		c, err := l.lookahead()
		if err != nil {
			return nil, err
		}

		switch {
		case c == '_':
			l.read()
		case isDigit(c):
			l.take()
		case isIdentStart(c):
			l.take()
			return nil, report.Raise(l.span(), "malformed integer literal")
		default:
			return l.emit(TOK_INTLIT), nil
		}
	}
}

// lexQuoted lexes a character or string literal delimited by quote.  Only the
// boundary quotes are removed: escape sequences are kept verbatim so that the
// parser can decide how to interpret them.
func (l *Lexer) lexQuoted(quote rune, kind TokenKind, what string) (*Token, error) {
	l.begin()
	l.read()

	for {
		c, err := l.lookahead()
		if err != nil {
			return nil, err
		}

		switch c {
		case -1, '\n':
			return nil, report.Raise(l.span(), "unclosed %s literal", what)
		case quote:
			l.read()
			return l.emit(kind), nil
		case '\\':
			l.take()
			if c, err = l.take(); err != nil {
				return nil, err
			} else if c == -1 {
				return nil, report.Raise(l.span(), "unclosed %s literal", what)
			}
		default:
			l.take()
		}
	}
}

// lexSlash lexes a division operator or skips a comment.  A nil token with no
// error means a comment was skipped.
func (l *Lexer) lexSlash() (*Token, error) {
	l.begin()
	l.read()

	c, err := l.lookahead()
	if err != nil {
		return nil, err
	}

	switch c {
	case '/':
		for c != '\n' && c != -1 && err == nil {
			c, err = l.read()
		}
	case '*':
		l.read()
		for {
			if c, err = l.read(); err != nil || c == -1 {
				break
			}

			if c == '*' {
				if c, err = l.lookahead(); err != nil || c == '/' {
					l.read()
					break
				}
			}
		}
	default:
		l.lexeme.WriteRune('/')
		return l.emit(TOK_DIV), nil
	}

	return nil, err
}

// -----------------------------------------------------------------------------

// begin marks the current position as the start of a new token.
func (l *Lexer) begin() {
	l.start = l.pos
}

// emit builds a token of the given kind from the accumulated lexeme and clears
// the lexeme.
func (l *Lexer) emit(kind TokenKind) *Token {
	tok := &Token{Kind: kind, Value: l.lexeme.String(), Span: l.span()}
	l.lexeme.Reset()
	return tok
}

// span returns the span from the token start to the last rune consumed.
func (l *Lexer) span() *report.TextSpan {
	endCol := l.pos.col - 1
	if l.pos.line == l.start.line {
		endCol = max(endCol, l.start.col)
	}

	return &report.TextSpan{
		StartLine: l.start.line,
		StartCol:  l.start.col,
		EndLine:   l.pos.line,
		EndCol:    endCol,
	}
}

// -----------------------------------------------------------------------------

// take consumes the next rune and appends it to the lexeme.  It returns -1 at
// the end of the text.
func (l *Lexer) take() (rune, error) {
	c, err := l.read()
	if c > 0 {
		l.lexeme.WriteRune(c)
	}

	return c, err
}

// takeWhile takes runes for as long as they satisfy pred.
func (l *Lexer) takeWhile(pred func(rune) bool) error {
	for {
		c, err := l.lookahead()
		if err != nil {
			return err
		} else if c == -1 || !pred(c) {
			return nil
		}

		l.take()
	}
}

// read consumes the next rune without recording it.  It returns -1 at the end
// of the text.
func (l *Lexer) read() (rune, error) {
	c, _, err := l.src.ReadRune()
	if errors.Is(err, io.EOF) {
		return -1, nil
	} else if err != nil {
		return 0, err
	}

	if c == '\n' {
		l.pos.line++
		l.pos.col = 0
	} else if c == '\t' {
		l.pos.col += 4
	} else {
		l.pos.col++
	}

	return c, nil
}

// lookahead returns the next rune without consuming it.  It returns -1 at the
// end of the text.
func (l *Lexer) lookahead() (rune, error) {
	c, _, err := l.src.ReadRune()
	if errors.Is(err, io.EOF) {
		return -1, nil
	} else if err != nil {
		return 0, err
	}

	return c, l.src.UnreadRune()
}

// -----------------------------------------------------------------------------

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isIdentStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}
