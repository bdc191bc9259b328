package syntax

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"ion/ast"
	"ion/report"
)

// Each production method is preceded by the EBNF rule it parses.

// Parser is a recursive descent parser with one token of lookahead for a
// single ion compilation unit.  A production starts on its first token and
// returns positioned on the token after its last.  Productions signal failure
// by returning false after recording a notice: they never abort the whole
// parse.  Parsers are created once per file.
type Parser struct {
	// The token source and classification tables.
	stream TokenStream
	cls    *Classifier

	// The shared notice stack to which diagnostics are recorded.
	notices *report.NoticeStack

	// The path to the file being parsed: used for the default module name.
	filePath string

	// The tree being built and the module being populated.
	tree   *ast.Tree
	module ast.NodeID

	// The block statements are currently being added to.
	block ast.NodeID

	// tok is the current token the parser is positioned on; lookahead is the
	// token after it and prev is the last token consumed.
	tok, lookahead, prev *Token
}

// NewParser creates a new parser reading from the given token stream.
func NewParser(stream TokenStream, cls *Classifier, notices *report.NoticeStack, filePath string) *Parser {
	return &Parser{
		stream:   stream,
		cls:      cls,
		notices:  notices,
		filePath: filePath,
		tree:     ast.NewTree(),
	}
}

// ParseModule parses a whole compilation unit.  It returns the tree and its
// module along with whether parsing completed without recording any errors.
// The module is always returned so that callers can inspect partial results.
func (p *Parser) ParseModule() (*ast.Tree, ast.NodeID, bool) {
	errorsBefore := p.notices.ErrorCount()

	// move the parser onto the first token
	p.lookahead = p.read()
	p.next()

	p.parseModule()

	return p.tree, p.module, p.notices.ErrorCount() == errorsBefore
}

// defaultModuleName derives the module name from the file path.
func defaultModuleName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return "anonymous"
	}

	return stem
}

// -----------------------------------------------------------------------------

// read pulls the next token from the stream.  Lexical errors are recorded as
// notices and end the token stream.
func (p *Parser) read() *Token {
	tok, err := p.stream.NextToken()
	if err == nil {
		return tok
	}

	var span *report.TextSpan
	var lce *report.LocalCompileError
	if errors.As(err, &lce) {
		span = lce.Span
	}

	p.notices.Error(span, "%s", err)
	return &Token{Kind: TOK_EOF, Span: span}
}

// next moves the parser forward one token.
func (p *Parser) next() {
	if p.tok != nil {
		if p.tok.Kind == TOK_EOF {
			return
		}

		p.prev = p.tok
	}

	p.tok = p.lookahead
	if p.tok.Kind == TOK_EOF {
		p.lookahead = p.tok
	} else {
		p.lookahead = p.read()
	}
}

// is returns true if the parser is on a token of a given kind.
func (p *Parser) is(kind TokenKind) bool {
	return p.tok.Kind == kind
}

// isNext returns true if the token after the current token is of a given kind.
func (p *Parser) isNext(kind TokenKind) bool {
	return p.lookahead.Kind == kind
}

// expect reports whether the current token has the given kind, rejecting it
// when it does not.  The parser does not move.
func (p *Parser) expect(kind TokenKind) bool {
	if p.is(kind) {
		return true
	}

	p.reject()
	return false
}

// skipOver expects a token of the given kind and moves past it.
func (p *Parser) skipOver(kind TokenKind) bool {
	if p.expect(kind) {
		p.next()
		return true
	}

	return false
}

// spanFrom returns the span from the start token to the last token consumed.
func (p *Parser) spanFrom(start *Token) *report.TextSpan {
	if p.prev == nil {
		return start.Span
	}

	return report.NewSpanOver(start.Span, p.prev.Span)
}

// -----------------------------------------------------------------------------

// reject reports an unexpected token error on the current token.
func (p *Parser) reject() {
	var msg string
	if p.tok.Kind == TOK_EOF {
		msg = "unexpected end of file"
	} else {
		msg = fmt.Sprintf("unexpected token: `%s`", p.tok.Value)
	}

	p.notices.Error(p.tok.Span, "%s", msg)
}

// rejectWithMsg rejects the current token with a specific message.
func (p *Parser) rejectWithMsg(msg string, a ...interface{}) {
	p.notices.Error(p.tok.Span, msg, a...)
}

// errorOn reports an error over a given span.
func (p *Parser) errorOn(span *report.TextSpan, msg string, a ...interface{}) {
	p.notices.Error(span, msg, a...)
}

// warnOn reports a warning over a given span.
func (p *Parser) warnOn(span *report.TextSpan, msg string, a ...interface{}) {
	p.notices.Warn(span, msg, a...)
}
