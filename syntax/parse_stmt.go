package syntax

import (
	"errors"
	"strconv"

	"ion/ast"
)

// block := '{' {statement} '}'
//
// The block is returned whenever its closing brace was reached, even if some
// of its statements were invalid.
func (p *Parser) parseBlock() (ast.NodeID, bool) {
	start := p.tok
	if !p.skipOver(TOK_LBRACE) {
		return ast.NoNode, false
	}

	block := p.tree.NewBlock(nil)
	prevBlock := p.block
	p.block = block
	defer func() { p.block = prevBlock }()

	valid := true
	for !p.is(TOK_RBRACE) {
		if p.is(TOK_EOF) {
			p.reject()
			return ast.NoNode, false
		}

		if ok, synced := p.parseStatement(); !ok {
			valid = false

			if !synced {
				p.skipStatement()
			}
		}
	}

	p.next()
	p.tree.SetSpan(block, p.spanFrom(start))
	return block, valid
}

// skipStatement moves the parser past the remainder of a malformed statement:
// up to and including the next `;` or up to the closing `}` of the block.
func (p *Parser) skipStatement() {
	for {
		switch p.tok.Kind {
		case TOK_SEMI:
			p.next()
			return
		case TOK_RBRACE, TOK_EOF:
			return
		default:
			p.next()
		}
	}
}

// addStatement appends a parsed statement to the current block.
func (p *Parser) addStatement(stmt ast.NodeID) bool {
	err := p.tree.AppendStatement(p.block, stmt)

	var dse *ast.DuplicateSymbolError
	if errors.As(err, &dse) {
		p.errorOn(p.tree.Span(stmt), "variable `%s` already declared in this block", dse.Name)
		return false
	}

	p.tree.SetParent(stmt, p.block)
	return true
}

// statement := var_decl ';' | assignment ';' | call ';' | if_stmt | return ';'
//
// synced reports whether the parser already stands past the end of the
// statement, in which case an invalid statement needs no skipping.
func (p *Parser) parseStatement() (ok, synced bool) {
	if !p.cls.IsStatement(p.tok.Kind, p.lookahead.Kind) {
		p.rejectWithMsg("expected a statement not `%s`", p.tok.Value)
		return false, false
	}

	var stmt ast.NodeID
	switch {
	case p.cls.IsBuiltInType(p.tok.Kind):
		stmt, ok = p.parseVariableDecl()
	case p.is(TOK_IDENT) && p.isNext(TOK_ASSIGN):
		stmt, ok = p.parseAssignment()
	case p.is(TOK_IDENT):
		stmt, ok = p.parseCall()
	case p.is(TOK_IF):
		// if statements are not followed by a semicolon.
		if stmt, ok, synced = p.parseIfStatement(); !ok {
			return false, synced
		}

		return p.addStatement(stmt), true
	default:
		stmt, ok = p.parseReturn()
	}

	if !ok || !p.skipOver(TOK_SEMI) {
		return false, false
	}

	return p.addStatement(stmt), true
}

// var_decl := type 'IDENT' '=' operand
func (p *Parser) parseVariableDecl() (ast.NodeID, bool) {
	start := p.tok

	typ, ok := p.parseType()
	if !ok || !p.expect(TOK_IDENT) {
		return ast.NoNode, false
	}

	name := p.tok.Value
	p.next()

	if !p.skipOver(TOK_ASSIGN) {
		return ast.NoNode, false
	}

	value, ok := p.parseOperand()
	if !ok {
		return ast.NoNode, false
	}

	return p.tree.NewVariableDecl(name, typ, value, p.spanFrom(start)), true
}

// assignment := 'IDENT' '=' operand
func (p *Parser) parseAssignment() (ast.NodeID, bool) {
	start := p.tok
	target := p.tree.NewRef(p.tok.Value, ast.RefVariable, p.block, p.tok.Span)
	p.next()
	p.next()

	value, ok := p.parseOperand()
	if !ok {
		return ast.NoNode, false
	}

	return p.tree.NewAssignment(target, value, p.spanFrom(start)), true
}

// call := 'IDENT' '(' [operand {',' operand}] ')'
func (p *Parser) parseCall() (ast.NodeID, bool) {
	start := p.tok
	callee := p.tree.NewRef(p.tok.Value, ast.RefFunction, p.block, p.tok.Span)
	p.next()
	p.next()

	var args []ast.NodeID
	for !p.is(TOK_RPAREN) {
		if len(args) > 0 && !p.skipOver(TOK_COMMA) {
			return ast.NoNode, false
		}

		arg, ok := p.parseOperand()
		if !ok {
			return ast.NoNode, false
		}

		args = append(args, arg)
	}

	p.next()
	return p.tree.NewCallStatement(callee, args, p.spanFrom(start)), true
}

// if_stmt := 'if' operand block ['else' (block | if_stmt)]
//
// An invalid branch block does not stop the parse of the remaining branches.
func (p *Parser) parseIfStatement() (stmt ast.NodeID, ok, synced bool) {
	start := p.tok
	p.next()

	cond, ok := p.parseOperand()
	if !ok {
		return ast.NoNode, false, false
	}

	cons, valid := p.parseBlock()
	if cons == ast.NoNode {
		return ast.NoNode, false, false
	}

	alt := ast.NoNode
	if p.is(TOK_ELSE) {
		p.next()

		if p.is(TOK_IF) {
			// `else if` is an alternative block holding a single if statement.
			alt = p.tree.NewBlock(p.tok.Span)
			prevBlock := p.block
			p.block = alt

			nested, nestedOK, nestedSynced := p.parseIfStatement()
			if nestedOK {
				nestedOK = p.addStatement(nested)
			}

			p.block = prevBlock
			if !nestedSynced {
				return ast.NoNode, false, false
			}

			valid = valid && nestedOK
		} else {
			var altOK bool
			if alt, altOK = p.parseBlock(); alt == ast.NoNode {
				return ast.NoNode, false, false
			}

			valid = valid && altOK
		}
	}

	if !valid {
		return ast.NoNode, false, true
	}

	return p.tree.NewIfStatement(cond, cons, alt, p.spanFrom(start)), true, true
}

// return := 'return' [operand]
func (p *Parser) parseReturn() (ast.NodeID, bool) {
	start := p.tok
	p.next()

	value := ast.NoNode
	if !p.is(TOK_SEMI) {
		var ok bool
		if value, ok = p.parseOperand(); !ok {
			return ast.NoNode, false
		}
	}

	return p.tree.NewReturnStatement(value, p.spanFrom(start)), true
}

// -----------------------------------------------------------------------------

// operand := literal | 'IDENT'
func (p *Parser) parseOperand() (ast.NodeID, bool) {
	if p.is(TOK_IDENT) {
		ref := p.tree.NewRef(p.tok.Value, ast.RefVariable, p.block, p.tok.Span)
		p.next()
		return ref, true
	}

	return p.parseLiteral()
}

// literal := ['-'] 'INTLIT' | 'CHARLIT' | 'STRINGLIT' | 'true' | 'false'
func (p *Parser) parseLiteral() (ast.NodeID, bool) {
	start := p.tok

	switch p.tok.Kind {
	case TOK_MINUS:
		p.next()
		if !p.expect(TOK_INTLIT) {
			return ast.NoNode, false
		}

		return p.parseIntLit(start, "-"+p.tok.Value)
	case TOK_INTLIT:
		return p.parseIntLit(start, p.tok.Value)
	case TOK_CHARLIT:
		c, ok := unescapeChar(p.tok.Value)
		if !ok {
			p.rejectWithMsg("character literal must contain exactly one character")
			return ast.NoNode, false
		}

		p.next()
		return p.tree.NewCharValue(c, start.Span), true
	case TOK_STRINGLIT:
		p.next()
		return p.tree.NewStringValue(start.Value, start.Span), true
	case TOK_TRUE, TOK_FALSE:
		p.next()
		return p.tree.NewBooleanValue(start.Kind == TOK_TRUE, start.Span), true
	default:
		p.rejectWithMsg("expected a value not `%s`", p.tok.Value)
		return ast.NoNode, false
	}
}

// parseIntLit converts the text of an integer literal ending on the current
// token into an integer value typed by the smallest kind that holds it.
func (p *Parser) parseIntLit(start *Token, text string) (ast.NodeID, bool) {
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			p.rejectWithMsg("integer literal `%s` is out of range", text)
		} else {
			p.rejectWithMsg("malformed integer literal `%s`", text)
		}

		return ast.NoNode, false
	}

	p.next()
	return p.tree.NewIntegerLiteral(value, p.spanFrom(start)), true
}

// unescapeChar interprets the body of a character literal.  It succeeds only
// if the body denotes exactly one byte.
func unescapeChar(body string) (byte, bool) {
	if len(body) == 2 && body[0] == '\\' {
		switch body[1] {
		case 'n':
			return '\n', true
		case 't':
			return '\t', true
		case 'r':
			return '\r', true
		case '0':
			return 0, true
		case '\\', '\'', '"':
			return body[1], true
		}

		return 0, false
	}

	if len(body) != 1 {
		return 0, false
	}

	return body[0], true
}
